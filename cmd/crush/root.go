// SPDX-License-Identifier: GPL-2.0-only

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/crushlz/crush"
	"github.com/crushlz/crush/block"
)

var (
	optimal     bool
	decompress  bool
	verbose     bool
	showVersion bool
)

func init() {
	for l := 5; l <= 9; l++ {
		name := fmt.Sprintf("level-%d", l)
		shorthand := fmt.Sprintf("%d", l)
		RootCmd.Flags().BoolP(name, shorthand, false, fmt.Sprintf("compress at level %d", l))
	}
	RootCmd.Flags().BoolVar(&optimal, "optimal", false, "compress at level 10 (binary-tree parse, unbounded depth)")
	RootCmd.Flags().BoolVarP(&decompress, "decompress", "d", false, "decompress INFILE instead of compressing it")
	RootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "report per-block progress and stats")
	RootCmd.Flags().BoolVarP(&showVersion, "version", "V", false, "print the version and exit")
}

// RootCmd is the crush command: `crush [flags] INFILE OUTFILE`.
var RootCmd = &cobra.Command{
	Use:   "crush [flags] INFILE OUTFILE",
	Short: "CRUSH block compressor/decompressor",
	Long: "crush packs or unpacks a file using the CRUSH container format: " +
		"a sequence of independent <=64 MiB blocks, each a 4-byte little-endian " +
		"length header followed by packed bytes.",
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("crush %s\n", crush.Version)
			return nil
		}
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}

		lvl, err := resolveLevel(cmd)
		if err != nil {
			return err
		}

		in, out, err := resolveFiles(args)
		if err != nil {
			return err
		}
		defer in.Close()
		defer out.Close()

		if decompress {
			return runDecompress(in, out)
		}
		return runCompress(in, out, lvl)
	},
}

// resolveLevel picks the effective level from -5..-9/--optimal, defaulting
// to crush.MinLevel when the caller asked for none.
func resolveLevel(cmd *cobra.Command) (int, error) {
	if optimal {
		return crush.MaxLevel, nil
	}
	chosen := 0
	for l := 5; l <= 9; l++ {
		set, _ := cmd.Flags().GetBool(fmt.Sprintf("level-%d", l))
		if set {
			if chosen != 0 {
				return 0, fmt.Errorf("only one of -5..-9/--optimal may be given")
			}
			chosen = l
		}
	}
	if chosen == 0 {
		chosen = crush.MinLevel
	}
	return chosen, nil
}

func resolveFiles(args []string) (io.ReadCloser, io.WriteCloser, error) {
	var (
		in  io.ReadCloser = os.Stdin
		out io.WriteCloser = os.Stdout
	)
	if len(args) >= 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		in = f
	}
	if len(args) >= 2 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			if in != os.Stdin {
				in.Close()
			}
			return nil, nil, err
		}
		out = f
	}
	return in, out, nil
}

func runCompress(in io.Reader, out io.Writer, lvl int) error {
	total := int64(-1)
	if f, ok := in.(*os.File); ok {
		if fi, err := f.Stat(); err == nil {
			total = fi.Size()
		}
	}

	var bar *progressbar.ProgressBar
	if verbose {
		if total >= 0 {
			bar = progressbar.DefaultBytes(total, "compressing")
		} else {
			bar = progressbar.DefaultBytes(-1, "compressing")
		}
	}

	w := block.NewWriter(out, lvl)
	buf := make([]byte, block.MaxBlockSize)
	blockIdx := 0
	for {
		n, rerr := io.ReadFull(in, buf)
		if n > 0 {
			packed, err := w.WriteBlock(buf[:n])
			if err != nil {
				return err
			}
			if verbose {
				logrus.WithFields(logrus.Fields{
					"block": blockIdx,
					"level": lvl,
					"in":    n,
					"out":   packed,
				}).Debug("packed block")
				if bar != nil {
					_ = bar.Add(n)
				}
			}
			blockIdx++
		}
		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			break
		}
		if rerr != nil {
			return rerr
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}

func runDecompress(in io.Reader, out io.Writer) error {
	var bar *progressbar.ProgressBar
	if verbose {
		bar = progressbar.DefaultBytes(-1, "decompressing")
	}

	r := block.NewReader(in)
	var dst []byte
	blockIdx := 0
	for {
		chunk, err := r.ReadBlock(dst)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		dst = chunk
		if _, err := out.Write(chunk); err != nil {
			return err
		}
		if verbose {
			logrus.WithFields(logrus.Fields{
				"block": blockIdx,
				"out":   len(chunk),
			}).Debug("unpacked block")
			if bar != nil {
				_ = bar.Add(len(chunk))
			}
		}
		blockIdx++
	}
	if bar != nil {
		_ = bar.Finish()
	}
	return nil
}
