// SPDX-License-Identifier: GPL-2.0-only

// Command crush packs and unpacks files in the CRUSH container format
// (see package crush and package block). It is a thin collaborator
// around the core codec and match-finders: flag parsing, file I/O
// framing into blocks, progress reporting, and logging only.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := RootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("crush failed")
		os.Exit(1)
	}
}
