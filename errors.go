// SPDX-License-Identifier: GPL-2.0-only

package crush

import "errors"

// Sentinel errors for Pack/Depack and their convenience wrappers.
var (
	// ErrInvalidLevel is returned when level is outside [5, 10].
	ErrInvalidLevel = errors.New("crush: invalid level (want 5..10)")
	// ErrOutputOverrun is returned when dst is too small for Pack, or when
	// Depack's dst length differs from m.
	ErrOutputOverrun = errors.New("crush: output buffer too small")
	// ErrWorkmemTooSmall is returned when the supplied workmem buffer is undersized for N and level.
	ErrWorkmemTooSmall = errors.New("crush: workmem buffer too small")
	// ErrCorruptStream is returned when a decoded match references bytes that have not
	// been produced yet, or the input runs out before M bytes have been decoded.
	ErrCorruptStream = errors.New("crush: corrupt or truncated stream")
)
