// SPDX-License-Identifier: GPL-2.0-only

package crush

// Version is the canonical version string for this module and the
// crush CLI's -V/--version banner. There is exactly one version
// constant here, so a binary's banner and its module metadata can never
// disagree.
const Version = "0.2.1"
