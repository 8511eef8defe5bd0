// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package randomprime holds build information. Version is set at link time
// with -ldflags "-X github.com/toasterparty/randomprime-sub001.Version=...".
package randomprime

const unknownVersion = "version unknown"

var Version = unknownVersion

func IsVersionKnown() bool {
	return Version != unknownVersion
}
