// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"golang.org/x/term"
)

var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit

	// Verbose prints the full causal chain and call stack of fatal errors.
	Verbose bool
)

// ExitCode returns the process status for an error. Bad input and bad
// arguments exit with 2, everything else with 1.
func ExitCode(err error) int {
	switch errors.Code(err) {
	case errors.MalformedInput, errors.BadRequest, errors.NotFound:
		return 2
	default:
		return 1
	}
}

func Fatalf(format string, args ...interface{}) {
	fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
	exit(1)
}

func Check(err error) {
	if err == nil {
		return
	}
	if Verbose {
		fmt.Fprintf(stderr, "Error: %+v\n", err)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	exit(ExitCode(err))
}

func Checkf(err error, format string, otherArgs ...interface{}) {
	if err != nil {
		Check(errors.UnknownError.WithFormat(format+": %w", append(otherArgs, err)...))
	}
}

func Warnf(format string, args ...interface{}) {
	format = "WARNING: " + format + "\n"
	if f, ok := stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, color.RedString(format, args...))
	} else {
		fmt.Fprintf(stderr, format, args...)
	}
}
