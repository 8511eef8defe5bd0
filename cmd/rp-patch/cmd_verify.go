// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"github.com/toasterparty/randomprime-sub001/internal/logging"
	. "github.com/toasterparty/randomprime-sub001/internal/util/cmd"
	"github.com/toasterparty/randomprime-sub001/internal/util/ioutil"
	"github.com/toasterparty/randomprime-sub001/pkg/errors"
	"github.com/toasterparty/randomprime-sub001/pkg/patcher"
	"golang.org/x/sync/errgroup"
)

var cmdVerify = &cobra.Command{
	Use:   "verify <file>...",
	Short: "Check that resources survive decoding and encoding unchanged",
	Args:  cobra.MinimumNArgs(1),
	Run:   verify,
}

var flagVerify struct {
	Jobs int
}

func init() {
	cmdMain.AddCommand(cmdVerify)
	cmdVerify.Flags().IntVarP(&flagVerify.Jobs, "jobs", "j", runtime.NumCPU(), "Number of files to verify at once")
}

func verify(cmd *cobra.Command, args []string) {
	_ = newLogger(cmd, nil)
	ctx, cancel := contextForMainProcess()
	defer cancel()

	var mu sync.Mutex
	var failed int
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(max(flagVerify.Jobs, 1))
	for _, file := range args {
		errg.Go(func() error {
			err := verifyFile(logging.With(ctx, "file", file), file)
			if err == nil {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			return nil
		})
	}
	Check(errg.Wait())

	if failed > 0 {
		Fatalf("%d of %d files failed", failed, len(args))
	}
	fmt.Printf("%d files round trip\n", len(args))
}

// verifyFile returns a conflict error with a hex diff if the file decodes but
// does not round trip.
func verifyFile(ctx context.Context, file string) error {
	if err := ctx.Err(); err != nil {
		return errors.UnknownError.Wrap(err)
	}

	f, err := ioutil.ReadFile(file)
	if err != nil {
		return err
	}
	defer f.Close()

	out, err := patcher.Roundtrip(f.Data)
	if err != nil {
		return err
	}

	if !bytes.Equal(f.Data, out) {
		slog.WarnContext(ctx, "Round trip mismatch", "input", len(f.Data), "output", len(out))
		return errors.Conflict.WithFormat("round trip mismatch\n%s", patcher.HexDiff(f.Data, out))
	}

	slog.DebugContext(ctx, "Verified", "size", len(out))
	return nil
}
