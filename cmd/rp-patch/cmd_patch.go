// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/toasterparty/randomprime-sub001/config"
	. "github.com/toasterparty/randomprime-sub001/internal/util/cmd"
	"github.com/toasterparty/randomprime-sub001/pkg/patcher"
)

var cmdPatch = &cobra.Command{
	Use:   "patch",
	Short: "Apply a patch file",
	Args:  cobra.NoArgs,
	Run:   patch,
}

var cmdInit = &cobra.Command{
	Use:   "init <input> <output>",
	Short: "Write an empty patch file",
	Args:  cobra.ExactArgs(2),
	Run:   initPatch,
}

var flagPatch struct {
	Config   string
	Output   string
	NoVerify bool
}

func init() {
	cmdMain.AddCommand(cmdPatch, cmdInit)
	cmdPatch.Flags().StringVarP(&flagPatch.Config, "config", "c", config.DefaultFile, "Patch file")
	cmdPatch.Flags().StringVarP(&flagPatch.Output, "output", "o", "", "Override the output file")
	cmdPatch.Flags().BoolVar(&flagPatch.NoVerify, "no-verify", false, "Skip decoding the result before writing it")
	cmdInit.Flags().StringVarP(&flagPatch.Config, "config", "c", config.DefaultFile, "Patch file")
}

func patch(cmd *cobra.Command, _ []string) {
	cfg, err := config.Load(flagPatch.Config)
	Check(err)
	if flagPatch.Output != "" {
		cfg.Output = flagPatch.Output
	}
	if flagPatch.NoVerify {
		cfg.Verify = false
	}

	logger := newLogger(cmd, cfg)
	ctx, cancel := contextForMainProcess()
	defer cancel()

	n, err := patcher.New(cfg, logger).Run(ctx)
	Checkf(err, "patch %s", cfg.Input)
	fmt.Printf("Wrote %s to %s\n", humanize.IBytes(uint64(n)), cfg.Output)
}

func initPatch(_ *cobra.Command, args []string) {
	cfg := config.Default()
	cfg.Input, cfg.Output = args[0], args[1]
	Check(cfg.Validate())
	Check(config.Store(flagPatch.Config, cfg))
}
