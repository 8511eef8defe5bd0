// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	. "github.com/toasterparty/randomprime-sub001/internal/util/cmd"
	"github.com/toasterparty/randomprime-sub001/internal/util/ioutil"
	"github.com/toasterparty/randomprime-sub001/pkg/patcher"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var cmdDump = &cobra.Command{
	Use:   "dump <file>",
	Short: "List the contents of a resource",
	Args:  cobra.ExactArgs(1),
	Run:   dump,
}

var flagDump struct {
	Spew bool
	YAML bool
}

func init() {
	cmdMain.AddCommand(cmdDump)
	cmdDump.Flags().BoolVar(&flagDump.Spew, "spew", false, "Dump the decoded resource")
	cmdDump.Flags().BoolVar(&flagDump.YAML, "yaml", false, "Print the summary as YAML")
	cmdDump.MarkFlagsMutuallyExclusive("spew", "yaml")
}

var enTitle = cases.Title(language.AmericanEnglish)

func dump(cmd *cobra.Command, args []string) {
	_ = newLogger(cmd, nil)

	f, err := ioutil.ReadFile(args[0])
	Check(err)
	defer f.Close()

	_, v, err := patcher.Decode(f.Data)
	Checkf(err, "decode %s", args[0])

	switch {
	case flagDump.Spew:
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(os.Stdout, v)

	case flagDump.YAML:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		Check(enc.Encode(patcher.Describe(v)))
		Check(enc.Close())

	default:
		printSummary(os.Stdout, patcher.Describe(v))
	}
}

func printSummary(w io.Writer, s *patcher.Summary) {
	fmt.Fprintf(w, "%s resource, %s\n", enTitle.String(s.Kind), humanize.IBytes(uint64(s.Size)))

	if s.Map != nil {
		fmt.Fprintf(w, "%d objects, %d vertices, %d surfaces, %s of surface data\n",
			s.Map.Objects, s.Map.Vertices, s.Map.Surfaces, humanize.IBytes(uint64(s.Map.Rest)))
		return
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Layer", "Size", "Objects", "Connections", "Types"})
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	for _, l := range s.Layers {
		types := maps.Keys(l.Types)
		slices.Sort(types)

		desc := make([]string, len(types))
		for i, typ := range types {
			desc[i] = fmt.Sprintf("%#x×%d", typ, l.Types[typ])
		}
		tw.Append([]string{
			fmt.Sprint(l.Index),
			humanize.IBytes(uint64(l.Size)),
			humanize.Comma(int64(l.Objects)),
			humanize.Comma(int64(l.Connections)),
			strings.Join(desc, " "),
		})
	}
	tw.Render()
}
