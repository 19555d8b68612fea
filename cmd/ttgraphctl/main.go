// Copyright 2024 TTGraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arch-of-shadow/TTGraph"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ttgraphctl",
		Short:         "replay a declarative scenario against an in-memory typed graph",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

var checkInvariants bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "compile and commit each step of a scenario file in order",
		Long: `run loads a YAML scenario describing a sequence of graph
operations (inserts, mutations, removals, and redirections), replays each
step as exactly one transaction against a fresh graph, and prints the
resulting node set and reverse-link index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scn, err := loadScenario(args[0])
			if err != nil {
				return err
			}

			ctx := ttgraph.NewContext()
			g := ttgraph.NewGraph[FieldTag, FieldTag, AnyNode](ctx)
			if err := replay(scn, ctx, g); err != nil {
				return err
			}

			if checkInvariants {
				g.CheckBacklinks()
				g.CheckBidirectional()
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d node(s)\n\n", g.Len())
			fmt.Fprint(out, g.Dump())
			fmt.Fprintln(out)
			fmt.Fprint(out, g.DumpBackLinks())
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkInvariants, "check", false, "run CheckBacklinks and CheckBidirectional after replay")
	return cmd
}
