package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/urltree"
)

func parseCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <url>",
		Short: "Parse a navigation string into a URL tree",
		Long: `Parse a navigation string and print its canonical form followed by the
segment groups it contains, one outlet per line.

Examples:
  outlet parse '/team/22/(user/victor//right:simple)'
  outlet parse --json '/inbox;unread=true?sort=date#top'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := urltree.Parse(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if g.json {
				return writeJSON(w, tree)
			}
			fmt.Fprintln(w, urltree.Serialize(tree))
			writeGroup(w, tree.Root(), "", 0)
			if q := tree.QueryParams(); len(q) > 0 {
				fmt.Fprintf(w, "query: %s\n", formatParams(q))
			}
			if f := tree.Fragment(); f != "" {
				fmt.Fprintf(w, "fragment: %s\n", f)
			}
			return nil
		},
	}
}

func serializeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serialize <url>...",
		Short: "Print the canonical form of navigation strings",
		Long: `Parse each navigation string and print it back in canonical form:
leading slash, primary outlet first, empty groups dropped.

Example:
  outlet serialize 'a/(right:c//b)'   # /a/(b//right:c)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, 0, len(args))
			for _, arg := range args {
				tree, err := urltree.Parse(arg)
				if err != nil {
					return err
				}
				out = append(out, urltree.Serialize(tree))
			}
			w := cmd.OutOrStdout()
			if g.json {
				return writeJSON(w, out)
			}
			for _, s := range out {
				fmt.Fprintln(w, s)
			}
			return nil
		},
	}
}

// writeGroup prints g's segments and then its outlets, indented by depth.
func writeGroup(w io.Writer, g *urltree.SegmentGroup, outlet string, depth int) {
	indent := strings.Repeat("  ", depth)
	if outlet != "" {
		segs := make([]string, 0, g.NumSegments())
		for _, s := range g.Segments() {
			segs = append(segs, s.String())
		}
		fmt.Fprintf(w, "%s%s: %s\n", indent, outlet, strings.Join(segs, "/"))
		depth++
	}
	for _, c := range g.Children() {
		writeGroup(w, c.Group, c.Outlet, depth)
	}
}

func formatParams(p urltree.Params) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p[k]
	}
	return strings.Join(parts, ", ")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
