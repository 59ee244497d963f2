package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┬ ┬┌┬┐┬  ┌─┐┌┬┐
  │ ││ │ │ │  ├┤  │
  └─┘└─┘ ┴ ┴─┘└─┘ ┴
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	g := &globals{}
	rootCmd := newRootCmd(g)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		oe := errors.Classify(err)
		if g.json {
			fmt.Fprintln(stderr, oe.FormatJSON())
		} else {
			errors.PrintError(stderr, oe)
		}
		return 1
	}
	return 0
}

func newRootCmd(g *globals) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outlet",
		Short: "Inspect and exercise outlet route configurations",
		Long: `Outlet parses navigation strings, recognizes them against a route
configuration and runs navigations the way an application router would.

  • Parse and canonicalize URLs with named outlets
  • Recognize URLs into router state snapshots
  • Replay navigation sequences and see which components are reused
  • Serve an HTTP inspector with a live outlet event stream`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor || g.json || os.Getenv("NO_COLOR") != "" {
				errors.DisableColors()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.routes, "routes", "r", "", "Route config file or s3://bucket/key (default from outlet.json)")
	flags.StringVarP(&g.configPath, "config", "c", "", "Path to outlet.json (default: nearest outlet.json)")
	flags.BoolVar(&g.json, "json", false, "Print JSON output")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "Log navigation phases")

	rootCmd.AddCommand(
		parseCmd(g),
		serializeCmd(g),
		recognizeCmd(g),
		navigateCmd(g),
		serveCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the outlet ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
