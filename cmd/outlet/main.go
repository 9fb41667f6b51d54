package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	outleterrors "github.com/vango-dev/outlet/internal/errors"
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
	if err := newRootCmd().Execute(); err != nil {
		outleterrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outlet",
		Short: "Nested-view transitions for server-driven Go UIs",
		Long: `outlet serves a server-driven UI whose nested layouts animate
between routes.

Each layout renders its content inside an outlet. When a navigation
is about to commit, the deepest outlet above the destination freezes
its current content into a snapshot that plays an exit animation
while the new content enters.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		resolveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
