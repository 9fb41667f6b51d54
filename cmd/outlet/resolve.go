package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/internal/demo"
	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/transition"
)

func resolveCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show the layout chain and capturing outlet for a path",
		Long: `Resolve a path against the demo route tree.

Prints the matched pattern, the layout chain with each outlet's
resolved path, and, when --from is given, the outlets registered at
--from and which of them would capture its content when navigating
from --from to <path>.

Examples:
  outlet resolve /app/settings/general
  outlet resolve /app/settings/profile --from=/app/settings/general`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.OutOrStdout(), demo.Routes(), from, args[0])
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Path the navigation starts from")

	return cmd
}

func runResolve(w io.Writer, routes *router.Router, from, to string) error {
	nav := navigation.New(routes)
	registry := transition.NewRegistry()

	if from != "" {
		if _, err := nav.Navigate(from, false); err != nil {
			return err
		}
		if m := nav.Match(); m != nil {
			for _, layout := range m.Layouts {
				path, err := nav.ResolveOwnPath(layout.RouteID)
				if err != nil {
					return err
				}
				if _, err := registry.Register(path, func() {}); err != nil {
					return err
				}
			}
		}
	}

	dest, err := routepath.CanonicalizePath(to)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", to, err)
	}
	capture, captured := registry.Match(dest.Path)
	if dest.Path == nav.CurrentPath() {
		captured = false
	}

	if _, err := nav.Navigate(dest.Path, false); err != nil {
		return err
	}
	m := nav.Match()
	if m == nil {
		fmt.Fprintf(w, "%s: no route\n", dest.Path)
	} else {
		fmt.Fprintf(w, "%s -> %s (depth %d)\n", dest.Path, m.Pattern, routepath.Depth(dest.Path))
		for i, layout := range m.Layouts {
			path, err := nav.ResolveOwnPath(layout.RouteID)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %d. outlet %s at %s (depth %d)\n", i+1, layout.RouteID, path, routepath.Depth(path))
		}
	}

	if from == "" {
		return nil
	}
	fmt.Fprintf(w, "registered from %s:\n", from)
	for _, e := range registry.Entries() {
		fmt.Fprintf(w, "  %s\n", e.Path)
	}
	if captured {
		fmt.Fprintf(w, "capture: %s\n", capture.Path)
	} else {
		fmt.Fprintln(w, "capture: none")
	}
	return nil
}
