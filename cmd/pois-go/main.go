// Command pois-go drives a Proof-of-Idle-Space engine shared library from
// the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/idlespace/pois-go/pkg/pois"
)

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()
	root := &cobra.Command{
		Use:           "pois-go",
		Short:         "Drive a PoIS engine shared library",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	setFlags(root, cfg)

	root.AddCommand(
		newVersionCmd(),
		newKeygenCmd(),
		newPerformCmd(),
		newInitCmd(),
		newCommitsCmd(),
		newFlowCmd(),
	)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pois-go: %v\n", err)
		if errors.Is(err, pois.ErrNotBuilt) {
			fmt.Fprintln(os.Stderr, "pois-go: rebuild with CGO_ENABLED=1 on a platform with a dynamic loader")
		}
		os.Exit(1)
	}
}
