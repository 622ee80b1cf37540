package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openpd/pdraft/internal/adapters/driven/extract"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Re-parse a document whenever the file changes",
	Long: `Watch keeps re-running the parsing pipeline over a document file
every time it is saved, printing the section listing. Useful while
editing a PD in an external editor. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	session, cleanup, err := newSession(false)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report := func(path string) {
		conflicts, err := session.LoadFile(ctx, path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "-- %s: %d sections\n", path, session.Document().Len())
		for _, c := range conflicts {
			fmt.Fprintf(cmd.ErrOrStderr(), "conflict: factor %s: %s\n",
				c.FactorKey, strings.Join(c.Titles, "; "))
		}
	}

	report(args[0])

	err = extract.Watch(ctx, args[0], report)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
