package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	configfile "github.com/openpd/pdraft/internal/adapters/driven/config/file"
	historysqlite "github.com/openpd/pdraft/internal/adapters/driven/history/sqlite"
	"github.com/openpd/pdraft/internal/serialise"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Replace a section's content and re-render",
	Long: `Edit loads a document, replaces one section's content, runs the
factor recompute cascade when a factor or major-duty section changed,
and writes the updated document back to the file.

The new content comes from --content or --content-file.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var historyCmd = &cobra.Command{
	Use:   "history [session-id] [title]",
	Short: "Show stored edit history for a section",
	Args:  cobra.ExactArgs(2),
	RunE:  runHistory,
}

var (
	editSection     string
	editContent     string
	editContentFile string
)

func init() {
	editCmd.Flags().StringVarP(&editSection, "section", "s", "", "Section title to edit (required)")
	editCmd.Flags().StringVar(&editContent, "content", "", "New section content")
	editCmd.Flags().StringVar(&editContentFile, "content-file", "", "Read new section content from file")
	editCmd.MarkFlagRequired("section") //nolint:errcheck

	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(historyCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	content := editContent
	if editContentFile != "" {
		data, err := os.ReadFile(editContentFile)
		if err != nil {
			return fmt.Errorf("reading content file: %w", err)
		}
		content = string(data)
	}
	if content == "" {
		return fmt.Errorf("one of --content or --content-file is required")
	}

	session, cleanup, err := newSession(true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if _, err := session.LoadFile(ctx, args[0]); err != nil {
		return err
	}

	if _, err := session.BeginEdit(editSection); err != nil {
		return err
	}
	if err := session.SaveSection(ctx, editSection, content); err != nil {
		return err
	}

	out, err := session.Render(serialise.ModeUpdated)
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated %q in %s (session %s)\n", editSection, args[0], session.ID())
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	dataDir, _ := configStore.Get(configfile.KeyDataDir)
	store, err := historysqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer store.Close()

	records, err := store.List(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no history")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n%s\n\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"), rec.Header, rec.Content)
	}
	return nil
}
