package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	configfile "github.com/openpd/pdraft/internal/adapters/driven/config/file"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage pdraft configuration",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsSetKeyCmd = &cobra.Command{
	Use:   "set-key",
	Short: "Store the AI service API key",
	Long:  `Set-key prompts for the API key without echoing it to the terminal.`,
	Args:  cobra.NoArgs,
	RunE:  runSettingsSetKey,
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsSetKeyCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %q not set", args[0])
	}
	if args[0] == configfile.KeyAIAPIKey {
		val = "(hidden)"
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if err := configStore.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s set\n", args[0])
	return nil
}

func runSettingsSetKey(cmd *cobra.Command, _ []string) error {
	var key string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), "API key: ")
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		key = string(secret)
	} else {
		// Piped input, e.g. in scripts.
		var line string
		if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
			return fmt.Errorf("reading key: %w", err)
		}
		key = line
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if err := configStore.Set(configfile.KeyAIAPIKey, key); err != nil {
		return err
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "API key stored")
	return nil
}
