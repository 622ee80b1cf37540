// Package cli provides the cobra command tree for pdraft.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openpd/pdraft/internal/adapters/driven/aihttp"
	configfile "github.com/openpd/pdraft/internal/adapters/driven/config/file"
	"github.com/openpd/pdraft/internal/adapters/driven/extract"
	historysqlite "github.com/openpd/pdraft/internal/adapters/driven/history/sqlite"
	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/core/services"
	"github.com/openpd/pdraft/internal/logger"
)

var (
	verboseFlag bool
	configDir   string

	configStore *configfile.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "pdraft",
	Short: "Author and update Position Description documents",
	Long: `pdraft parses, repairs and reassembles government Position
Description documents, with AI-assisted drafting and classification.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		store, err := configfile.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		configStore = store
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Configuration directory (default ~/.pdraft)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newAIClient builds the AI service client from configuration, or nil
// when no endpoint is configured.
func newAIClient() *aihttp.Client {
	baseURL, ok := configStore.Get(configfile.KeyAIBaseURL)
	if !ok || baseURL == "" {
		return nil
	}
	apiKey, _ := configStore.Get(configfile.KeyAIAPIKey)
	model, _ := configStore.Get(configfile.KeyAIModel)
	return aihttp.New(baseURL, apiKey, aihttp.WithModel(model))
}

// newSession builds an editing session. The history store is optional;
// commands that do not record edits pass withHistory=false to avoid
// opening the database.
func newSession(withHistory bool) (*services.Session, func(), error) {
	var recomputer driven.FactorRecomputer
	if client := newAIClient(); client != nil {
		recomputer = client
	}

	var store driven.HistoryStore
	cleanup := func() {}
	if withHistory {
		dataDir, _ := configStore.Get(configfile.KeyDataDir)
		s, err := historysqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening history store: %w", err)
		}
		store = s
		cleanup = func() { s.Close() }
	}

	return services.NewSession(extract.New(), recomputer, store), cleanup, nil
}
