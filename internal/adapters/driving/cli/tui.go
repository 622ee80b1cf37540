package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openpd/pdraft/internal/adapters/driven/extract"
	"github.com/openpd/pdraft/internal/adapters/driving/tui"
	"github.com/openpd/pdraft/internal/core/ports/driving"
	"github.com/openpd/pdraft/internal/core/services"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive drafting wizard",
	Long: `Tui launches the full-screen drafting wizard: enter the position
details and duties, generate a draft with the configured AI service and
review the canonical document before saving it.`,
	RunE: runTUI,
}

var tuiOut string

func init() {
	tuiCmd.Flags().StringVarP(&tuiOut, "out", "o", "", "File the reviewed draft can be saved to")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	client := newAIClient()
	if client == nil {
		return fmt.Errorf("no AI endpoint configured; run: pdraft settings set ai.base_url <url>")
	}

	ports := &tui.Ports{
		Drafter: services.NewDrafter(client, client),
		NewSession: func() driving.SessionService {
			return services.NewSession(extract.New(), client, nil)
		},
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.WithContext(ctx).WithOutPath(tuiOut).Run()
}
