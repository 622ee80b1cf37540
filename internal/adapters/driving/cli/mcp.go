package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openpd/pdraft/internal/adapters/driven/extract"
	mcpserver "github.com/openpd/pdraft/internal/adapters/driving/mcp"
	"github.com/openpd/pdraft/internal/core/ports/driving"
	"github.com/openpd/pdraft/internal/core/services"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Mcp serves the document pipeline over the Model Context Protocol
so AI agents can parse, render and edit Position Descriptions.
By default the server speaks stdio; use --http to listen on an address.`,
	RunE: runMCP,
}

var mcpHTTPAddr string

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "Serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	ports := &mcpserver.Ports{
		NewSession: func() driving.SessionService {
			if client := newAIClient(); client != nil {
				return services.NewSession(extract.New(), client, nil)
			}
			return services.NewSession(extract.New(), nil, nil)
		},
	}

	server, err := mcpserver.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if mcpHTTPAddr != "" {
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
