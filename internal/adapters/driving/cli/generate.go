package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openpd/pdraft/internal/core/ports/driven"
	"github.com/openpd/pdraft/internal/core/services"
	"github.com/openpd/pdraft/internal/serialise"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a new document with the AI service",
	Long: `Generate requests a full document draft from the configured AI
service, waits for the stream to complete, runs the repair pipeline over
the result and prints the canonical document.`,
	RunE: runGenerate,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend job series and grade for duties text",
	RunE:  runRecommend,
}

var (
	genSeries     string
	genTitle      string
	genAgency     string
	genOrg        string
	genGrade      string
	genDutiesFile string
	genOut        string

	recDutiesFile string
)

func init() {
	generateCmd.Flags().StringVar(&genSeries, "series", "", "4-digit job series code")
	generateCmd.Flags().StringVar(&genTitle, "title", "", "Position title")
	generateCmd.Flags().StringVar(&genAgency, "agency", "", "Agency name")
	generateCmd.Flags().StringVar(&genOrg, "organization", "", "Organization name")
	generateCmd.Flags().StringVar(&genGrade, "grade", "", "Target GS grade")
	generateCmd.Flags().StringVar(&genDutiesFile, "duties-file", "", "File with duties text (required)")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", "", "Write output to file instead of stdout")
	generateCmd.MarkFlagRequired("duties-file") //nolint:errcheck

	recommendCmd.Flags().StringVar(&recDutiesFile, "duties-file", "", "File with duties text (required)")
	recommendCmd.MarkFlagRequired("duties-file") //nolint:errcheck

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(recommendCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	duties, err := os.ReadFile(genDutiesFile)
	if err != nil {
		return fmt.Errorf("reading duties file: %w", err)
	}

	client := newAIClient()
	if client == nil {
		return fmt.Errorf("no AI endpoint configured; run: pdraft settings set ai.base_url <url>")
	}
	drafter := services.NewDrafter(client, client)

	ctx := context.Background()
	raw, err := drafter.Draft(ctx, driven.GenerateRequest{
		JobSeries:     genSeries,
		PositionTitle: genTitle,
		Agency:        genAgency,
		Organization:  genOrg,
		GSGrade:       genGrade,
		Duties:        string(duties),
	})
	if err != nil {
		return err
	}

	session, cleanup, err := newSession(false)
	if err != nil {
		return err
	}
	defer cleanup()

	session.LoadText(raw)
	out, err := session.Render(serialise.ModeGenerated)
	if err != nil {
		return err
	}

	if genOut != "" {
		return os.WriteFile(genOut, []byte(out+"\n"), 0644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	duties, err := os.ReadFile(recDutiesFile)
	if err != nil {
		return fmt.Errorf("reading duties file: %w", err)
	}

	client := newAIClient()
	if client == nil {
		return fmt.Errorf("no AI endpoint configured; run: pdraft settings set ai.base_url <url>")
	}
	drafter := services.NewDrafter(client, client)

	rec, err := drafter.Recommend(context.Background(), string(duties))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recommended grade: %s\n\n", rec.GSGrade)
	fmt.Fprintln(cmd.OutOrStdout(), "Series:")
	for _, s := range rec.Recommendations {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", s.Code, s.Title)
	}
	if len(rec.GradeRelevancy) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "\nGrade relevancy:")
		for _, g := range rec.GradeRelevancy {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-6s %5.1f%%\n", g.Grade, g.Percentage)
		}
	}
	return nil
}
