package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/smaport/insight/pkg/export"
	"github.com/smaport/insight/pkg/models/domain"
	"github.com/smaport/insight/pkg/services/analysis"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	topN     int
	sigma    float64
	sample   bool
	reporter *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a CSV or Excel file of business data",
		Args:  cobra.MaximumNArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().IntVar(&ac.topN, "top-n", 5, "Number of top products to rank (3-20)")
	cmd.Flags().Float64Var(&ac.sigma, "sigma", 2.0, "Anomaly sensitivity in standard deviations (1.5-4.0)")
	cmd.Flags().BoolVar(&ac.sample, "sample", false, "Analyze the built-in sample dataset instead of a file")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	cfg := domain.AnalysisConfig{TopN: ac.topN, Sigma: ac.sigma}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var fileName string
	var data []byte
	switch {
	case ac.sample:
		fileName = "sample.csv"
		data = analysis.SampleCSV()
	case len(args) == 1:
		fileName = filepath.Base(args[0])
		var err error
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	default:
		return fmt.Errorf("provide a file to analyze or use --sample")
	}

	logger := zerolog.Nop()
	ctx := logger.WithContext(cmd.Context())

	a, err := analysis.NewController().Analyze(ctx, fileName, data, cfg)
	if err != nil {
		return err
	}

	return ac.reporter.Handle(a)
}
