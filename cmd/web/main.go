package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/smaport/insight/pkg/models/domain"
	"github.com/smaport/insight/pkg/server"
	"github.com/smaport/insight/pkg/services/analysis"
	"github.com/smaport/insight/pkg/services/config"
	"github.com/smaport/insight/pkg/services/report"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Smaport Insight",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the insight config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	defaults := domain.AnalysisConfig{TopN: cfg.Analysis.TopN, Sigma: cfg.Analysis.Sigma}
	if err := defaults.Validate(); err != nil {
		return fmt.Errorf("invalid analysis defaults: %w", err)
	}

	requester := report.NewClient(report.ClientOptions{
		BaseURL: cfg.Report.BaseURL,
		APIKey:  config.APIKey(),
		Model:   cfg.Report.Model,
		Timeout: time.Duration(cfg.Report.TimeoutSeconds) * time.Second,
	})

	addr := net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)
	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analyses:  analysis.NewController(),
			Requester: requester,
			Defaults:  defaults,
		},
	})

	return api.Start()
}
