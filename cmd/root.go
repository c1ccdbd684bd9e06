// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naka-gawa/gitissues/internal/config"
	"github.com/naka-gawa/gitissues/internal/gateway"
	"github.com/naka-gawa/gitissues/internal/logger"
	"github.com/naka-gawa/gitissues/internal/usecase"
)

var (
	cfgFile string
	verbose bool
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "gitissues",
	Short: "Counts open GitHub issues per time window.",
	Long: `gitissues reports how many issues of a public GitHub repository are open,
split into four creation-date windows: all time, the last 24 hours,
the last 7 days excluding the last 24 hours, and everything older than 7 days.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .gitissues.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("github-url", "", "Base URL of the GitHub REST API")

	_ = v.BindPFlag("github.base_url", rootCmd.PersistentFlags().Lookup("github-url"))
}

// app holds the dependencies shared by the subcommands.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	aggregator *usecase.Aggregator
}

// newApp loads configuration and wires the gateway and aggregator.
func newApp() (*app, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(os.Stderr, cfg.Log, verbose)
	if err != nil {
		return nil, err
	}
	log.Debug("configuration loaded",
		"addr", cfg.Server.Addr,
		"github_base_url", cfg.GitHub.BaseURL,
		"github_timeout", cfg.GitHub.Timeout,
	)

	httpClient := gateway.NewHTTPClient(log, cfg.Log.OutboundRequests, &http.Client{Timeout: cfg.GitHub.Timeout})
	githubGateway, err := gateway.NewGitHubGateway(gateway.Options{
		BaseURL:    cfg.GitHub.BaseURL,
		UserAgent:  cfg.GitHub.UserAgent,
		HTTPClient: httpClient,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}

	return &app{
		cfg:        cfg,
		logger:     log,
		aggregator: usecase.NewAggregator(githubGateway, log),
	}, nil
}
