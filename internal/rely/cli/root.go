// Package cli implements the rely command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/build-flow-labs/rely/internal/rely/config"
	"github.com/build-flow-labs/rely/internal/rely/github"
	"github.com/build-flow-labs/rely/internal/rely/metric"
	"github.com/build-flow-labs/rely/internal/rely/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by subcommands once configuration is loaded.
type app struct {
	version    string
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

// NewRootCmd builds the rely command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version, v: viper.New()}

	root := &cobra.Command{
		Use:   "rely",
		Short: "Score how trustworthy a GitHub repository looks",
		Long: `rely fetches a repository's public metadata and root listing from GitHub
and reduces ten weighted metrics into one trust score between 0 and 1.

Activity, popularity and hygiene signals are each rated POOR, AVERAGE or
GOOD and combined into a percentage and a letter grade.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default .rely.yaml in . or $HOME)")
	pf.String("token", "", "GitHub token (or RELY_GITHUB_TOKEN, GITHUB_PERSONAL_ACCESS_TOKEN, GITHUB_TOKEN)")
	pf.String("api-url", config.DefaultAPIURL, "GitHub REST API base URL")
	pf.Duration("timeout", config.DefaultTimeout, "timeout for GitHub API requests")
	pf.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn, error")

	_ = a.v.BindPFlag("github-token", pf.Lookup("token"))
	_ = a.v.BindPFlag("api-url", pf.Lookup("api-url"))
	_ = a.v.BindPFlag("timeout", pf.Lookup("timeout"))
	_ = a.v.BindPFlag("log-level", pf.Lookup("log-level"))

	root.AddCommand(newScoreCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newVersionCmd(a))
	return root
}

func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = cfg.Logger()
	slog.SetDefault(a.logger)
	return nil
}

// newService wires the GitHub client and the builtin metrics into a scoring
// service.
func (a *app) newService(ctx context.Context) (*service.Service, error) {
	client, err := github.NewClient(ctx, github.Config{
		Token:   a.cfg.GitHubToken,
		BaseURL: a.cfg.APIURL,
		Timeout: a.cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	if a.cfg.GitHubToken == "" {
		a.logger.Warn("no GitHub token configured, requests are subject to unauthenticated rate limits")
	}

	registry, err := metric.Default()
	if err != nil {
		return nil, fmt.Errorf("building metric registry: %w", err)
	}
	return service.New(client, registry, service.WithLogger(a.logger))
}
