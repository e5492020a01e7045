package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/coach"
	"github.com/abhisek/recallkit/internal/config"
	"github.com/abhisek/recallkit/internal/embed"
	"github.com/abhisek/recallkit/internal/extract"
	"github.com/abhisek/recallkit/internal/llm"
	"github.com/abhisek/recallkit/internal/logging"
	"github.com/abhisek/recallkit/internal/metrics"
	"github.com/abhisek/recallkit/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "recallkit",
	Short: "Active recall study kit",
	Long: "recallkit splits a document into chunks, derives study concepts and " +
		"questions from it, and scores your free-text answers in a study session.",
	SilenceUsage: true,
	Args:         cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./recallkit.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Console log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this rotating file")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// runtime is the configuration and logger shared by a command invocation.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup loads configuration and builds the logger. Interactive commands
// mute the console so log lines do not tear the TUI.
func setup(cmd *cobra.Command, interactive bool) (*runtime, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Logging.File = f
	}

	logCfg := cfg.Logging
	if interactive {
		logCfg = logging.Quiet(logCfg)
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &runtime{cfg: cfg, logger: logger}, nil
}

func (rt *runtime) close() {
	_ = rt.logger.Sync()
}

// newPipeline resolves the encoder and assembles the pipeline. The
// returned release func frees model resources.
func (rt *runtime) newPipeline(ctx context.Context, m *metrics.Metrics) (*pipeline.Pipeline, func(), error) {
	enc, err := embed.Resolve(ctx, rt.cfg.Embed, rt.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve encoder: %w", err)
	}
	release := func() {
		if c, ok := enc.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				rt.logger.Warn("Failed to release encoder", zap.Error(err))
			}
		}
	}

	p, err := pipeline.New(rt.cfg.Pipeline(), enc, m, rt.logger)
	if err != nil {
		release()
		return nil, nil, err
	}
	return p, release, nil
}

// newCoach builds the coach. Without a configured provider the coach is
// returned disabled rather than failing.
func (rt *runtime) newCoach(ctx context.Context) *coach.Coach {
	provider, err := llm.NewProvider(ctx, rt.cfg.LLM, rt.logger)
	if err != nil {
		rt.logger.Warn("LLM provider not available, coaching disabled", zap.Error(err))
	}
	return coach.New(provider, rt.cfg.Coach)
}

// loadDocument extracts the document at args[0], or the built-in sample
// when no path is given.
func (rt *runtime) loadDocument(args []string) (extract.Document, error) {
	if len(args) == 0 || args[0] == "" {
		return extract.Sample(), nil
	}
	opts := extract.DefaultOptions()
	opts.Logger = rt.logger
	return extract.File(args[0], opts)
}
