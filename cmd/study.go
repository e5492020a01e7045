package cmd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/app"
	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/metrics"
	"github.com/abhisek/recallkit/internal/questions"
	"github.com/abhisek/recallkit/internal/report"
	"github.com/abhisek/recallkit/internal/screens/study"
)

var studyCmd = &cobra.Command{
	Use:   "study [file|report.json]",
	Short: "Start an interactive study session",
	Long: "Opens the study TUI. A .json argument is loaded as a saved report; " +
		"any other file, or none for the built-in sample, is processed first.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudy(cmd, args)
	},
}

func runStudy(cmd *cobra.Command, args []string) error {
	rt, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	m := metrics.New()
	var load study.Loader

	if len(args) == 1 && strings.EqualFold(filepath.Ext(args[0]), ".json") {
		path := args[0]
		load = func(context.Context) ([]questions.Question, error) {
			rep, err := report.Load(path)
			if err != nil {
				return nil, err
			}
			return rep.Questions, nil
		}
	} else {
		doc, err := rt.loadDocument(args)
		if err != nil {
			return err
		}
		p, release, err := rt.newPipeline(ctx, m)
		if err != nil {
			return err
		}
		defer release()

		load = func(ctx context.Context) ([]questions.Question, error) {
			res, err := p.Run(ctx, doc.Source, doc.Text)
			if err != nil {
				return nil, err
			}
			return res.Questions, nil
		}
	}

	studyScreen := study.New(study.Deps{
		Load:        load,
		Scorer:      assess.NewAssessor(rt.cfg.Assess),
		Coach:       rt.newCoach(ctx),
		Metrics:     m,
		Logger:      rt.logger,
		Placeholder: rt.cfg.Assess.Placeholder,
	})

	if err := app.Run(ctx, studyScreen); err != nil {
		return err
	}

	if path := rt.cfg.Metrics.TextfilePath; path != "" {
		if err := m.WriteTextfile(path); err != nil {
			rt.logger.Warn("Failed to write metrics", zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}
