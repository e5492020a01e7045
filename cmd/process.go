package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/recallkit/internal/metrics"
	"github.com/abhisek/recallkit/internal/report"
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Run the pipeline on a document and save the report",
	Long: "Segments, embeds and analyses a .txt, .md, .html, .srt or .pdf file " +
		"(or the built-in sample) and writes a JSON report.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		if cmd.Flags().Changed("max-chars") {
			rt.cfg.Segment.MaxChars, _ = cmd.Flags().GetInt("max-chars")
		}
		if s, _ := cmd.Flags().GetString("encoder"); s != "" {
			rt.cfg.Embed.Strategy = s
		}
		if cmd.Flags().Changed("seed") {
			rt.cfg.Seed, _ = cmd.Flags().GetUint64("seed")
		}
		if f, _ := cmd.Flags().GetString("metrics-file"); f != "" {
			rt.cfg.Metrics.TextfilePath = f
		}
		if err := rt.cfg.Validate(); err != nil {
			return err
		}

		doc, err := rt.loadDocument(args)
		if err != nil {
			return err
		}

		m := metrics.New()
		p, release, err := rt.newPipeline(cmd.Context(), m)
		if err != nil {
			return err
		}
		defer release()

		res, err := p.Run(cmd.Context(), doc.Source, doc.Text)
		if err != nil {
			return err
		}

		rep := report.Build(res, time.Now())
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = defaultReportPath(rep.Metadata.Timestamp)
		}
		if err := rep.Save(out); err != nil {
			return err
		}
		rt.logger.Info("Report saved", zap.String("path", out), zap.String("run_id", res.RunID))

		if path := rt.cfg.Metrics.TextfilePath; path != "" {
			if err := m.WriteTextfile(path); err != nil {
				return err
			}
		}

		printReport(cmd.OutOrStdout(), rep)
		fmt.Fprintf(cmd.OutOrStdout(), "\nReport saved to %s\n", out)
		return nil
	},
}

func init() {
	processCmd.Flags().StringP("out", "o", "", "Report path (default output/recallkit_<timestamp>.json)")
	processCmd.Flags().Int("max-chars", 0, "Maximum characters per chunk")
	processCmd.Flags().String("encoder", "", "Encoder strategy: auto, onnx, openai, gemini, synthetic")
	processCmd.Flags().Uint64("seed", 0, "Question synthesis seed (default derived from the text)")
	processCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
}

func defaultReportPath(ts time.Time) string {
	return filepath.Join("output", fmt.Sprintf("recallkit_%s.json", ts.Format("20060102_150405")))
}

// printReport writes a human-readable overview of rep.
func printReport(w io.Writer, rep *report.Report) {
	md := rep.Metadata
	fmt.Fprintf(w, "Source:     %s\n", md.Source)
	fmt.Fprintf(w, "Model:      %s (%d dims)\n", md.ModelName, md.EmbeddingDimension)
	fmt.Fprintf(w, "Chunks:     %d (mean %.0f chars)\n", md.ChunkCount, rep.SummaryStatistics.MeanChunkLength)
	fmt.Fprintf(w, "Duration:   %.2fs\n", md.ProcessingDurationSeconds)

	fmt.Fprintf(w, "\nConcepts (%d)\n%s\n", len(rep.Concepts), strings.Repeat("─", 40))
	for i, c := range rep.Concepts {
		fmt.Fprintf(w, "  %d. %s\n", i+1, c)
	}

	fmt.Fprintf(w, "\nQuestions (%d)\n%s\n", len(rep.Questions), strings.Repeat("─", 40))
	for _, q := range rep.Questions {
		fmt.Fprintf(w, "  [%s] %s  (%s, %s)\n", q.ID, q.Prompt, q.Difficulty, q.SourceChunkID)
	}

	if len(rep.SimilarityPairs) > 0 {
		fmt.Fprintf(w, "\nMost similar chunks\n%s\n", strings.Repeat("─", 40))
		for _, p := range rep.SimilarityPairs {
			fmt.Fprintf(w, "  %.4f  %s <> %s\n", p.Score, p.ChunkA, p.ChunkB)
		}
	}

	c := rep.Correspondence
	fmt.Fprintf(w, "\nCorrespondence: %.1f/100 (%d valid, %d partial, %d weak) via %s\n",
		c.OverallScore, c.Valid, c.Partial, c.Weak, c.Strategy)
}
