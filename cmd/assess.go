package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/recallkit/internal/assess"
	"github.com/abhisek/recallkit/internal/coach"
	"github.com/abhisek/recallkit/internal/report"
)

var assessCmd = &cobra.Command{
	Use:   "assess \"answer\"",
	Short: "Score one answer against a question of a saved report",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer rt.close()

		path, _ := cmd.Flags().GetString("report")
		id, _ := cmd.Flags().GetString("question")

		rep, err := report.Load(path)
		if err != nil {
			return err
		}
		q, ok := rep.Question(id)
		if !ok {
			return fmt.Errorf("question %q not found in %s", id, path)
		}

		answer := strings.Join(args, " ")
		res, err := assess.NewAssessor(rt.cfg.Assess).Assess(q, answer)
		if errors.Is(err, assess.ErrEmptyAnswer) {
			return fmt.Errorf("%w: write an answer to assess", err)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[%s] %s\n\n", q.ID, q.Prompt)
		printAssessment(out, res)

		if withCoach, _ := cmd.Flags().GetBool("coach"); withCoach {
			c := rt.newCoach(cmd.Context())
			adv, err := c.Advise(cmd.Context(), coach.Input{Question: q, Answer: answer, Assessment: res})
			if err != nil {
				return err
			}
			printAdvice(out, adv)
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().StringP("report", "r", "", "Saved report to read the question from")
	assessCmd.Flags().StringP("question", "q", "", "Question ID, e.g. q_01")
	_ = assessCmd.MarkFlagRequired("report")
	_ = assessCmd.MarkFlagRequired("question")
	assessCmd.Flags().Bool("coach", false, "Also ask the configured LLM coach for feedback")
}

func printAssessment(w io.Writer, a *assess.Assessment) {
	fmt.Fprintf(w, "Score: %d/100 (%s)\n", a.Score, a.Tier)
	for _, line := range a.Feedback {
		fmt.Fprintf(w, "  • %s\n", line)
	}
}

func printAdvice(w io.Writer, adv *coach.Advice) {
	fmt.Fprintf(w, "\nCoach (%s)\n  %s\n", adv.Model, adv.Feedback)
	for _, p := range adv.MissingPoints {
		fmt.Fprintf(w, "  - %s\n", p)
	}
	if adv.FollowUp != "" {
		fmt.Fprintf(w, "  » %s\n", adv.FollowUp)
	}
}
