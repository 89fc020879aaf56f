package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/questions"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <lesson|review|skip-quiz> <n>",
	Short: "Print the questions for a lesson, review or skip quiz",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseNumber("number", args[1])
		if err != nil {
			return err
		}
		var ref progress.ItemRef
		switch args[0] {
		case "lesson":
			ref = progress.Lesson(n)
		case "review":
			ref = progress.Review(n)
		case "skip-quiz":
			ref = progress.SkipQuiz(n)
		default:
			return fmt.Errorf("unknown kind %q (want lesson, review or skip-quiz)", args[0])
		}
		answers, _ := cmd.Flags().GetBool("answers")

		return withEnv(cmd, func(e *appEnv) error {
			bank, err := e.bank()
			if err != nil {
				return err
			}
			qs, err := bank.Lookup(ref)
			if errors.Is(err, questions.ErrNotFound) {
				return fmt.Errorf("%s not found", itemLabel(ref))
			}
			if err != nil {
				return err
			}
			printQuestions(cmd.OutOrStdout(), qs, answers)
			return nil
		})
	},
}

func init() {
	questionsCmd.Flags().Bool("answers", false, "Show correct answers")
}

func printQuestions(w io.Writer, qs []questions.Question, answers bool) {
	for i, q := range qs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%d. %s\n", q.ID, q.Question)
		for _, o := range q.Options {
			mark := " "
			if answers && o.ID == q.CorrectAnswer {
				mark = "*"
			}
			fmt.Fprintf(w, "   %s %s) %s\n", mark, o.ID, o.Label)
		}
		if !answers {
			continue
		}
		switch {
		case q.Type == questions.TypeFillInBlank:
			fmt.Fprintf(w, "   answer: %s\n", q.CorrectAnswer)
		case !q.Gradable() && q.GradingNotes != "":
			fmt.Fprintf(w, "   notes: %s\n", strings.TrimSpace(q.GradingNotes))
		}
	}
}
