package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/curriculum"
	"github.com/abhisek/bodypath/internal/progress"
)

var completeCmd = &cobra.Command{
	Use:   "complete",
	Short: "Record a completion",
}

var completeLessonCmd = &cobra.Command{
	Use:   "lesson <id>",
	Short: "Mark a lesson (1-28) complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseNumber("lesson id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(e *appEnv) error {
			if err := e.requireContent(progress.Lesson(id)); err != nil {
				return err
			}
			added, err := e.rec.RecordLesson(cmd.Context(), id)
			if err != nil {
				return err
			}
			printRecorded(cmd.OutOrStdout(), lessonLabel(id), added)
			return nil
		})
	},
}

var completeReviewCmd = &cobra.Command{
	Use:   "review <unit>",
	Short: "Mark a unit review complete",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseNumber("unit", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(e *appEnv) error {
			ref := progress.Review(unit)
			if err := e.requireContent(ref); err != nil {
				return err
			}
			updated, stop := e.trackUpdates()
			defer stop()
			added, err := e.rec.RecordItem(cmd.Context(), ref)
			if err != nil {
				return err
			}
			printRecorded(cmd.OutOrStdout(), itemLabel(ref), added)
			if updated() {
				return printStreakLine(cmd, e)
			}
			return nil
		})
	},
}

var completeSkipQuizCmd = &cobra.Command{
	Use:   "skip-quiz <unit>",
	Short: "Record a passed skip quiz, completing the previous unit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := parseNumber("unit", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(e *appEnv) error {
			if err := e.requireContent(progress.SkipQuiz(unit)); err != nil {
				return err
			}
			updated, stop := e.trackUpdates()
			defer stop()
			res, err := e.rec.CompleteSkipQuiz(cmd.Context(), unit)
			printCascade(cmd.OutOrStdout(), res)
			if err != nil {
				return err
			}
			if updated() {
				return printStreakLine(cmd, e)
			}
			return nil
		})
	},
}

var completeSlotCmd = &cobra.Command{
	Use:   "slot <index>",
	Short: "Complete a roadmap slot (0-45) by its kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid slot index %q", args[0])
		}
		return withEnv(cmd, func(e *appEnv) error {
			slot, err := curriculum.SlotAt(i)
			if err != nil {
				return err
			}
			if err := e.requireContent(progress.SlotRef(slot)); err != nil {
				return err
			}
			updated, stop := e.trackUpdates()
			defer stop()
			ref, added, err := e.rec.CompleteSlot(cmd.Context(), i)
			if err != nil {
				return err
			}
			printRecorded(cmd.OutOrStdout(), itemLabel(ref), added)
			if updated() {
				return printStreakLine(cmd, e)
			}
			return nil
		})
	},
}

func init() {
	completeCmd.AddCommand(completeLessonCmd)
	completeCmd.AddCommand(completeReviewCmd)
	completeCmd.AddCommand(completeSkipQuizCmd)
	completeCmd.AddCommand(completeSlotCmd)
}

// withEnv opens the app environment for the duration of fn.
func withEnv(cmd *cobra.Command, fn func(e *appEnv) error) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(e)
}

func parseNumber(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return n, nil
}

func lessonLabel(id int) string {
	if title, err := curriculum.LessonTitle(id); err == nil {
		return fmt.Sprintf("Lesson %d (%s)", id, title)
	}
	return fmt.Sprintf("Lesson %d", id)
}

func itemLabel(ref progress.ItemRef) string {
	switch ref.Kind {
	case progress.ItemLesson:
		return lessonLabel(ref.N)
	case progress.ItemReview:
		return fmt.Sprintf("Unit %d review", ref.N)
	case progress.ItemSkipQuiz:
		return fmt.Sprintf("Unit %d skip quiz", ref.N)
	default:
		return fmt.Sprintf("Practice slot %d", ref.N)
	}
}

func printRecorded(w io.Writer, label string, added bool) {
	if added {
		fmt.Fprintf(w, "%s completed\n", label)
		return
	}
	fmt.Fprintf(w, "%s was already complete\n", label)
}

func printStreakLine(cmd *cobra.Command, e *appEnv) error {
	streak, err := e.rec.Streak(cmd.Context())
	if err != nil {
		return err
	}
	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Streak: %d %s\n", streak, unit)
	return nil
}

func printCascade(w io.Writer, res progress.CascadeResult) {
	if res.PreviousUnit != 0 {
		var parts []string
		for _, id := range res.Lessons {
			parts = append(parts, strconv.Itoa(id))
		}
		fmt.Fprintf(w, "Unit %d: %d lessons and %d other items newly completed", res.PreviousUnit, len(res.Lessons), len(res.Items))
		if len(parts) > 0 {
			fmt.Fprintf(w, " (lessons %s)", strings.Join(parts, ", "))
		}
		fmt.Fprintln(w)
	}
	printRecorded(w, fmt.Sprintf("Unit %d skip quiz", res.Unit), res.SkipQuiz)
}
