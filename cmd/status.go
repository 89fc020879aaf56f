package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/curriculum"
	"github.com/abhisek/bodypath/internal/ui/components"
	"github.com/abhisek/bodypath/internal/ui/layout"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the course roadmap with completed slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func init() {
	statusCmd.Flags().Bool("compact", false, "One line per unit")
	statusCmd.Flags().Int("width", layout.DefaultWidth, "Render width")
}

func runStatus(cmd *cobra.Command) error {
	compact, _ := cmd.Flags().GetBool("compact")
	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = layout.DefaultWidth
	}

	return withEnv(cmd, func(e *appEnv) error {
		ctx := cmd.Context()
		units, err := e.rec.Summary(ctx)
		if err != nil {
			return err
		}
		lessons, err := e.rec.CompletedLessons(ctx)
		if err != nil {
			return err
		}
		streak, err := e.rec.Streak(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, layout.RenderHeader("Roadmap", len(lessons), curriculum.LessonCount(), streak, width))
		fmt.Fprintln(out, components.Roadmap{
			Units:   units,
			Width:   width,
			Compact: compact || layout.IsCompactWidth(width),
		}.View())
		return nil
	})
}
