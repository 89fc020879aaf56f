package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/ui/components"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show this week's activity and the current streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *appEnv) error {
			ctx := cmd.Context()
			week, err := e.rec.WeeklyProgress(ctx)
			if err != nil {
				return err
			}
			streak, err := e.rec.Streak(ctx)
			if err != nil {
				return err
			}
			today, err := e.rec.DailyLessonCount(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), components.Week{
				Days:      week,
				Streak:    streak,
				Milestone: progress.NextStreakMilestone(streak),
				Today:     today,
			}.View())
			return nil
		})
	},
}
