package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/config"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print storage-update events published by other processes",
	Long:  "Subscribe to the Redis notify channel and print a line for every storage update until interrupted. Requires notify.backend=redis.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(e *appEnv) error {
			if e.cfg.Notify.Backend != config.NotifyRedis {
				return fmt.Errorf("watch needs the redis notify backend (set %sNOTIFY_BACKEND=redis)", config.EnvPrefix)
			}
			rn, err := e.redisNotifier()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return rn.Listen(ctx, func(event string) {
				fmt.Fprintf(out, "%s %s\n", time.Now().Format(time.RFC3339), event)
			})
		})
	},
}
