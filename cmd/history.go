package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/turno-scheduler/internal/config"
	"github.com/example/turno-scheduler/internal/db"
	"github.com/example/turno-scheduler/internal/history"
	"github.com/example/turno-scheduler/internal/migrate"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past runs",
	}
	cmd.AddCommand(newHistoryListCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "list",
		Short: "List recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			ctx := context.Background()

			d, err := db.Open(ctx, cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}

			runs, err := history.NewRepo(d).ListRuns(ctx, limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				artifact := "-"
				if r.ArtifactPath != nil {
					artifact = *r.ArtifactPath
				}
				lastErr := ""
				if r.LastError != nil {
					lastErr = " error=" + *r.LastError
				}
				fmt.Fprintf(os.Stdout, "id=%d visit=%s outcome=%s started=%s artifact=%s%s\n",
					r.ID, r.VisitDate, r.Outcome, r.StartedAt, artifact, lastErr)
			}
			return nil
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "max runs to list")
	return c
}
