package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/turno-scheduler/internal/booking"
	"github.com/example/turno-scheduler/internal/browser"
	"github.com/example/turno-scheduler/internal/config"
	"github.com/example/turno-scheduler/internal/db"
	"github.com/example/turno-scheduler/internal/history"
	"github.com/example/turno-scheduler/internal/migrate"
	"github.com/example/turno-scheduler/internal/notify"
	"github.com/example/turno-scheduler/internal/schedule"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Wait for the release instant, book the visit and mail the confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := migrate.Up(ctx, d); err != nil {
				return err
			}
			repo := history.NewRepo(d)

			visit := schedule.NextVisitDate(time.Now().In(cfg.Timezone))
			runID, err := repo.StartRun(ctx, visit.Format("2006-01-02"))
			if err != nil {
				return err
			}

			session, err := browser.StartSession(browser.SessionOptions{Headless: cfg.Headless})
			if err != nil {
				return err
			}
			defer session.Close()

			runner := &booking.Runner{
				Cfg:     cfg,
				Driver:  session,
				History: &history.RunRecorder{Repo: repo, RunID: runID},
			}

			result, err := runner.Run(ctx)
			if err != nil {
				msg := err.Error()
				_ = repo.FinishRun(ctx, runID, "error", nil, &msg)
				return err
			}

			if result.ArtifactPath == "" {
				_ = repo.FinishRun(ctx, runID, "no-artifact", nil, nil)
				log.Printf("run finished without a confirmation document")
				return nil
			}
			_ = repo.FinishRun(ctx, runID, "booked", &result.ArtifactPath, nil)

			fmt.Fprintln(os.Stdout, result.ArtifactPath)

			if cfg.MailEnabled() {
				mailer := notify.New(cfg.ResendAPIKey, cfg.MailFrom)
				if !mailer.SendArtifact(ctx, cfg.MailTo, result.VisitDate.Format("02/01/2006"), result.ArtifactPath) {
					log.Printf("no notification could be delivered")
				}
			}
			return nil
		},
	}
}
