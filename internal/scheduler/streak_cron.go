package cron

import (
	"context"

	"github.com/lawrencejr5/habibee/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartStreakCronJobs schedules the nightly streak decay sweep. Runs shortly
// after midnight so yesterday's misses are settled before users wake up.
func StartStreakCronJobs(sweeper *jobs.StreakSweeper) {
	c := cron.New()

	c.AddFunc("5 0 * * *", func() {
		if err := sweeper.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Nightly streak scan failed")
		}
	})

	c.Start()
}
