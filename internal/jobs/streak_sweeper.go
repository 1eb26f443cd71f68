package jobs

import (
	"context"
	"fmt"

	"github.com/lawrencejr5/habibee/internal/repository"
	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/sirupsen/logrus"
)

// StreakSweeper runs the decay pass over every account. The per-user
// reconcile endpoint stays the primary path (the app calls it on
// foregrounding); this sweep just catches users who never open the app.
type StreakSweeper struct {
	UserRepo      *repository.UserRepository
	StreakService *services.StreakService
	Today         func() string
}

// NewStreakSweeper creates a new instance of StreakSweeper.
func NewStreakSweeper(userRepo *repository.UserRepository, streakService *services.StreakService, today func() string) *StreakSweeper {
	return &StreakSweeper{
		UserRepo:      userRepo,
		StreakService: streakService,
		Today:         today,
	}
}

// RunDailyScan reconciles every user's streaks against today's date. The
// date is derived once for the whole scan.
func (s *StreakSweeper) RunDailyScan(ctx context.Context) error {
	users, err := s.UserRepo.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch users: %v", err)
	}

	today := s.Today()
	var failed int
	for _, user := range users {
		if err := s.StreakService.ReconcileStreaks(ctx, user.ID, today); err != nil {
			logrus.WithField("userID", user.ID.Hex()).WithError(err).Error("Streak reconcile failed for user")
			failed++
		}
	}

	logrus.WithFields(logrus.Fields{
		"users":  len(users),
		"failed": failed,
		"date":   today,
	}).Info("Streak decay scan completed")

	if failed > 0 {
		return fmt.Errorf("streak scan finished with %d failures", failed)
	}
	return nil
}
