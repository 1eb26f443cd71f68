package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lawrencejr5/habibee/internal/apperrors"
	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/internal/repository"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TimerService tracks a habit's pausable task timer. State lives entirely in
// two persisted fields: timer_start_time (epoch millis, nil when not
// running) and timer_elapsed (accumulated seconds from paused segments).
// Clients project live elapsed time locally; the server never ticks.
type TimerService struct {
	habitRepo *repository.HabitRepository
	streaks   *StreakService
}

// NewTimerService creates a new instance of TimerService.
func NewTimerService(habitRepo *repository.HabitRepository, streaks *StreakService) *TimerService {
	return &TimerService{
		habitRepo: habitRepo,
		streaks:   streaks,
	}
}

// StartTimer starts or resumes the timer by stamping the running segment's
// start. Calling it while already running rebases the segment from now; the
// model does not reject a double start.
func (t *TimerService) StartTimer(ctx context.Context, actorID primitive.ObjectID, habitID string, now time.Time) (*models.Habit, error) {
	habit, err := t.loadOwned(ctx, actorID, habitID)
	if err != nil {
		return nil, err
	}

	start := now.UnixMilli()
	if err := t.habitRepo.UpdateTimer(ctx, habit.ID, habit.TimerElapsed, &start); err != nil {
		return nil, fmt.Errorf("failed to start timer: %v", err)
	}

	habit.TimerStartTime = &start
	logger.Log.WithField("habit_id", habitID).Info("Timer started")
	return habit, nil
}

// PauseTimer folds the running segment into the accumulated seconds, clamped
// to the habit's duration ceiling, and clears the start timestamp. Pausing a
// timer that is not running just rewrites the current state.
func (t *TimerService) PauseTimer(ctx context.Context, actorID primitive.ObjectID, habitID string, now time.Time) (*models.Habit, error) {
	habit, err := t.loadOwned(ctx, actorID, habitID)
	if err != nil {
		return nil, err
	}

	total := pausedTotal(habit, now)
	if err := t.habitRepo.UpdateTimer(ctx, habit.ID, total, nil); err != nil {
		return nil, fmt.Errorf("failed to pause timer: %v", err)
	}

	habit.TimerElapsed = total
	habit.TimerStartTime = nil
	logger.Log.WithFields(map[string]interface{}{
		"habit_id": habitID,
		"elapsed":  total,
	}).Info("Timer paused")
	return habit, nil
}

// SetTimer writes raw timer fields as sent by a client. Used by devices that
// sync their local timer state; concurrent writers follow last write wins.
func (t *TimerService) SetTimer(ctx context.Context, actorID primitive.ObjectID, habitID string, elapsed int64, startTime *int64) error {
	habit, err := t.loadOwned(ctx, actorID, habitID)
	if err != nil {
		return err
	}

	if elapsed < 0 {
		elapsed = 0
	}
	if ceiling := habit.TimerCeiling(); elapsed > ceiling {
		elapsed = ceiling
	}

	if err := t.habitRepo.UpdateTimer(ctx, habit.ID, elapsed, startTime); err != nil {
		return fmt.Errorf("failed to set timer: %v", err)
	}
	return nil
}

// FinishTimer records today's completion and then resets the timer. The
// reset happens even when the completion fails with ErrAlreadyCompleted; a
// finished session always clears its timer state. The completion error (if
// any) is returned after the reset so the caller can tell the cases apart.
func (t *TimerService) FinishTimer(ctx context.Context, actorID primitive.ObjectID, habitID string, today string) error {
	habit, err := t.loadOwned(ctx, actorID, habitID)
	if err != nil {
		return err
	}

	completionErr := t.streaks.RecordCompletion(ctx, actorID, habitID, today)
	if completionErr != nil && !errors.Is(completionErr, apperrors.ErrAlreadyCompleted) {
		return completionErr
	}

	if err := t.habitRepo.UpdateTimer(ctx, habit.ID, 0, nil); err != nil {
		return fmt.Errorf("failed to reset timer: %v", err)
	}

	logger.Log.WithField("habit_id", habitID).Info("Timer session finished")
	return completionErr
}

func (t *TimerService) loadOwned(ctx context.Context, actorID primitive.ObjectID, habitID string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %w", apperrors.ErrNotFound)
	}

	habit, err := t.habitRepo.GetHabitByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load habit: %v", err)
	}

	if habit.UserID != actorID {
		return nil, apperrors.ErrUnauthorized
	}
	return habit, nil
}

// pausedTotal is the elapsed total to persist when pausing at the given
// instant: accumulated seconds plus the running segment, clamped to the
// habit's duration ceiling.
func pausedTotal(habit *models.Habit, now time.Time) int64 {
	total := habit.TimerElapsed
	if habit.TimerStartTime != nil {
		segment := (now.UnixMilli() - *habit.TimerStartTime) / 1000
		if segment > 0 {
			total += segment
		}
	}
	if ceiling := habit.TimerCeiling(); total > ceiling {
		total = ceiling
	}
	return total
}
