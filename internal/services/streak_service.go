package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawrencejr5/habibee/internal/apperrors"
	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/pkg/dateutil"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HabitStreakStore is the slice of the habit repository the streak engine
// touches. Satisfied by *repository.HabitRepository.
type HabitStreakStore interface {
	GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error)
	UpdateHabitFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error
}

// EntryStore is the completion-entry lookup/insert pair the once-per-day
// guard runs on. Satisfied by *repository.EntryRepository.
type EntryStore interface {
	FindByHabitAndDate(ctx context.Context, habitID primitive.ObjectID, date string) (*models.HabitEntry, error)
	InsertEntry(ctx context.Context, entry *models.HabitEntry) (*models.HabitEntry, error)
}

// UserStreakStore reads and writes the user-level streak counter. Satisfied
// by *repository.UserRepository.
type UserStreakStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int64, lastStreakDate string) error
}

// WeeklyStatStore appends weekly activity rows. Satisfied by
// *repository.WeeklyStatRepository.
type WeeklyStatStore interface {
	InsertStat(ctx context.Context, stat *models.WeeklyStat) (*models.WeeklyStat, error)
	GetStatsBetween(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WeeklyStat, error)
}

// StreakService holds the streak bookkeeping rules: at most one completion
// per habit per calendar day, habit-level and user-level counters, and the
// lazy decay pass that zeroes broken streaks.
type StreakService struct {
	habitRepo  HabitStreakStore
	entryRepo  EntryStore
	userRepo   UserStreakStore
	weeklyRepo WeeklyStatStore
}

// NewStreakService creates a new instance of StreakService.
func NewStreakService(habitRepo HabitStreakStore, entryRepo EntryStore, userRepo UserStreakStore, weeklyRepo WeeklyStatStore) *StreakService {
	return &StreakService{
		habitRepo:  habitRepo,
		entryRepo:  entryRepo,
		userRepo:   userRepo,
		weeklyRepo: weeklyRepo,
	}
}

// RecordCompletion records one completion of a habit for the given calendar
// day. The date string is computed once at the call boundary and passed in,
// never re-derived mid-operation.
//
// The habit-level streak advance is authoritative; if the user-level advance
// fails afterwards the error is surfaced but the habit update stays.
func (s *StreakService) RecordCompletion(ctx context.Context, actorID primitive.ObjectID, habitID string, today string) error {
	habit, err := s.loadOwnedHabit(ctx, actorID, habitID)
	if err != nil {
		return err
	}

	// Idempotence guard: one completion per (habit, day). A concurrent caller
	// loses this race at the unique index instead, which serves the same rule.
	if _, err := s.entryRepo.FindByHabitAndDate(ctx, habit.ID, today); err == nil {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": habitID,
			"date":     today,
		}).Info("Habit already completed today")
		return apperrors.ErrAlreadyCompleted
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check today's entry: %v", err)
	}

	entry := &models.HabitEntry{
		UserID:  actorID,
		HabitID: habit.ID,
		Status:  models.StatusCompleted,
		Date:    today,
	}
	if _, err := s.entryRepo.InsertEntry(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrAlreadyCompleted
		}
		return fmt.Errorf("failed to insert entry: %v", err)
	}

	current, highest := advanceStreak(habit.CurrentStreak, habit.HighestStreak)
	err = s.habitRepo.UpdateHabitFields(ctx, habit.ID, bson.M{
		"current_streak": current,
		"highest_streak": highest,
		"lastCompleted":  today,
	})
	if err != nil {
		return fmt.Errorf("failed to advance habit streak: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id":       habitID,
		"current_streak": current,
	}).Info("Habit streak advanced")

	return s.advanceUserStreak(ctx, actorID, today)
}

// advanceUserStreak bumps the user-level "did anything today" counter, at
// most once per calendar day, and appends the weekly activity row the first
// time it advances on that day.
func (s *StreakService) advanceUserStreak(ctx context.Context, userID primitive.ObjectID, today string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for streak: %v", err)
	}

	if user.LastStreakDate == today {
		// Some other habit already advanced the global streak today.
		return nil
	}

	if err := s.userRepo.UpdateStreak(ctx, userID, user.Streak+1, today); err != nil {
		return err
	}

	day, err := dateutil.WeekdayOf(today)
	if err != nil {
		return fmt.Errorf("failed to derive weekday: %v", err)
	}
	_, err = s.weeklyRepo.InsertStat(ctx, &models.WeeklyStat{
		UserID: userID,
		Day:    day,
		Date:   today,
	})
	if err != nil {
		return fmt.Errorf("failed to record weekly stat: %v", err)
	}

	return nil
}

// ReconcileStreaks zeroes out every streak of the actor that is more than one
// day behind today. Runs lazily (app foregrounding) and from the nightly
// sweep; a one-day gap is "completed yesterday, still alive" and never resets.
func (s *StreakService) ReconcileStreaks(ctx context.Context, actorID primitive.ObjectID, today string) error {
	habits, err := s.habitRepo.GetHabitsByUser(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to fetch habits: %v", err)
	}

	for i := range habits {
		habit := &habits[i]
		if habit.LastCompleted == "" || habit.CurrentStreak == 0 {
			continue
		}
		if !streakBroken(habit.LastCompleted, today) {
			continue
		}

		// highest_streak is a historical high-water mark and stays untouched.
		err := s.habitRepo.UpdateHabitFields(ctx, habit.ID, bson.M{"current_streak": int64(0)})
		if err != nil {
			return fmt.Errorf("failed to reset habit streak: %v", err)
		}
		logger.Log.WithFields(map[string]interface{}{
			"habit_id":       habit.ID.Hex(),
			"last_completed": habit.LastCompleted,
			"today":          today,
		}).Info("Habit streak reset after missed day")
	}

	user, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("failed to load user: %v", err)
	}
	if user.Streak > 0 && user.LastStreakDate != "" && streakBroken(user.LastStreakDate, today) {
		if err := s.userRepo.UpdateStreak(ctx, actorID, 0, user.LastStreakDate); err != nil {
			return err
		}
		logger.Log.WithField("userID", actorID.Hex()).Info("User streak reset after missed day")
	}

	return nil
}

// GetWeeklyStats returns the actor's activity rows for the week containing
// today, Sunday through Saturday.
func (s *StreakService) GetWeeklyStats(ctx context.Context, actorID primitive.ObjectID, today string) ([]models.WeeklyStat, error) {
	start, err := dateutil.WeekStart(today)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %v", err)
	}
	return s.weeklyRepo.GetStatsBetween(ctx, actorID, start, today)
}

// loadOwnedHabit resolves a habit id and checks the actor owns it.
func (s *StreakService) loadOwnedHabit(ctx context.Context, actorID primitive.ObjectID, habitID string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		return nil, fmt.Errorf("invalid habit ID: %w", apperrors.ErrNotFound)
	}

	habit, err := s.habitRepo.GetHabitByID(ctx, objID)
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

// advanceStreak bumps the per-habit counter, keeping highest ≥ current.
func advanceStreak(current, highest int64) (int64, int64) {
	current++
	if current > highest {
		highest = current
	}
	return current, highest
}

// streakBroken reports whether the gap between the last completion date and
// today spans more than one calendar day. 0 (done today) and 1 (done
// yesterday, today still open) keep the streak alive.
func streakBroken(lastDate, today string) bool {
	days, err := dateutil.DayDiff(lastDate, today)
	if err != nil {
		logger.Log.WithError(err).Warn("Unparseable streak date, leaving streak untouched")
		return false
	}
	return days > 1
}
