package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/lawrencejr5/habibee/internal/apperrors"
	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/internal/repository"
	"github.com/lawrencejr5/habibee/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// HabitService encapsulates the business logic for habits.
type HabitService struct {
	repo      *repository.HabitRepository
	entryRepo *repository.EntryRepository
	subRepo   *repository.SubHabitRepository
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(repo *repository.HabitRepository, entryRepo *repository.EntryRepository, subRepo *repository.SubHabitRepository) *HabitService {
	return &HabitService{
		repo:      repo,
		entryRepo: entryRepo,
		subRepo:   subRepo,
	}
}

// CreateHabit validates and stores a new habit for the actor. Streak
// counters start at zero and the timer starts idle.
func (s *HabitService) CreateHabit(ctx context.Context, actorID primitive.ObjectID, habit *models.Habit) (*models.Habit, error) {
	if habit.Name == "" {
		logger.Log.Warn("Habit name is empty during creation")
		return nil, fmt.Errorf("habit name is required")
	}
	if habit.Duration <= 0 {
		return nil, fmt.Errorf("habit duration must be positive")
	}

	habit.UserID = actorID
	habit.CurrentStreak = 0
	habit.HighestStreak = 0
	habit.LastCompleted = ""
	habit.TimerStartTime = nil
	habit.TimerElapsed = 0

	createdHabit, err := s.repo.CreateHabit(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, fmt.Errorf("failed to create habit: %v", err)
	}

	return createdHabit, nil
}

// GetHabit retrieves a habit by its ID, checking ownership.
func (s *HabitService) GetHabit(ctx context.Context, actorID primitive.ObjectID, id string) (*models.Habit, error) {
	return s.loadOwned(ctx, actorID, id)
}

// GetHabits retrieves the actor's habits, newest first.
func (s *HabitService) GetHabits(ctx context.Context, actorID primitive.ObjectID) ([]models.Habit, error) {
	habits, err := s.repo.GetHabitsByUser(ctx, actorID)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch habits in service")
		return nil, fmt.Errorf("failed to fetch habits: %v", err)
	}
	return habits, nil
}

// UpdateHabit applies a partial field-mask edit to an owned habit. Streak and
// timer fields are not editable through this path.
func (s *HabitService) UpdateHabit(ctx context.Context, actorID primitive.ObjectID, id string, update *models.HabitUpdate) (*models.Habit, error) {
	habit, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	fields := update.Fields()
	if len(fields) == 0 {
		return habit, nil
	}
	if update.Duration != nil && *update.Duration <= 0 {
		return nil, fmt.Errorf("habit duration must be positive")
	}

	if err := s.repo.UpdateHabitFields(ctx, habit.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to update habit: %v", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit updated successfully in service layer")
	return s.repo.GetHabitByID(ctx, habit.ID)
}

// DeleteHabit removes a habit and everything hanging off it. Entries and
// sub-habits go first so no orphaned records remain.
func (s *HabitService) DeleteHabit(ctx context.Context, actorID primitive.ObjectID, id string) error {
	habit, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return err
	}

	if _, err := s.entryRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit entries: %v", err)
	}
	if err := s.subRepo.DeleteByHabit(ctx, habit.ID); err != nil {
		return fmt.Errorf("failed to delete sub-habits: %v", err)
	}
	if err := s.repo.DeleteHabit(ctx, habit.ID); err != nil {
		return fmt.Errorf("failed to delete habit: %v", err)
	}

	logger.Log.WithField("habit_id", id).Info("Habit deleted with cascade")
	return nil
}

// GetEntries lists the completion history of an owned habit.
func (s *HabitService) GetEntries(ctx context.Context, actorID primitive.ObjectID, id string) ([]models.HabitEntry, error) {
	habit, err := s.loadOwned(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	return s.entryRepo.GetEntriesByHabit(ctx, habit.ID)
}

// loadOwned resolves a habit id and checks the actor owns it.
func (s *HabitService) loadOwned(ctx context.Context, actorID primitive.ObjectID, id string) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("habit_id", id).Warn("Invalid habit ID")
		return nil, fmt.Errorf("invalid habit ID: %w", apperrors.ErrNotFound)
	}

	habit, err := s.repo.GetHabitByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %v", err)
	}

	if habit.UserID != actorID {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": id,
			"actor_id": actorID.Hex(),
		}).Warn("Actor does not own habit")
		return nil, apperrors.ErrUnauthorized
	}
	return habit, nil
}
