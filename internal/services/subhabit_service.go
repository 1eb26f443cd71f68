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

// SubHabitService manages the checklist items under a habit. Whether checking
// the last open item completes the parent habit is a policy decision, not a
// hardcoded rule; autoCompleteParent carries it.
type SubHabitService struct {
	repo               *repository.SubHabitRepository
	habitRepo          *repository.HabitRepository
	streaks            *StreakService
	autoCompleteParent bool
}

// NewSubHabitService creates a new instance of SubHabitService.
func NewSubHabitService(repo *repository.SubHabitRepository, habitRepo *repository.HabitRepository, streaks *StreakService, autoCompleteParent bool) *SubHabitService {
	return &SubHabitService{
		repo:               repo,
		habitRepo:          habitRepo,
		streaks:            streaks,
		autoCompleteParent: autoCompleteParent,
	}
}

// CreateSubHabit adds a checklist item, rejecting a duplicate name under the
// same parent habit.
func (s *SubHabitService) CreateSubHabit(ctx context.Context, actorID primitive.ObjectID, habitID, name string) (*models.SubHabit, error) {
	habit, err := s.loadOwnedHabit(ctx, actorID, habitID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("sub-habit name is required")
	}

	if _, err := s.repo.FindByHabitAndName(ctx, habit.ID, name); err == nil {
		return nil, apperrors.ErrDuplicateName
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check sub-habit name: %v", err)
	}

	sub := &models.SubHabit{
		HabitID:   habit.ID,
		UserID:    actorID,
		Name:      name,
		Completed: false,
	}
	created, err := s.repo.CreateSubHabit(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create sub-habit: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": habitID,
		"name":     name,
	}).Info("Sub-habit created")
	return created, nil
}

// GetSubHabits lists the checklist of an owned habit.
func (s *SubHabitService) GetSubHabits(ctx context.Context, actorID primitive.ObjectID, habitID string) ([]models.SubHabit, error) {
	habit, err := s.loadOwnedHabit(ctx, actorID, habitID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetSubHabitsByHabit(ctx, habit.ID)
}

// ToggleSubHabit flips one checklist item. When the auto-complete policy is
// on and the toggle checked the last open item, the parent habit's completion
// is recorded for today; an already-completed parent is not an error here.
func (s *SubHabitService) ToggleSubHabit(ctx context.Context, actorID primitive.ObjectID, subID string, today string) (*models.SubHabit, error) {
	sub, err := s.loadOwnedSub(ctx, actorID, subID)
	if err != nil {
		return nil, err
	}

	sub.Completed = !sub.Completed
	if err := s.repo.SetCompleted(ctx, sub.ID, sub.Completed); err != nil {
		return nil, fmt.Errorf("failed to toggle sub-habit: %v", err)
	}

	if s.autoCompleteParent && sub.Completed {
		done, err := s.allCompleted(ctx, sub.HabitID)
		if err != nil {
			return nil, err
		}
		if done {
			err := s.streaks.RecordCompletion(ctx, actorID, sub.HabitID.Hex(), today)
			if err != nil && !errors.Is(err, apperrors.ErrAlreadyCompleted) {
				return nil, err
			}
		}
	}

	return sub, nil
}

// ResetSubHabits unchecks the whole checklist of an owned habit.
func (s *SubHabitService) ResetSubHabits(ctx context.Context, actorID primitive.ObjectID, habitID string) error {
	habit, err := s.loadOwnedHabit(ctx, actorID, habitID)
	if err != nil {
		return err
	}
	if err := s.repo.ResetByHabit(ctx, habit.ID); err != nil {
		return fmt.Errorf("failed to reset sub-habits: %v", err)
	}
	return nil
}

// DeleteSubHabit removes one checklist item.
func (s *SubHabitService) DeleteSubHabit(ctx context.Context, actorID primitive.ObjectID, subID string) error {
	sub, err := s.loadOwnedSub(ctx, actorID, subID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteSubHabit(ctx, sub.ID); err != nil {
		return fmt.Errorf("failed to delete sub-habit: %v", err)
	}
	return nil
}

func (s *SubHabitService) allCompleted(ctx context.Context, habitID primitive.ObjectID) (bool, error) {
	subs, err := s.repo.GetSubHabitsByHabit(ctx, habitID)
	if err != nil {
		return false, fmt.Errorf("failed to fetch sub-habits: %v", err)
	}
	for _, sub := range subs {
		if !sub.Completed {
			return false, nil
		}
	}
	return len(subs) > 0, nil
}

func (s *SubHabitService) loadOwnedHabit(ctx context.Context, actorID primitive.ObjectID, habitID string) (*models.Habit, error) {
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

func (s *SubHabitService) loadOwnedSub(ctx context.Context, actorID primitive.ObjectID, subID string) (*models.SubHabit, error) {
	objID, err := primitive.ObjectIDFromHex(subID)
	if err != nil {
		return nil, fmt.Errorf("invalid sub-habit ID: %w", apperrors.ErrNotFound)
	}

	sub, err := s.repo.GetSubHabitByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load sub-habit: %v", err)
	}
	if sub.UserID != actorID {
		return nil, apperrors.ErrUnauthorized
	}
	return sub, nil
}
