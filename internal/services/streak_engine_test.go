package services

import (
	"context"
	"testing"

	"github.com/lawrencejr5/habibee/internal/apperrors"
	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory stores standing in for the mongo repositories.

type memHabitStore struct {
	habits map[primitive.ObjectID]*models.Habit
}

func (m *memHabitStore) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	h, ok := m.habits[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *h
	return &copied, nil
}

func (m *memHabitStore) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	var habits []models.Habit
	for _, h := range m.habits {
		if h.UserID == userID {
			habits = append(habits, *h)
		}
	}
	return habits, nil
}

func (m *memHabitStore) UpdateHabitFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	h, ok := m.habits[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	if v, ok := fields["current_streak"]; ok {
		h.CurrentStreak = v.(int64)
	}
	if v, ok := fields["highest_streak"]; ok {
		h.HighestStreak = v.(int64)
	}
	if v, ok := fields["lastCompleted"]; ok {
		h.LastCompleted = v.(string)
	}
	return nil
}

type memEntryStore struct {
	entries   map[string]*models.HabitEntry // keyed by habitID.Hex() + date
	insertErr error
}

func entryKey(habitID primitive.ObjectID, date string) string {
	return habitID.Hex() + "/" + date
}

func (m *memEntryStore) FindByHabitAndDate(ctx context.Context, habitID primitive.ObjectID, date string) (*models.HabitEntry, error) {
	e, ok := m.entries[entryKey(habitID, date)]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return e, nil
}

func (m *memEntryStore) InsertEntry(ctx context.Context, entry *models.HabitEntry) (*models.HabitEntry, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	entry.ID = primitive.NewObjectID()
	m.entries[entryKey(entry.HabitID, entry.Date)] = entry
	return entry, nil
}

type memUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func (m *memUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *u
	return &copied, nil
}

func (m *memUserStore) UpdateStreak(ctx context.Context, id primitive.ObjectID, streak int64, lastStreakDate string) error {
	u, ok := m.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Streak = streak
	u.LastStreakDate = lastStreakDate
	return nil
}

type memWeeklyStore struct {
	stats []models.WeeklyStat
}

func (m *memWeeklyStore) InsertStat(ctx context.Context, stat *models.WeeklyStat) (*models.WeeklyStat, error) {
	stat.ID = primitive.NewObjectID()
	m.stats = append(m.stats, *stat)
	return stat, nil
}

func (m *memWeeklyStore) GetStatsBetween(ctx context.Context, userID primitive.ObjectID, from, to string) ([]models.WeeklyStat, error) {
	var out []models.WeeklyStat
	for _, s := range m.stats {
		if s.UserID == userID && s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

type streakFixture struct {
	service *StreakService
	habits  *memHabitStore
	entries *memEntryStore
	users   *memUserStore
	weekly  *memWeeklyStore
	userID  primitive.ObjectID
}

func newStreakFixture() *streakFixture {
	f := &streakFixture{
		habits:  &memHabitStore{habits: map[primitive.ObjectID]*models.Habit{}},
		entries: &memEntryStore{entries: map[string]*models.HabitEntry{}},
		users:   &memUserStore{users: map[primitive.ObjectID]*models.User{}},
		weekly:  &memWeeklyStore{},
		userID:  primitive.NewObjectID(),
	}
	f.users.users[f.userID] = &models.User{ID: f.userID}
	f.service = NewStreakService(f.habits, f.entries, f.users, f.weekly)
	return f
}

func (f *streakFixture) addHabit(current, highest int64, lastCompleted string) *models.Habit {
	h := &models.Habit{
		ID:            primitive.NewObjectID(),
		UserID:        f.userID,
		Name:          "Read",
		Duration:      30,
		CurrentStreak: current,
		HighestStreak: highest,
		LastCompleted: lastCompleted,
	}
	f.habits.habits[h.ID] = h
	return h
}

func TestRecordCompletionTwiceSameDay(t *testing.T) {
	f := newStreakFixture()
	habit := f.addHabit(0, 0, "")
	ctx := context.Background()

	require.NoError(t, f.service.RecordCompletion(ctx, f.userID, habit.ID.Hex(), "2024-01-10"))

	stored := f.habits.habits[habit.ID]
	assert.Equal(t, int64(1), stored.CurrentStreak)
	assert.Equal(t, int64(1), stored.HighestStreak)
	assert.Equal(t, "2024-01-10", stored.LastCompleted)

	// Second completion on the same day is rejected and advances nothing.
	err := f.service.RecordCompletion(ctx, f.userID, habit.ID.Hex(), "2024-01-10")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)
	assert.Equal(t, int64(1), stored.CurrentStreak)
	assert.Equal(t, int64(1), f.users.users[f.userID].Streak)
	assert.Len(t, f.weekly.stats, 1)
}

func TestRecordCompletionUserStreakOncePerDay(t *testing.T) {
	f := newStreakFixture()
	first := f.addHabit(0, 0, "")
	second := f.addHabit(3, 5, "2024-01-09")
	ctx := context.Background()

	require.NoError(t, f.service.RecordCompletion(ctx, f.userID, first.ID.Hex(), "2024-01-10"))
	require.NoError(t, f.service.RecordCompletion(ctx, f.userID, second.ID.Hex(), "2024-01-10"))

	// Each habit streak advances independently.
	assert.Equal(t, int64(1), f.habits.habits[first.ID].CurrentStreak)
	assert.Equal(t, int64(4), f.habits.habits[second.ID].CurrentStreak)
	assert.Equal(t, int64(5), f.habits.habits[second.ID].HighestStreak)

	// The user-level streak moved once, not twice, with one weekly row.
	assert.Equal(t, int64(1), f.users.users[f.userID].Streak)
	assert.Equal(t, "2024-01-10", f.users.users[f.userID].LastStreakDate)
	assert.Len(t, f.weekly.stats, 1)
}

func TestRecordCompletionNextDayExtendsStreak(t *testing.T) {
	f := newStreakFixture()
	habit := f.addHabit(0, 0, "")
	ctx := context.Background()

	require.NoError(t, f.service.RecordCompletion(ctx, f.userID, habit.ID.Hex(), "2024-01-10"))
	require.NoError(t, f.service.RecordCompletion(ctx, f.userID, habit.ID.Hex(), "2024-01-11"))

	stored := f.habits.habits[habit.ID]
	assert.Equal(t, int64(2), stored.CurrentStreak)
	assert.Equal(t, int64(2), stored.HighestStreak)
	assert.Equal(t, int64(2), f.users.users[f.userID].Streak)
	assert.Len(t, f.weekly.stats, 2)
}

func TestRecordCompletionLosesInsertRace(t *testing.T) {
	f := newStreakFixture()
	habit := f.addHabit(2, 2, "2024-01-09")

	// A concurrent writer slipped between the lookup and the insert; the
	// unique index rejects the duplicate and the caller sees the same
	// already-completed outcome.
	f.entries.insertErr = mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000}},
	}

	err := f.service.RecordCompletion(context.Background(), f.userID, habit.ID.Hex(), "2024-01-10")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyCompleted)
	assert.Equal(t, int64(2), f.habits.habits[habit.ID].CurrentStreak)
}

func TestRecordCompletionOwnership(t *testing.T) {
	f := newStreakFixture()
	habit := f.addHabit(0, 0, "")
	stranger := primitive.NewObjectID()

	err := f.service.RecordCompletion(context.Background(), stranger, habit.ID.Hex(), "2024-01-10")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	err = f.service.RecordCompletion(context.Background(), f.userID, primitive.NewObjectID().Hex(), "2024-01-10")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReconcileStreaksGapBoundaries(t *testing.T) {
	f := newStreakFixture()
	habit := f.addHabit(5, 8, "2024-01-10")
	f.users.users[f.userID].Streak = 5
	f.users.users[f.userID].LastStreakDate = "2024-01-10"
	ctx := context.Background()

	// One-day gap: completed yesterday, today still open. Nothing resets.
	require.NoError(t, f.service.ReconcileStreaks(ctx, f.userID, "2024-01-11"))
	assert.Equal(t, int64(5), f.habits.habits[habit.ID].CurrentStreak)
	assert.Equal(t, int64(5), f.users.users[f.userID].Streak)

	// Two-day gap: a full day was missed. Current resets, highest stays.
	require.NoError(t, f.service.ReconcileStreaks(ctx, f.userID, "2024-01-12"))
	assert.Equal(t, int64(0), f.habits.habits[habit.ID].CurrentStreak)
	assert.Equal(t, int64(8), f.habits.habits[habit.ID].HighestStreak)
	assert.Equal(t, int64(0), f.users.users[f.userID].Streak)
}
