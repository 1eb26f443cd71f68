package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lawrencejr5/habibee/internal/models"
	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/lawrencejr5/habibee/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitHandler handles HTTP requests related to habits.
type HabitHandler struct {
	Service *services.HabitService
}

// NewHabitHandler creates a new instance of HabitHandler.
func NewHabitHandler(service *services.HabitService) *HabitHandler {
	return &HabitHandler{Service: service}
}

// habitView is a habit plus its projected live elapsed seconds, so the
// client can seed its local countdown without extra math.
type habitView struct {
	models.Habit
	LiveElapsed int64 `json:"live_elapsed"`
}

// CreateHabitHandler handles the creation of a new habit.
func (h *HabitHandler) CreateHabitHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during habit creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var habit models.Habit
	if err := json.NewDecoder(r.Body).Decode(&habit); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	createdHabit, err := h.Service.CreateHabit(r.Context(), actorID, &habit)
	if err != nil {
		logrus.WithError(err).Error("Failed to create habit")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": createdHabit.ID.Hex(),
	}).Info("Habit successfully created")

	respondJSON(w, http.StatusCreated, createdHabit)
}

// GetHabitsHandler lists the actor's habits, newest first.
func (h *HabitHandler) GetHabitsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	habits, err := h.Service.GetHabits(r.Context(), actorID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch habits")
		respondError(w, err)
		return
	}

	now := time.Now()
	views := make([]habitView, 0, len(habits))
	for i := range habits {
		views = append(views, habitView{
			Habit:       habits[i],
			LiveElapsed: habits[i].LiveElapsedAt(now),
		})
	}

	respondJSON(w, http.StatusOK, views)
}

// GetHabitHandler fetches a single habit by its ID.
func (h *HabitHandler) GetHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	habit, err := h.Service.GetHabit(r.Context(), actorID, habitID)
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to fetch habit")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, habitView{
		Habit:       *habit,
		LiveElapsed: habit.LiveElapsedAt(time.Now()),
	})
}

// UpdateHabitHandler applies a partial field-mask edit to a habit.
func (h *HabitHandler) UpdateHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized update attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var update models.HabitUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during habit update")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	habit, err := h.Service.UpdateHabit(r.Context(), actorID, habitID, &update)
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to update habit")
		respondError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": habitID,
	}).Info("Habit successfully updated")

	respondJSON(w, http.StatusOK, habit)
}

// DeleteHabitHandler deletes a habit along with its entries and sub-habits.
func (h *HabitHandler) DeleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	if err := h.Service.DeleteHabit(r.Context(), actorID, habitID); err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to delete habit")
		respondError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": habitID,
	}).Info("Habit successfully deleted")

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// GetHabitEntriesHandler lists the completion history of a habit.
func (h *HabitHandler) GetHabitEntriesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	entries, err := h.Service.GetEntries(r.Context(), actorID, habitID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
