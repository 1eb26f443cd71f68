package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/lawrencejr5/habibee/pkg/dateutil"
	"github.com/lawrencejr5/habibee/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubHabitHandler handles HTTP requests for the checklist under a habit.
type SubHabitHandler struct {
	Service  *services.SubHabitService
	Location *time.Location
}

// NewSubHabitHandler creates a new instance of SubHabitHandler.
func NewSubHabitHandler(service *services.SubHabitService, loc *time.Location) *SubHabitHandler {
	return &SubHabitHandler{
		Service:  service,
		Location: loc,
	}
}

// CreateSubHabitHandler adds a checklist item to a habit.
func (h *SubHabitHandler) CreateSubHabitHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	sub, err := h.Service.CreateSubHabit(r.Context(), actorID, habitID, payload.Name)
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to create sub-habit")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, sub)
}

// GetSubHabitsHandler lists the checklist of a habit.
func (h *SubHabitHandler) GetSubHabitsHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	subs, err := h.Service.GetSubHabits(r.Context(), actorID, habitID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, subs)
}

// ToggleSubHabitHandler flips one checklist item's completed flag.
func (h *SubHabitHandler) ToggleSubHabitHandler(w http.ResponseWriter, r *http.Request) {
	subID := mux.Vars(r)["subId"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	sub, err := h.Service.ToggleSubHabit(r.Context(), actorID, subID, dateutil.Today(h.Location))
	if err != nil {
		logrus.WithField("subID", subID).WithError(err).Warn("Failed to toggle sub-habit")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, sub)
}

// ResetSubHabitsHandler unchecks the whole checklist of a habit.
func (h *SubHabitHandler) ResetSubHabitsHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.Service.ResetSubHabits(r.Context(), actorID, habitID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// DeleteSubHabitHandler removes one checklist item.
func (h *SubHabitHandler) DeleteSubHabitHandler(w http.ResponseWriter, r *http.Request) {
	subID := mux.Vars(r)["subId"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteSubHabit(r.Context(), actorID, subID); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *SubHabitHandler) actor(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return primitive.NilObjectID, false
	}
	return actorID, true
}
