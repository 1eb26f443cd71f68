package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lawrencejr5/habibee/internal/apperrors"
	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/lawrencejr5/habibee/pkg/dateutil"
	"github.com/lawrencejr5/habibee/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimerHandler exposes the pausable habit timer over HTTP.
type TimerHandler struct {
	Service  *services.TimerService
	Location *time.Location
}

// NewTimerHandler creates a new instance of TimerHandler.
func NewTimerHandler(service *services.TimerService, loc *time.Location) *TimerHandler {
	return &TimerHandler{
		Service:  service,
		Location: loc,
	}
}

// StartTimerHandler starts or resumes a habit's timer.
func (h *TimerHandler) StartTimerHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	habit, err := h.Service.StartTimer(r.Context(), actorID, habitID, time.Now())
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to start timer")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

// PauseTimerHandler pauses a habit's timer, folding the running segment into
// the accumulated seconds.
func (h *TimerHandler) PauseTimerHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	habit, err := h.Service.PauseTimer(r.Context(), actorID, habitID, time.Now())
	if err != nil {
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to pause timer")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, habit)
}

// SetTimerHandler writes raw timer fields synced from a device. Last write
// wins between devices.
func (h *TimerHandler) SetTimerHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	var payload struct {
		TimerElapsed   int64  `json:"timer_elapsed"`
		TimerStartTime *int64 `json:"timer_start_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	err := h.Service.SetTimer(r.Context(), actorID, habitID, payload.TimerElapsed, payload.TimerStartTime)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// FinishTimerHandler ends a session: records today's completion and clears
// the timer. An already-completed day still clears the timer and reports
// back as already_completed rather than an error.
func (h *TimerHandler) FinishTimerHandler(w http.ResponseWriter, r *http.Request) {
	habitID := mux.Vars(r)["id"]

	actorID, ok := h.actor(w, r)
	if !ok {
		return
	}

	today := dateutil.Today(h.Location)
	err := h.Service.FinishTimer(r.Context(), actorID, habitID, today)
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyCompleted) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "already_completed", "date": today})
			return
		}
		logrus.WithField("habitID", habitID).WithError(err).Warn("Failed to finish timer")
		respondError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"habitID": habitID,
		"date":    today,
	}).Info("Timer session finished")

	respondJSON(w, http.StatusOK, map[string]string{"status": "completed", "date": today})
}

func (h *TimerHandler) actor(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
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
