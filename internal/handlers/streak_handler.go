package handlers

import (
	"net/http"
	"time"

	"github.com/lawrencejr5/habibee/internal/services"
	"github.com/lawrencejr5/habibee/pkg/dateutil"
	"github.com/lawrencejr5/habibee/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StreakHandler exposes the streak engine over HTTP: completion, the lazy
// reconcile pass and the weekly activity feed.
type StreakHandler struct {
	Service  *services.StreakService
	Location *time.Location
}

// NewStreakHandler creates a new instance of StreakHandler.
func NewStreakHandler(service *services.StreakService, loc *time.Location) *StreakHandler {
	return &StreakHandler{
		Service:  service,
		Location: loc,
	}
}

// CompleteHabitHandler records today's completion of a habit. Today is
// derived once here, at the call boundary.
func (h *StreakHandler) CompleteHabitHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	habitID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized completion attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	actorID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	today := dateutil.Today(h.Location)
	if err := h.Service.RecordCompletion(r.Context(), actorID, habitID, today); err != nil {
		logrus.WithFields(logrus.Fields{
			"habitID": habitID,
			"date":    today,
		}).WithError(err).Warn("Completion not recorded")
		respondError(w, err)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":  claims.UserID,
		"habitID": habitID,
		"date":    today,
	}).Info("Habit completion recorded")

	respondJSON(w, http.StatusOK, map[string]string{"status": "completed", "date": today})
}

// ReconcileStreaksHandler runs the decay pass for the actor. The app calls
// it on foregrounding; a streak older than one full day is zeroed.
func (h *StreakHandler) ReconcileStreaksHandler(w http.ResponseWriter, r *http.Request) {
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

	today := dateutil.Today(h.Location)
	if err := h.Service.ReconcileStreaks(r.Context(), actorID, today); err != nil {
		logrus.WithError(err).Error("Failed to reconcile streaks")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "reconciled", "date": today})
}

// GetWeeklyStatsHandler returns the actor's activity rows for this week.
func (h *StreakHandler) GetWeeklyStatsHandler(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.Service.GetWeeklyStats(r.Context(), actorID, dateutil.Today(h.Location))
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch weekly stats")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
