package workouts

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SessionRequest optionally carries the client's local time, so the session
// lands on the user's calendar day.
type SessionRequest struct {
	At *time.Time `json:"at,omitempty"`
}

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	router.HandleFunc("/gymstats/users/{userId}/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("workouts-list")

	writeRouter := router.PathPrefix("/gymstats/users/{userId}/workouts").Methods("POST").Subrouter()
	writeRouter.HandleFunc("/start", handler.HandleStart).Name("workouts-start")
	writeRouter.HandleFunc("/finish", handler.HandleFinish).Name("workouts-finish")
	writeRouter.Use(middleware.RateLimit(rateLimiter, "workouts-write", allowedPerMin, metricsManager))
}

func (handler *Handler) sessionTime(r *http.Request) (time.Time, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return handler.now(), nil
	}
	var req SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return time.Time{}, err
	}
	if req.At == nil {
		return handler.now(), nil
	}
	return *req.At, nil
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.start")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	at, err := handler.sessionTime(r)
	if err != nil {
		log.Errorf("start workout, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Start(ctx, userID, at)
	if err != nil {
		log.Errorf("start workout for user [%s]: %s", userID, err)
		http.Error(w, "failed to start workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleFinish(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.finish")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	at, err := handler.sessionTime(r)
	if err != nil {
		log.Errorf("finish workout, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	workout, err := handler.service.Finish(ctx, userID, at)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotStarted) {
			http.Error(w, "workout not started", http.StatusNotFound)
			return
		}
		log.Errorf("finish workout for user [%s]: %s", userID, err)
		http.Error(w, "failed to finish workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	workouts, err := handler.service.List(ctx, userID)
	if err != nil {
		log.Errorf("list workouts for user [%s]: %s", userID, err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}
	if workouts == nil {
		workouts = []WorkoutLog{}
	}

	pkg.WriteJSON(w, workouts, http.StatusOK)
}
