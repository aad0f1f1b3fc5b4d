package sets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 50

type DeleteSetResponse struct {
	DeletedID uuid.UUID `json:"deletedId"`
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	userRouter := router.PathPrefix("/gymstats/users/{userId}").Subrouter()
	userRouter.HandleFunc("/exercises/recent", handler.HandleRecentExercises).Methods("GET", "OPTIONS").Name("sets-recent-exercises")
	userRouter.HandleFunc("/exercises/{exerciseId}/sets", handler.HandleListRecent).Methods("GET", "OPTIONS").Name("sets-list")
	userRouter.HandleFunc("/prs", handler.HandleListPRs).Methods("GET", "OPTIONS").Name("sets-prs")

	writeRouter := userRouter.Methods("POST", "DELETE").Subrouter()
	writeRouter.HandleFunc("/sets", handler.HandleAdd).Methods("POST").Name("sets-add")
	writeRouter.HandleFunc("/sets/{id}", handler.HandleDelete).Methods("DELETE").Name("sets-delete")
	writeRouter.Use(middleware.RateLimit(rateLimiter, "sets-write", allowedPerMin, metricsManager))
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	userID := mux.Vars(r)["userId"]
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	var set SetRecord
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		log.Errorf("add set, unmarshal json params: %s", err)
		http.Error(w, "add set failed", http.StatusBadRequest)
		return
	}
	set.UserID = userID

	result, err := handler.service.AddSet(ctx, set)
	if err != nil {
		if errors.Is(err, ErrInvalidSet) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("failed to add set for user [%s], exercise [%s]: %s", userID, set.ExerciseID, err)
		http.Error(w, "error, failed to add set", http.StatusInternalServerError)
		return
	}

	log.Debugf("new set added: [%s] [%s]: %s", result.Set.UserID, result.Set.ExerciseID, result.Set.ID)
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleListRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.list")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	exerciseID := vars["exerciseId"]
	if userID == "" || exerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}

	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			http.Error(w, "invalid limit (has to be a positive number)", http.StatusBadRequest)
			return
		}
	}

	sets, err := handler.service.ListRecent(ctx, userID, exerciseID, limit)
	if err != nil {
		log.Errorf("list sets for user [%s], exercise [%s]: %s", userID, exerciseID, err)
		http.Error(w, "failed to get sets", http.StatusInternalServerError)
		return
	}
	if sets == nil {
		sets = []SetRecord{}
	}

	pkg.WriteJSON(w, sets, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.delete")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	id, err := uuid.Parse(vars["id"])
	if err != nil {
		http.Error(w, "error, invalid set id", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, ErrSetNotFound) {
			http.Error(w, "set not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete set %s: %s", id, err)
		http.Error(w, "set not deleted", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, DeleteSetResponse{DeletedID: id}, http.StatusOK)
}

func (handler *Handler) HandleListPRs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.prs")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	prs, err := handler.service.ListPRs(ctx, userID)
	if err != nil {
		log.Errorf("list personal records for user [%s]: %s", userID, err)
		http.Error(w, "failed to get personal records", http.StatusInternalServerError)
		return
	}
	if prs == nil {
		prs = []PRRecord{}
	}

	pkg.WriteJSON(w, prs, http.StatusOK)
}

func (handler *Handler) HandleRecentExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sets.recent_exercises")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	recent, err := handler.service.RecentExercises(ctx, userID)
	if err != nil {
		log.Errorf("get recent exercises for user [%s]: %s", userID, err)
		http.Error(w, "failed to get recent exercises", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, recent, http.StatusOK)
}
