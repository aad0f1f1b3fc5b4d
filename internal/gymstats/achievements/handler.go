package achievements

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/liftlog/internal/middleware"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultNextLimit = 3

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
	router.HandleFunc("/gymstats/users/{userId}/achievements", handler.HandleOverview).Methods("GET", "OPTIONS").Name("achievements")
	router.HandleFunc("/gymstats/users/{userId}/achievements/next", handler.HandleNext).Methods("GET", "OPTIONS").Name("achievements-next")
	router.HandleFunc("/gymstats/users/{userId}/streaks", handler.HandleStreaks).Methods("GET", "OPTIONS").Name("streaks")

	evaluateRouter := router.PathPrefix("/gymstats/users/{userId}/achievements").Methods("POST").Subrouter()
	evaluateRouter.HandleFunc("/evaluate", handler.HandleEvaluate).Name("achievements-evaluate")
	evaluateRouter.Use(middleware.RateLimit(rateLimiter, "achievements-evaluate", allowedPerMin, metricsManager))
}

// userNow is the current time in the user's time zone, given by the optional
// tz query parameter (IANA name).
func (handler *Handler) userNow(r *http.Request) (time.Time, error) {
	now := handler.now()
	tz := r.URL.Query().Get("tz")
	if tz == "" {
		return now, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return now.In(loc), nil
}

func (handler *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.evaluate")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	now, err := handler.userNow(r)
	if err != nil {
		http.Error(w, "invalid time zone", http.StatusBadRequest)
		return
	}

	result, err := handler.service.Evaluate(ctx, userID, now)
	if err != nil {
		log.Errorf("evaluate achievements for user [%s]: %s", userID, err)
		http.Error(w, "failed to evaluate achievements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, result, http.StatusOK)
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.overview")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	now, err := handler.userNow(r)
	if err != nil {
		http.Error(w, "invalid time zone", http.StatusBadRequest)
		return
	}

	overview, err := handler.service.Overview(ctx, userID, now)
	if err != nil {
		log.Errorf("achievements overview for user [%s]: %s", userID, err)
		http.Error(w, "failed to get achievements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, overview, http.StatusOK)
}

func (handler *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.next")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	now, err := handler.userNow(r)
	if err != nil {
		http.Error(w, "invalid time zone", http.StatusBadRequest)
		return
	}

	limit := defaultNextLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	next, err := handler.service.Next(ctx, userID, now, limit)
	if err != nil {
		log.Errorf("next achievements for user [%s]: %s", userID, err)
		http.Error(w, "failed to get next achievements", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, next, http.StatusOK)
}

func (handler *Handler) HandleStreaks(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.streaks")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	now, err := handler.userNow(r)
	if err != nil {
		http.Error(w, "invalid time zone", http.StatusBadRequest)
		return
	}

	summary, err := handler.service.Streaks(ctx, userID, now)
	if err != nil {
		log.Errorf("streaks for user [%s]: %s", userID, err)
		http.Error(w, "failed to get streaks", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, summary, http.StatusOK)
}
