package progression

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/telemetry/metrics"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progression_test

type historyLoader interface {
	ListRecentNormal(ctx context.Context, userID, exerciseID string, limit int) ([]sets.SetRecord, error)
}

type Handler struct {
	loader           historyLoader
	historySize      int
	defaultIncrement float64
	metricsManager   *metrics.Manager
}

func NewHandler(
	loader historyLoader,
	historySize int,
	defaultIncrement float64,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		loader:           loader,
		historySize:      historySize,
		defaultIncrement: defaultIncrement,
		metricsManager:   metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc(
		"/gymstats/users/{userId}/exercises/{exerciseId}/suggestion",
		handler.HandleSuggestion,
	).Methods("GET", "OPTIONS").Name("progression-suggestion")
}

// IncrementUsage is returned to clients sending a bad increment.
const IncrementUsage = "increment has to be a non-negative number, 0 or missing uses the default"

// ParseIncrement reads an optional increment value. An empty string or 0
// yields def.
func ParseIncrement(raw string, def float64) (Config, error) {
	cfg := Config{WeightIncrement: def}
	if raw != "" {
		increment, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, ErrInvalidIncrement
		}
		if increment != 0 {
			cfg.WeightIncrement = increment
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (handler *Handler) HandleSuggestion(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progression.suggestion")
	defer span.End()

	vars := mux.Vars(r)
	userID := vars["userId"]
	exerciseID := vars["exerciseId"]
	if userID == "" || exerciseID == "" {
		http.Error(w, "error, user id or exercise id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("exercise.id", exerciseID))

	cfg, err := ParseIncrement(r.URL.Query().Get("increment"), handler.defaultIncrement)
	if err != nil {
		http.Error(w, "invalid "+IncrementUsage, http.StatusBadRequest)
		return
	}

	// only normal sets count toward the window
	history, err := handler.loader.ListRecentNormal(ctx, userID, exerciseID, handler.historySize)
	if err != nil {
		log.Errorf("load set history for user [%s], exercise [%s]: %s", userID, exerciseID, err)
		http.Error(w, "failed to load set history", http.StatusInternalServerError)
		return
	}

	suggestion := Suggest(history, cfg)
	if suggestion == nil {
		log.Tracef("no suggestion for user [%s], exercise [%s]", userID, exerciseID)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handler.metricsManager.CounterSuggestions.WithLabelValues(string(suggestion.Type)).Inc()
	pkg.WriteJSON(w, suggestion, http.StatusOK)
}
