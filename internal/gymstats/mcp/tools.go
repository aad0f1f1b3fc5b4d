package mcp

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/progression"
	"github.com/2beens/liftlog/internal/gymstats/sets"

	"github.com/mark3labs/mcp-go/mcp"
	log "github.com/sirupsen/logrus"
)

const (
	defaultNextLimit  = 3
	defaultSetsLimit  = 20
	maxRecentSetLimit = 200
)

// --- Tool definitions ---

var toolGetProgressionSuggestion = mcp.NewTool("get_progression_suggestion",
	mcp.WithDescription("Suggest the next weight and reps for an exercise (progressive overload) based on the most recent normal sets. Returns type (increase_weight, decrease_weight, maintain), suggested weight/reps, reason, confidence and window stats."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id (e.g. bench_press)")),
	mcp.WithNumber("increment", mcp.Description("Weight increment in kg. 0 or missing uses the server setting (2.5 by default).")),
)

var toolGetAchievements = mcp.NewTool("get_achievements",
	mcp.WithDescription("List every achievement with the user's progress (0-100), unlocked flag, total points and the current stats."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("tz", mcp.Description("IANA time zone of the user (e.g. Europe/Berlin). Defaults to the server zone.")),
)

var toolGetNextAchievements = mcp.NewTool("get_next_achievements",
	mcp.WithDescription("Locked achievements closest to being unlocked, ordered by progress."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithNumber("limit", mcp.Description("How many to return. Defaults to 3.")),
	mcp.WithString("tz", mcp.Description("IANA time zone of the user. Defaults to the server zone.")),
)

var toolGetStreaks = mcp.NewTool("get_streaks",
	mcp.WithDescription("Current daily streak, workouts in the trailing 7 days and consecutive trained weekends."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("tz", mcp.Description("IANA time zone of the user. Defaults to the server zone.")),
)

var toolListRecentSets = mcp.NewTool("list_recent_sets",
	mcp.WithDescription("Most recent sets of an exercise, newest first. Normal sets carry weight and reps, drop sets carry segments."),
	mcp.WithString("user_id", mcp.Required(), mcp.Description("User id")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id")),
	mcp.WithNumber("limit", mcp.Description("How many sets to return (max 200). Defaults to 20.")),
)

// --- Tool handlers ---

type handlers struct {
	sets             setsService
	achievements     achievementsService
	historySize      int
	defaultIncrement float64
	now              func() time.Time
}

func (h *handlers) userNow(req mcp.CallToolRequest) (time.Time, error) {
	now := h.now()
	tz := req.GetString("tz", "")
	if tz == "" {
		return now, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return now.In(loc), nil
}

func toolResultJSON(data any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

func (h *handlers) getProgressionSuggestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	cfg := progression.Config{WeightIncrement: h.defaultIncrement}
	if increment := req.GetFloat("increment", 0); increment != 0 {
		cfg.WeightIncrement = increment
	}
	if err := cfg.Validate(); err != nil {
		return mcp.NewToolResultError(progression.IncrementUsage), nil
	}

	history, err := h.sets.ListRecentNormal(ctx, userID, exerciseID, h.historySize)
	if err != nil {
		log.Errorf("mcp get_progression_suggestion: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	suggestion := progression.Suggest(history, cfg)
	if suggestion == nil {
		return mcp.NewToolResultText("No suggestion available: there are no normal sets with weight and reps for this exercise yet."), nil
	}
	return toolResultJSON(suggestion), nil
}

func (h *handlers) getAchievements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	now, err := h.userNow(req)
	if err != nil {
		return mcp.NewToolResultError("invalid tz: " + err.Error()), nil
	}

	overview, err := h.achievements.Overview(ctx, userID, now)
	if err != nil {
		log.Errorf("mcp get_achievements: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(overview), nil
}

func (h *handlers) getNextAchievements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	now, err := h.userNow(req)
	if err != nil {
		return mcp.NewToolResultError("invalid tz: " + err.Error()), nil
	}

	next, err := h.achievements.Next(ctx, userID, now, req.GetInt("limit", defaultNextLimit))
	if err != nil {
		log.Errorf("mcp get_next_achievements: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(next), nil
}

func (h *handlers) getStreaks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	now, err := h.userNow(req)
	if err != nil {
		return mcp.NewToolResultError("invalid tz: " + err.Error()), nil
	}

	summary, err := h.achievements.Streaks(ctx, userID, now)
	if err != nil {
		log.Errorf("mcp get_streaks: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolResultJSON(summary), nil
}

func (h *handlers) listRecentSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireString("user_id")
	if err != nil {
		return mcp.NewToolResultError("user_id parameter is required"), nil
	}
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	limit := req.GetInt("limit", defaultSetsLimit)
	if limit < 1 || limit > maxRecentSetLimit {
		return mcp.NewToolResultError("limit has to be between 1 and 200"), nil
	}

	records, err := h.sets.ListRecent(ctx, userID, exerciseID, limit)
	if err != nil {
		log.Errorf("mcp list_recent_sets: %s", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if records == nil {
		records = []sets.SetRecord{}
	}
	return toolResultJSON(records), nil
}
