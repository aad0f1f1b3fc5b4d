// Package mcp exposes liftlog analytics as MCP tools. The same server runs
// over stdio (cmd/gymstats_mcp) and is mounted on the backend at /mcp.
package mcp

import (
	"context"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/achievements"
	"github.com/2beens/liftlog/internal/gymstats/sets"
	"github.com/2beens/liftlog/internal/gymstats/streaks"

	"github.com/mark3labs/mcp-go/server"
)

const serverName = "liftlog-gymstats"

type setsService interface {
	ListRecent(ctx context.Context, userID, exerciseID string, limit int) ([]sets.SetRecord, error)
	ListRecentNormal(ctx context.Context, userID, exerciseID string, limit int) ([]sets.SetRecord, error)
}

type achievementsService interface {
	Overview(ctx context.Context, userID string, now time.Time) (*achievements.Overview, error)
	Next(ctx context.Context, userID string, now time.Time, limit int) ([]achievements.Ranked, error)
	Streaks(ctx context.Context, userID string, now time.Time) (streaks.Summary, error)
}

type Params struct {
	Version          string
	HistorySize      int
	DefaultIncrement float64
}

// NewServer builds an MCP server with the gymstats tools: progression
// suggestion, achievements overview, next achievements, streaks, recent sets.
func NewServer(setsSvc setsService, achievementsSvc achievementsService, params Params) *server.MCPServer {
	s := server.NewMCPServer(serverName, params.Version,
		server.WithToolCapabilities(false),
		server.WithInstructions("liftlog workout analytics. Every tool is scoped to the user_id argument. Dates are the user's calendar dates (YYYY-MM-DD)."),
	)

	h := &handlers{
		sets:             setsSvc,
		achievements:     achievementsSvc,
		historySize:      params.HistorySize,
		defaultIncrement: params.DefaultIncrement,
		now:              time.Now,
	}

	s.AddTools(
		server.ServerTool{Tool: toolGetProgressionSuggestion, Handler: h.getProgressionSuggestion},
		server.ServerTool{Tool: toolGetAchievements, Handler: h.getAchievements},
		server.ServerTool{Tool: toolGetNextAchievements, Handler: h.getNextAchievements},
		server.ServerTool{Tool: toolGetStreaks, Handler: h.getStreaks},
		server.ServerTool{Tool: toolListRecentSets, Handler: h.listRecentSets},
	)

	return s
}
