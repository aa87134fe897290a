// Package mcp exposes the enriched dataset as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("hevystats", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("hevystats strength training server. Query enriched Hevy sets, training volume, weekly streaks, exercise progression and data quality. Volumes are in kg and account for bodyweight and assisted exercises."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetEnrichedSets, Handler: h.getEnrichedSets},
		server.ServerTool{Tool: toolGetTrainingSummary, Handler: h.getTrainingSummary},
		server.ServerTool{Tool: toolGetWeeklyStreak, Handler: h.getWeeklyStreak},
		server.ServerTool{Tool: toolGetMonthlyVolume, Handler: h.getMonthlyVolume},
		server.ServerTool{Tool: toolGetExerciseProgression, Handler: h.getExerciseProgression},
		server.ServerTool{Tool: toolGetBodyweight, Handler: h.getBodyweight},
		server.ServerTool{Tool: toolGetDataQuality, Handler: h.getDataQuality},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTrainingSummary, Handler: h.trainingSummary},
		server.ServerResource{Resource: resDataQuality, Handler: h.dataQuality},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resTrainingSummary = mcp.NewResource(
	"hevystats://training_summary",
	"Training Summary",
	mcp.WithResourceDescription("All-time training KPIs: total volume, workouts, hours, sets and reps"),
	mcp.WithMIMEType("application/json"),
)

var resDataQuality = mcp.NewResource(
	"hevystats://data_quality",
	"Data Quality",
	mcp.WithResourceDescription("Latest pipeline run: dropped sets, exercises missing from the catalog, warnings"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) trainingSummary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ov, err := h.ds.Overview(ctx, noFilter)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, ov)
}

func (h *handlers) dataQuality(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	q, err := h.ds.Quality(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, q)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
