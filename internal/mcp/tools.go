package mcp

import (
	"context"
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/hevystats/internal/analytics"
)

// defaultSetLimit caps get_enriched_sets when no limit is given.
const defaultSetLimit = 200

var noFilter = analytics.Filter{}

// filterFromRequest reads the shared year/routine arguments.
func filterFromRequest(req mcp.CallToolRequest) analytics.Filter {
	return analytics.Filter{
		Year:    req.GetInt("year", 0),
		Routine: req.GetString("routine", ""),
	}
}

// --- Tool definitions ---

var (
	yearArg    = mcp.WithNumber("year", mcp.Description("Restrict to a calendar year (e.g. 2024). Defaults to all years."))
	routineArg = mcp.WithString("routine", mcp.Description("Restrict to a routine label as returned in enriched sets (e.g. 'Push Pull Legs (2024-01-01 – Present)')"))
)

var toolGetEnrichedSets = mcp.NewTool("get_enriched_sets",
	mcp.WithDescription("Retrieve enriched sets: each logged set with muscle group, weight type, gym, routine, bodyweight and computed volume in kg. When truncated, the last sets in log order are kept."),
	yearArg,
	routineArg,
	mcp.WithString("exercise", mcp.Description("Exact exercise title (e.g. 'Squat (Barbell)')")),
	mcp.WithNumber("limit", mcp.Description(fmt.Sprintf("Maximum number of sets. Defaults to %d.", defaultSetLimit))),
)

var toolGetTrainingSummary = mcp.NewTool("get_training_summary",
	mcp.WithDescription("Headline KPIs: total volume (kg and tonnes), workouts, hours, sets, reps and average sets per workout. Also lists the years available."),
	yearArg,
	routineArg,
)

var toolGetWeeklyStreak = mcp.NewTool("get_weekly_streak",
	mcp.WithDescription("Number of consecutive ISO weeks with at least one workout, counting back from the current or previous week."),
	routineArg,
)

var toolGetMonthlyVolume = mcp.NewTool("get_monthly_volume",
	mcp.WithDescription("Training volume per month. Without a group the breakdown is by major muscle group; with a group, that group is broken down by specific muscle."),
	yearArg,
	routineArg,
	mcp.WithString("group", mcp.Description("Major muscle group to break down."), mcp.Enum(analytics.MajorGroups...)),
	mcp.WithBoolean("per_workout", mcp.Description("Divide each month's volume by that month's number of sessions. Defaults to false.")),
)

var toolGetExerciseProgression = mcp.NewTool("get_exercise_progression",
	mcp.WithDescription("Session-by-session max weight, volume, sets and reps for one exercise. Without an exercise, lists the exercises with enough sessions to chart."),
	yearArg,
	routineArg,
	mcp.WithString("exercise", mcp.Description("Exact exercise title. Omit to list candidates.")),
	mcp.WithString("gym", mcp.Description("Gym name, for exercises whose load depends on the gym's equipment")),
	mcp.WithNumber("min_sessions", mcp.Description(fmt.Sprintf("Minimum sessions for a candidate. Defaults to %d.", analytics.DefaultMinSessions))),
)

var toolGetBodyweight = mcp.NewTool("get_bodyweight",
	mcp.WithDescription("Bodyweight samples (kg) between the first and last session matching the filters, for reading volume trends against bodyweight."),
	yearArg,
	routineArg,
)

var toolGetDataQuality = mcp.NewTool("get_data_quality",
	mcp.WithDescription("Report on the latest pipeline run: input and enriched set counts, dropped sets, exercises missing from the catalog with suggested matches, and warnings."),
)

// --- Tool handlers ---

func (h *handlers) getEnrichedSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", defaultSetLimit)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	sets, err := h.ds.Sets(ctx, filterFromRequest(req), req.GetString("exercise", ""))
	if err != nil {
		return h.queryFailed("get_enriched_sets", err), nil
	}
	if len(sets) > limit {
		sets = sets[len(sets)-limit:]
	}

	return jsonResult(sets)
}

func (h *handlers) getTrainingSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ov, err := h.ds.Overview(ctx, filterFromRequest(req))
	if err != nil {
		return h.queryFailed("get_training_summary", err), nil
	}
	return jsonResult(ov)
}

func (h *handlers) getWeeklyStreak(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.ds.Streak(ctx, analytics.Filter{Routine: req.GetString("routine", "")})
	if err != nil {
		return h.queryFailed("get_weekly_streak", err), nil
	}
	return jsonResult(st)
}

func (h *handlers) getMonthlyVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group := req.GetString("group", "")
	if group != "" && !slices.Contains(analytics.MajorGroups, group) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown group %q", group)), nil
	}

	points, err := h.ds.MonthlyVolume(ctx, filterFromRequest(req), group, req.GetBool("per_workout", false))
	if err != nil {
		return h.queryFailed("get_monthly_volume", err), nil
	}
	return jsonResult(points)
}

func (h *handlers) getExerciseProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := filterFromRequest(req)
	exercise := req.GetString("exercise", "")
	if exercise == "" {
		minSessions := req.GetInt("min_sessions", analytics.DefaultMinSessions)
		if minSessions < 1 {
			return mcp.NewToolResultError("min_sessions must be positive"), nil
		}
		candidates, err := h.ds.Candidates(ctx, f, minSessions)
		if err != nil {
			return h.queryFailed("get_exercise_progression", err), nil
		}
		return jsonResult(map[string]any{"candidates": candidates})
	}

	progress, err := h.ds.Progression(ctx, f, exercise, req.GetString("gym", ""))
	if err != nil {
		return h.queryFailed("get_exercise_progression", err), nil
	}
	return jsonResult(map[string]any{
		"exercise": exercise,
		"sessions": progress,
	})
}

func (h *handlers) getBodyweight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	samples, err := h.ds.Bodyweight(ctx, filterFromRequest(req))
	if err != nil {
		return h.queryFailed("get_bodyweight", err), nil
	}
	return jsonResult(samples)
}

func (h *handlers) getDataQuality(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := h.ds.Quality(ctx)
	if err != nil {
		return h.queryFailed("get_data_quality", err), nil
	}
	return jsonResult(q)
}

func (h *handlers) queryFailed(tool string, err error) *mcp.CallToolResult {
	h.log.Warn("tool query failed", "tool", tool, "error", err)
	return mcp.NewToolResultError("query failed: " + err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
