package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"

	"github.com/meltforce/hevystats/internal/analytics"
	"github.com/meltforce/hevystats/internal/models"
	"github.com/meltforce/hevystats/internal/pipeline"
)

type reloadResponse struct {
	RunID            string `json:"run_id"`
	Sets             int    `json:"sets"`
	UnknownExercises int    `json:"unknown_exercises"`
	Warnings         int    `json:"warnings"`
}

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	sets, ok := s.filteredSets(w, r)
	if !ok {
		return
	}
	if exercise := r.URL.Query().Get("exercise"); exercise != "" {
		sets = slices.DeleteFunc(sets, func(es models.EnrichedSet) bool {
			return es.ExerciseTitle != exercise
		})
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.current(w)
	if !ok {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.NewOverview(ds.Sets(), f))
}

// handleStreak counts weeks over every date in the log; only routine narrows it.
func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.current(w)
	if !ok {
		return
	}
	sets := analytics.Filter{Routine: r.URL.Query().Get("routine")}.Apply(ds.Sets())
	writeJSON(w, http.StatusOK, analytics.StreakAt(sets, s.opts.Now()))
}

func (s *Server) handleBodyweight(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.current(w)
	if !ok {
		return
	}
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analytics.BodyweightOverlay(ds.Bodyweight(), f.Apply(ds.Sets())))
}

func (s *Server) handleMonthlyVolume(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group != "" && !slices.Contains(analytics.MajorGroups, group) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown group %q", group))
		return
	}
	perWorkout, err := parseBool(r, "per_workout")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sets, ok := s.filteredSets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.MonthlyVolume(sets, group, perWorkout))
}

func (s *Server) handleMuscleBalance(w http.ResponseWriter, r *http.Request) {
	sets, ok := s.filteredSets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.MuscleBalance(sets))
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	minSessions := s.opts.MinSessions
	if v := r.URL.Query().Get("min_sessions"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "min_sessions must be a positive integer")
			return
		}
		minSessions = n
	}
	sets, ok := s.filteredSets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ProgressionCandidates(sets, minSessions))
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	exercise := r.URL.Query().Get("exercise")
	if exercise == "" {
		writeError(w, http.StatusBadRequest, "exercise parameter required")
		return
	}
	sets, ok := s.filteredSets(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.Progression(sets, exercise, r.URL.Query().Get("gym")))
}

func (s *Server) handleRoutines(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.RoutineOrder(ds.Sets()))
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	ds, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ds.Quality())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Status())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ds, err := s.store.Reload(r.Context())
	if err != nil {
		s.log.Error("reload error", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reloadResponse{
		RunID:            ds.RunID.String(),
		Sets:             ds.Len(),
		UnknownExercises: len(ds.UnknownExercises()),
		Warnings:         len(ds.Warnings()),
	})
}

// current returns the served dataset, answering 503 when none is loaded yet.
func (s *Server) current(w http.ResponseWriter) (*pipeline.Dataset, bool) {
	ds := s.store.Current()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
		return nil, false
	}
	return ds, true
}

// filteredSets returns the current sets narrowed by the year and routine
// query parameters.
func (s *Server) filteredSets(w http.ResponseWriter, r *http.Request) ([]models.EnrichedSet, bool) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	ds, ok := s.current(w)
	if !ok {
		return nil, false
	}
	return f.Apply(ds.Sets()), true
}

func parseFilter(r *http.Request) (analytics.Filter, error) {
	f := analytics.Filter{Routine: r.URL.Query().Get("routine")}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid year %q", v)
		}
		f.Year = year
	}
	return f, nil
}

func parseBool(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, v)
	}
	return b, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
