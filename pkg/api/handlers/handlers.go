package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cbodonnell/simon/pkg/game/constants"
	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/log"
	"github.com/cbodonnell/simon/pkg/repositories"
	"github.com/gorilla/mux"
)

const (
	// MaxListLimit caps the limit query parameter of the results listing
	MaxListLimit = 100
	// MaxResultBodyBytes caps the size of a posted result
	MaxResultBodyBytes = 1 << 12
)

func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func HandleListResults(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := repositories.DefaultListLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > MaxListLimit {
				http.Error(w, "limit must be between 1 and 100", http.StatusBadRequest)
				return
			}
			limit = n
		}

		results, err := repository.ListResults(r.Context(), limit)
		if err != nil {
			log.Error("failed to list results: %v", err)
			http.Error(w, "Failed to list results", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, results)
	}
}

func HandleGetResult(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["resultID"]
		result, err := repository.GetResult(r.Context(), id)
		if err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Result not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get result %s: %v", id, err)
			http.Error(w, "Failed to get result", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func HandleCreateResult(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result := &types.Result{}
		decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxResultBodyBytes))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(result); err != nil {
			http.Error(w, "Invalid result body", http.StatusBadRequest)
			return
		}

		if msg := validateResult(result); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}
		if result.FinishedAt.IsZero() {
			result.FinishedAt = time.Now()
		}

		saved, err := repository.SaveResult(r.Context(), result)
		if err != nil {
			log.Error("failed to save result: %v", err)
			http.Error(w, "Failed to save result", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, saved)
	}
}

func HandleGetStats(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := repository.GetStats(r.Context())
		if err != nil {
			log.Error("failed to get stats: %v", err)
			http.Error(w, "Failed to get stats", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, stats)
	}
}

func validateResult(result *types.Result) string {
	switch {
	case result.SessionID == "":
		return "sessionID is required"
	case len(result.Player) > 32:
		return "player must be at most 32 characters"
	case !result.Outcome.Valid():
		return "outcome must be victory or mismatch"
	case result.Round < 1:
		return "round must be positive"
	case result.RoundsCompleted < 0 || result.RoundsCompleted > result.Round:
		return "roundsCompleted must be between 0 and round"
	case result.SequenceLength < 0:
		return "sequenceLength must not be negative"
	case result.SkillLevel != 0 && (result.SkillLevel < constants.MinSkillLevel || result.SkillLevel > constants.MaxSkillLevel):
		return "skillLevel must be between 1 and 4"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}
