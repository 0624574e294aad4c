package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"emvenn/app"
	"emvenn/domain/core"
	"emvenn/domain/run"
	"emvenn/internal/errors"
)

// CreateRunRequest overrides the server's default parameters per field.
// Omitted fields fall back to the configured defaults.
type CreateRunRequest struct {
	Lower      *float64 `json:"lower,omitempty"`
	Upper      *float64 `json:"upper,omitempty"`
	TrialCount *int     `json:"trial_count,omitempty"`
	TentMode   *bool    `json:"tent_mode,omitempty"`
	Workers    *int     `json:"workers,omitempty"`
	Resolution *int     `json:"resolution,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
}

func (a *App) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	params := a.defaults

	if r.Body != nil && r.ContentLength != 0 {
		var req CreateRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			a.writeError(w, http.StatusBadRequest, errors.InvalidInput("malformed run request body"))
			return
		}
		if req.Lower != nil {
			params.Interval.Lower = *req.Lower
		}
		if req.Upper != nil {
			params.Interval.Upper = *req.Upper
		}
		if req.TrialCount != nil {
			params.TrialCount = *req.TrialCount
		}
		if req.TentMode != nil {
			params.TentMode = *req.TentMode
		}
		if req.Workers != nil {
			params.Workers = *req.Workers
		}
		if req.Resolution != nil {
			params.Resolution = *req.Resolution
		}
		if req.Seed != nil {
			params.Seed = *req.Seed
		}
	}

	result, err := a.sim.Run(r.Context(), app.RunRequest{Params: params})
	if err != nil {
		if core.IsParameterError(err) {
			a.writeError(w, http.StatusBadRequest, err)
			return
		}
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}

	a.writeJSON(w, http.StatusCreated, result)
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	results, err := a.runs.List(r.Context(), 50, 0)
	if err != nil {
		a.writeError(w, http.StatusInternalServerError, err)
		return
	}
	a.writeJSON(w, http.StatusOK, results)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	result, ok := a.lookupRun(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, result)
}

func (a *App) handleGetTallies(w http.ResponseWriter, r *http.Request) {
	result, ok := a.lookupRun(w, r)
	if !ok {
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":      result.RunID,
		"trial_count": result.Params.TrialCount,
		"tallies":     result.Tallies,
	})
}

func (a *App) handleGetProbability(w http.ResponseWriter, r *http.Request) {
	result, ok := a.lookupRun(w, r)
	if !ok {
		return
	}
	code := chi.URLParam(r, "code")
	p, err := result.Probability(code)
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":      result.RunID,
		"code":        code,
		"probability": p,
	})
}

func (a *App) handleGetReport(w http.ResponseWriter, r *http.Request) {
	result, ok := a.lookupRun(w, r)
	if !ok {
		return
	}

	md := a.reports.Markdown(result)
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	page := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		a.logger.Error("failed to write report: %v", err)
	}
}

func (a *App) handleGetDiagram(w http.ResponseWriter, r *http.Request) {
	result, ok := a.lookupRun(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := a.renderer.Render(result, w); err != nil {
		a.logger.Error("failed to render diagram: %v", err)
		if errors.GetCode(err) == errors.CodeNotFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// lookupRun resolves the {id} URL parameter to a stored run
func (a *App) lookupRun(w http.ResponseWriter, r *http.Request) (*run.Result, bool) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	result, err := a.runs.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			a.writeError(w, http.StatusNotFound, err)
			return nil, false
		}
		a.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return result, true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

func (a *App) writeError(w http.ResponseWriter, status int, err error) {
	a.logger.Warn("request failed: %v", err)
	a.writeJSON(w, status, map[string]string{"error": err.Error()})
}
