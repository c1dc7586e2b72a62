package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/build-flow-labs/rely/internal/rely/repo"
	"github.com/build-flow-labs/rely/internal/rely/service"
)

// Form defaults.
const (
	DefaultOwner = "1cph93"
	DefaultName  = "bcolz"
)

var errMissingRepoURL = errors.New("missing repo_url query parameter")

type errorBody struct {
	Error string `json:"error"`
}

type formData struct {
	Owner  string
	Name   string
	Result *service.Result
	Error  string
}

func (s *Server) handleScoreRepo(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("repo_url"))
	if raw == "" {
		s.record(errMissingRepoURL)
		writeJSON(w, http.StatusBadRequest, errorBody{Error: errMissingRepoURL.Error()})
		return
	}

	result, err := s.scorer.ScoreRepository(r.Context(), raw)
	s.record(err)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn("scoring failed", "repo_url", raw, "status", status, "error", err)
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	w.Header().Set("X-Request-ID", result.RequestID)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := formData{
		Owner: strings.TrimSpace(q.Get("owner")),
		Name:  strings.TrimSpace(q.Get("name")),
	}
	status := http.StatusOK

	if data.Owner != "" && data.Name != "" {
		result, err := s.score(r, data.Owner, data.Name)
		s.record(err)
		if err != nil {
			status = statusFor(err)
			s.logger.Warn("scoring failed", "owner", data.Owner, "name", data.Name, "status", status, "error", err)
			data.Error = err.Error()
		} else {
			w.Header().Set("X-Request-ID", result.RequestID)
			data.Result = result
		}
	}
	if data.Owner == "" {
		data.Owner = DefaultOwner
	}
	if data.Name == "" {
		data.Name = DefaultName
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.form.ExecuteTemplate(w, "form.html", data); err != nil {
		s.logger.Error("rendering form", "error", err)
	}
}

func (s *Server) score(r *http.Request, owner, name string) (*service.Result, error) {
	id, err := repo.NewIdentifier(owner, name)
	if err != nil {
		return nil, err
	}
	return s.scorer.ScoreIdentifier(r.Context(), id)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
