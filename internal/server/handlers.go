package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vanshika/degrees/internal/dataset"
	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/present"
	"github.com/vanshika/degrees/internal/search"
	"github.com/vanshika/degrees/internal/service"
)

var validate = validator.New()

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger    *slog.Logger
	service   *service.DegreesService
	presenter *present.Presenter
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.DegreesService) *APIHandlers {
	return &APIHandlers{
		logger:    logger,
		service:   svc,
		presenter: present.New(svc.Dataset(), present.PlainStyles()),
	}
}

type peopleQuery struct {
	Name string `validate:"required"`
}

// degreesQuery takes each endpoint either as an id or as a name.
type degreesQuery struct {
	Source     string `validate:"required_without=SourceName"`
	Target     string `validate:"required_without=TargetName"`
	SourceName string `validate:"required_without=Source"`
	TargetName string `validate:"required_without=Target"`
}

type personResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Birth  int      `json:"birth,omitempty"`
	Movies []string `json:"movies"`
}

type movieResponse struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Year  int      `json:"year,omitempty"`
	Stars []string `json:"stars"`
}

type peopleResponse struct {
	Name   string           `json:"name"`
	People []personResponse `json:"people"`
}

type pathStep struct {
	Index      int    `json:"index"`
	MovieID    string `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	Year       int    `json:"year,omitempty"`
	FromID     string `json:"fromId"`
	FromName   string `json:"fromName"`
	PersonID   string `json:"personId"`
	PersonName string `json:"personName"`
}

type degreesResponse struct {
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Connected bool       `json:"connected"`
	Degrees   *int       `json:"degrees,omitempty"`
	Path      []pathStep `json:"path"`
	Expanded  int        `json:"expanded"`
}

type statsResponse struct {
	People          int `json:"people"`
	Movies          int `json:"movies"`
	Stars           int `json:"stars"`
	DistinctNames   int `json:"distinctNames"`
	SkippedStars    int `json:"skippedStars"`
	DuplicatePeople int `json:"duplicatePeople"`
	DuplicateMovies int `json:"duplicateMovies"`
	DuplicateStars  int `json:"duplicateStars"`
	InvalidRows     int `json:"invalidRows"`
}

func (h *APIHandlers) handlePeople(w http.ResponseWriter, r *http.Request) {
	q := peopleQuery{Name: strings.TrimSpace(r.URL.Query().Get("name"))}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	matches := h.service.Candidates(q.Name)
	resp := peopleResponse{Name: q.Name, People: make([]personResponse, 0, len(matches))}
	for _, p := range matches {
		resp.People = append(resp.People, toPersonResponse(p))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *APIHandlers) handlePerson(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Person(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toPersonResponse(p))
}

func (h *APIHandlers) handleMovie(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Movie(r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	stars := m.Stars
	if stars == nil {
		stars = []string{}
	}
	respondJSON(w, http.StatusOK, movieResponse{ID: m.ID, Title: m.Title, Year: m.Year, Stars: stars})
}

func (h *APIHandlers) handleDegrees(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q := degreesQuery{
		Source:     strings.TrimSpace(values.Get("source")),
		Target:     strings.TrimSpace(values.Get("target")),
		SourceName: strings.TrimSpace(values.Get("sourceName")),
		TargetName: strings.TrimSpace(values.Get("targetName")),
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "source (or sourceName) and target (or targetName) are required")
		return
	}

	ctx := r.Context()
	sourceID, err := h.endpointID(ctx, q.Source, q.SourceName)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	targetID, err := h.endpointID(ctx, q.Target, q.TargetName)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	result, err := h.service.ShortestPath(ctx, sourceID, targetID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.toDegreesResponse(result))
}

func (h *APIHandlers) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := h.service.Stats()
	load := h.service.Dataset().LoadStats()
	respondJSON(w, http.StatusOK, statsResponse{
		People:          stats.People,
		Movies:          stats.Movies,
		Stars:           stats.Stars,
		DistinctNames:   stats.Names,
		SkippedStars:    load.SkippedStars,
		DuplicatePeople: load.DuplicatePeople,
		DuplicateMovies: load.DuplicateMovies,
		DuplicateStars:  load.DuplicateStars,
		InvalidRows:     load.InvalidRows,
	})
}

func (h *APIHandlers) endpointID(ctx context.Context, id, name string) (string, error) {
	if id != "" {
		return id, nil
	}
	return h.service.ResolveName(ctx, name)
}

func (h *APIHandlers) toDegreesResponse(result search.Result) degreesResponse {
	resp := degreesResponse{
		Source:    result.Source,
		Target:    result.Target,
		Connected: result.Connected,
		Path:      []pathStep{},
		Expanded:  result.Expanded,
	}
	if !result.Connected {
		return resp
	}
	degrees := result.Degrees()
	resp.Degrees = &degrees

	fromID := result.Source
	for _, line := range h.presenter.Lines(result) {
		resp.Path = append(resp.Path, pathStep{
			Index:      line.Index,
			MovieID:    line.Source.MovieID,
			MovieTitle: line.Movie,
			Year:       line.Year,
			FromID:     fromID,
			FromName:   line.From,
			PersonID:   line.Source.PersonID,
			PersonName: line.To,
		})
		fromID = line.Source.PersonID
	}
	return resp
}

func (h *APIHandlers) writeServiceError(w http.ResponseWriter, err error) {
	var ambiguous *service.AmbiguousNameError
	switch {
	case errors.As(err, &ambiguous):
		candidates := make([]personResponse, 0, len(ambiguous.Candidates))
		for _, p := range ambiguous.Candidates {
			candidates = append(candidates, toPersonResponse(p))
		}
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":      err.Error(),
			"candidates": candidates,
		})
	case errors.Is(err, dataset.ErrPersonNotFound), errors.Is(err, dataset.ErrMovieNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "search timed out")
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func toPersonResponse(p domain.Person) personResponse {
	movies := p.Movies
	if movies == nil {
		movies = []string{}
	}
	return personResponse{ID: p.ID, Name: p.Name, Birth: p.Birth, Movies: movies}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
