package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/talentflowhq/talentflow/modules/recruiting/domain/aggregates/candidate"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/controllers/dtos"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/mappers"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/viewmodels"
	"github.com/talentflowhq/talentflow/modules/recruiting/services"
	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/httpapi"
	"github.com/talentflowhq/talentflow/pkg/middleware"
)

type AssignmentController struct {
	app         application.Application
	assignments *services.AssignmentService
	basePath    string
}

func NewAssignmentController(app application.Application) application.Controller {
	return &AssignmentController{
		app:         app,
		assignments: app.Service(services.AssignmentService{}).(*services.AssignmentService),
		basePath:    "/api/candidates",
	}
}

func (c *AssignmentController) Key() string {
	return c.basePath
}

func (c *AssignmentController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(conf.Session.Secret))

	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/bulk-assign", c.BulkAssign).Methods(http.MethodPost)
	router.HandleFunc("/{id}/assign", c.Assign).Methods(http.MethodPost)
	router.HandleFunc("/{id}/reassign", c.Reassign).Methods(http.MethodPost)
	router.HandleFunc("/{id}/unassign", c.Unassign).Methods(http.MethodPost)
	router.HandleFunc("/{id}/history", c.History).Methods(http.MethodGet)
}

func (c *AssignmentController) List(w http.ResponseWriter, r *http.Request) {
	params, ok := parseFindParams(w, r)
	if !ok {
		return
	}

	visible, err := c.assignments.ListVisibleCandidates(r.Context(), params)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]viewmodels.Candidate, 0, len(visible))
	for _, v := range visible {
		out = append(out, mappers.VisibleToViewModel(v))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"candidates": out})
}

func (c *AssignmentController) Assign(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, err := c.assignments.Assign(r.Context(), candidateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	recruiter := entity.RecruiterID()
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"candidateId": entity.ID(),
		"recruiterId": recruiter.UUID,
	})
}

func (c *AssignmentController) Reassign(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(w, r)
	if !ok {
		return
	}
	var dto dtos.ReassignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body", nil)
		return
	}
	if err := dto.Ok(); err != nil {
		_ = httpapi.WriteValidationError(w, err)
		return
	}

	entity, err := c.assignments.Reassign(r.Context(), candidateID, dto.ToRecruiterID, dto.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	recruiter := entity.RecruiterID()
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"candidateId": entity.ID(),
		"recruiterId": recruiter.UUID,
	})
}

func (c *AssignmentController) Unassign(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(w, r)
	if !ok {
		return
	}
	var dto dtos.UnassignDTO
	// Body is optional for unassign.
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body", nil)
		return
	}
	if err := dto.Ok(); err != nil {
		_ = httpapi.WriteValidationError(w, err)
		return
	}

	entity, err := c.assignments.Unassign(r.Context(), candidateID, dto.Reason)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"candidateId": entity.ID(),
	})
}

func (c *AssignmentController) BulkAssign(w http.ResponseWriter, r *http.Request) {
	var dto dtos.BulkAssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body", nil)
		return
	}
	if err := dto.Ok(); err != nil {
		_ = httpapi.WriteValidationError(w, err)
		return
	}

	result, err := c.assignments.BulkAssign(r.Context(), dto.CandidateIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, result)
}

func (c *AssignmentController) History(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := pathID(w, r)
	if !ok {
		return
	}

	entries, err := c.assignments.History(r.Context(), candidateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]viewmodels.AssignmentLogEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, mappers.LogEntryToViewModel(entry))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"history": out})
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid candidate id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func parseFindParams(w http.ResponseWriter, r *http.Request) (*candidate.FindParams, bool) {
	params := &candidate.FindParams{}
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("stageId")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid stageId filter", nil)
			return nil, false
		}
		params.StageID = id
	}
	if v := strings.TrimSpace(q.Get("minScore")); v != "" {
		score, err := strconv.Atoi(v)
		if err != nil || score < 0 {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid minScore filter", nil)
			return nil, false
		}
		params.MinScore = score
	}
	params.Location = strings.TrimSpace(q.Get("location"))
	if v := strings.TrimSpace(q.Get("assessmentCompleted")); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid assessmentCompleted filter", nil)
			return nil, false
		}
		params.AssessmentCompleted = &completed
	}
	if v := strings.TrimSpace(q.Get("limit")); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			_ = httpapi.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid limit", nil)
			return nil, false
		}
		params.Limit = limit
	}
	return params, true
}
