package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/controllers/dtos"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/mappers"
	"github.com/talentflowhq/talentflow/modules/recruiting/presentation/viewmodels"
	"github.com/talentflowhq/talentflow/modules/recruiting/services"
	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/httpapi"
	"github.com/talentflowhq/talentflow/pkg/middleware"
)

type PipelineController struct {
	app      application.Application
	pipeline *services.PipelineService
	basePath string
}

func NewPipelineController(app application.Application) application.Controller {
	return &PipelineController{
		app:      app,
		pipeline: app.Service(services.PipelineService{}).(*services.PipelineService),
		basePath: "/api/pipeline",
	}
}

func (c *PipelineController) Key() string {
	return c.basePath
}

func (c *PipelineController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(conf.Session.Secret))

	router.HandleFunc("/stages", c.Stages).Methods(http.MethodGet)
	router.HandleFunc("/view", c.View).Methods(http.MethodGet)
	router.HandleFunc("/move", c.Move).Methods(http.MethodPost)
	router.HandleFunc("/bulk-move", c.BulkMove).Methods(http.MethodPost)
}

func (c *PipelineController) Stages(w http.ResponseWriter, r *http.Request) {
	stages, err := c.pipeline.ListStages(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]viewmodels.Stage, 0, len(stages))
	for _, s := range stages {
		out = append(out, mappers.StageToViewModel(s))
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"stages": out})
}

func (c *PipelineController) View(w http.ResponseWriter, r *http.Request) {
	view, err := c.pipeline.GetPipelineView(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, mappers.PipelineViewToViewModel(view))
}

func (c *PipelineController) Move(w http.ResponseWriter, r *http.Request) {
	var dto dtos.MoveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body", nil)
		return
	}
	if err := dto.Ok(); err != nil {
		_ = httpapi.WriteValidationError(w, err)
		return
	}

	if err := c.pipeline.MoveCandidate(r.Context(), dto.CandidateID, dto.StageID, dto.Notes); err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (c *PipelineController) BulkMove(w http.ResponseWriter, r *http.Request) {
	var dto dtos.BulkMoveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body", nil)
		return
	}
	if err := dto.Ok(); err != nil {
		_ = httpapi.WriteValidationError(w, err)
		return
	}

	moved, err := c.pipeline.BulkMoveCandidates(r.Context(), dto.CandidateIDs, dto.StageID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"movedCount": moved,
	})
}
