package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/middleware"
)

// WebSocketController attaches live sessions. The auth middleware runs
// before the upgrade, so the hub always sees a resolved recruiter.
type WebSocketController struct {
	app      application.Application
	basePath string
}

func NewWebSocketController(app application.Application) application.Controller {
	return &WebSocketController{
		app:      app,
		basePath: "/ws",
	}
}

func (c *WebSocketController) Key() string {
	return c.basePath
}

func (c *WebSocketController) Register(r *mux.Router) {
	conf := configuration.Use()
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.Authorize(conf.Session.Secret))
	router.Handle("", c.app.Websocket()).Methods(http.MethodGet)
}
