package server

import (
	"strings"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/talentflowhq/talentflow/pkg/application"
	"github.com/talentflowhq/talentflow/pkg/configuration"
	"github.com/talentflowhq/talentflow/pkg/constants"
	"github.com/talentflowhq/talentflow/pkg/middleware"
	"github.com/talentflowhq/talentflow/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

// Default assembles the shared middleware stack and the HTTP server.
// Order matters: logging first so every later middleware runs inside
// the request span, auth is applied per-controller.
func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	allowedOrigins := strings.Split(options.Configuration.AllowedOrigins, ",")
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
		middleware.Cors(allowedOrigins...),
	}

	if options.Configuration.RateLimit.Enabled {
		middlewares = append(middlewares, middleware.RateLimit(options.Configuration.RateLimit.GlobalRPS))
	}

	middlewares = append(middlewares, middleware.RequestParams())

	app.RegisterMiddleware(middlewares...)
	return server.NewHTTPServer(app), nil
}
