package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/hydronet/internal/config"
)

// NewRouter wires middleware and routes for the server.
func NewRouter(cfg *config.Config, version string, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORS(cfg.Server.CORSOrigin))

	opts := cfg.SolverOptions()
	opts.Logger = logger
	NewHandler("hydronet", version, opts, logger).RegisterRoutes(r)

	return r
}
