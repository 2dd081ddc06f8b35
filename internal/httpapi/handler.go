// Package httpapi exposes the validator and solver over HTTP (JSON in, JSON out).
package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/hydronet/hardycross"
	"github.com/katalvlaran/hydronet/network"
	"github.com/katalvlaran/hydronet/report"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type ValidateResponse struct {
	Valid      bool     `json:"valid"`
	Violations []string `json:"violations"`
}

type SolveResponse struct {
	Discharge     report.Discharges `json:"discharge"`
	Iterations    int               `json:"iterations"`
	Converged     bool              `json:"converged"`
	MaxCorrection *float64          `json:"maxCorrection"`
	Summary       report.Summary    `json:"summary"`
	Violations    []string          `json:"violations,omitempty"`
}

type ErrorResponse struct {
	Error      string   `json:"error"`
	Violations []string `json:"violations,omitempty"`
}

// Handler serves the /api/v1 routes. opts supplies tolerance and logger;
// the iteration bound always comes from the posted network.
type Handler struct {
	service string
	version string
	opts    hardycross.Options
	logger  *slog.Logger
	now     func() time.Time
}

func NewHandler(service, version string, opts hardycross.Options, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		service: service,
		version: version,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	v1.GET("/network/reference", h.Reference)
	v1.POST("/validate", h.Validate)
	v1.POST("/solve", h.Solve)
	v1.POST("/export", h.Export)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Service:   h.service,
		Version:   h.version,
	})
}

func (h *Handler) Reference(c *gin.Context) {
	c.JSON(http.StatusOK, network.Reference())
}

func (h *Handler) Validate(c *gin.Context) {
	n, ok := h.bindNetwork(c)
	if !ok {
		return
	}
	valid, violations := n.Validate()
	c.JSON(http.StatusOK, ValidateResponse{Valid: valid, Violations: violations})
}

// Solve validates and solves the posted network. Invalid input is rejected
// with 422 unless ?force=true, in which case the violations ride along with
// the best-effort result.
func (h *Handler) Solve(c *gin.Context) {
	n, res, violations, ok := h.solve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SolveResponse{
		Discharge:     res.Discharge,
		Iterations:    res.Iterations,
		Converged:     res.Converged,
		MaxCorrection: report.Nullable(res.MaxCorrection),
		Summary:       report.Summarize(res.Discharge),
		Violations:    violations,
	})
	h.logger.Debug("network solved",
		"network", n.Name, "pipes", n.Pipes(), "loops", n.LoopCount(),
		"iterations", res.Iterations, "converged", res.Converged)
}

// Export solves the posted network and returns the export document as an attachment.
func (h *Handler) Export(c *gin.Context) {
	n, res, _, ok := h.solve(c)
	if !ok {
		return
	}
	doc, err := report.NewExport(n, res.Discharge, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+report.FileName(doc.Timestamp)+`"`)
	c.IndentedJSON(http.StatusOK, doc)
}

// solve binds, gates and runs the solver. ok == false means a response was written.
func (h *Handler) solve(c *gin.Context) (*network.Network, hardycross.Result, []string, bool) {
	n, ok := h.bindNetwork(c)
	if !ok {
		return nil, hardycross.Result{}, nil, false
	}

	force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
	valid, violations := n.Validate()
	if !valid && !force {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      hardycross.ErrInvalidInput.Error(),
			Violations: violations,
		})
		return nil, hardycross.Result{}, nil, false
	}

	res, err := n.Solve(h.opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hardycross.ErrBadTolerance) {
			status = http.StatusBadRequest
		}
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return nil, hardycross.Result{}, nil, false
	}
	if !valid {
		h.logger.Warn("solved invalid network on request",
			"request_id", c.GetString(requestIDKey), "violations", len(violations))
	}

	return n, res, violations, true
}

func (h *Handler) bindNetwork(c *gin.Context) (*network.Network, bool) {
	var n network.Network
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid network document: " + err.Error()})
		return nil, false
	}

	return &n, true
}
