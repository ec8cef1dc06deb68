package http

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/domain/fitness"
	apperrors "github.com/yanqian/fitcheck/pkg/errors"
)

// ChartRenderer draws a report as an HTML page.
type ChartRenderer interface {
	Render(w io.Writer, report fitness.Report) error
}

// Handler wires the HTTP transport to the fitness service.
type Handler struct {
	svc      fitness.Service
	renderer ChartRenderer
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc fitness.Service, renderer ChartRenderer, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		renderer: renderer,
		logger:   logger.With("component", "http.handler"),
	}
}

// Analyze returns the comparison report as JSON.
func (h *Handler) Analyze(c *gin.Context) {
	report, ok := h.analyze(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// AnalyzeChart returns the comparison chart as an HTML page.
func (h *Handler) AnalyzeChart(c *gin.Context) {
	report, ok := h.analyze(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, report); err != nil {
		abortWithError(c, internalError(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (h *Handler) analyze(c *gin.Context) (fitness.Report, bool) {
	var req fitness.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return fitness.Report{}, false
	}

	report, err := h.svc.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, internalError(err))
		return fitness.Report{}, false
	}
	return report, true
}

// Metrics lists the canonical metric definitions.
func (h *Handler) Metrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": fitness.Metrics()})
}

// Reference returns the reference cell used for a gender and age.
func (h *Handler) Reference(c *gin.Context) {
	cell := h.svc.Reference(c.Query("gender"), fitness.ParseValue(c.Query("age")))
	c.JSON(http.StatusOK, cell)
}

// Usage returns aggregate report counters.
func (h *Handler) Usage(c *gin.Context) {
	counts, err := h.svc.Usage(c.Request.Context())
	if err != nil {
		code := apperrors.CodeOf(err)
		if code == "" {
			code = apperrors.CodeInternal
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, code, genericErrorMessage, err))
		return
	}
	if counts == nil {
		counts = []fitness.UsageCount{}
	}
	c.JSON(http.StatusOK, gin.H{"usage": counts})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
