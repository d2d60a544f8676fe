package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caibirdme/ltbridge/internal/backend"
	"github.com/caibirdme/ltbridge/internal/logql"
	"github.com/caibirdme/ltbridge/internal/sqlbuilder"
	"github.com/caibirdme/ltbridge/internal/traceql"
	"github.com/caibirdme/ltbridge/pkg/logger"
)

// QueryHandler exposes Loki- and Tempo-shaped query endpoints backed by the
// logql/traceql/sqlbuilder translation pipeline.
type QueryHandler struct {
	profiles          *backend.Registry
	defaultTraceLimit int
	maxTraceLimit     int
	executor          backend.Executor
	logger            logger.Logger
}

func NewQueryHandler(profiles *backend.Registry, defaultTraceLimit, maxTraceLimit int, executor backend.Executor, log logger.Logger) *QueryHandler {
	return &QueryHandler{
		profiles:          profiles,
		defaultTraceLimit: defaultTraceLimit,
		maxTraceLimit:     maxTraceLimit,
		executor:          executor,
		logger:            log,
	}
}

// logQueryResponse mirrors Loki's query_range response envelope just deep
// enough for a SQL string to ride along under a vendor-specific field;
// ltbridge is a translation gateway, not a Loki server, so it does not try
// to reproduce streams/matrix result types.
type logQueryResponse struct {
	Status string `json:"status"`
	SQL    string `json:"sql"`
}

// HandleLokiQueryRange handles GET /loki/api/v1/query_range?query=<LogQL>.
func (h *QueryHandler) HandleLokiQueryRange(c *gin.Context) {
	raw := c.Query("query")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter \"query\"", "code": "MISSING_QUERY"})
		return
	}

	profile, err := h.profiles.Resolve(c.Query("backend"))
	if err != nil {
		h.logger.Error("backend profile resolution failed", "error", err)
		c.Error(err)
		return
	}

	query, err := logql.Parse(raw)
	if err != nil {
		h.logger.Warn("logql parse failed", "query", raw, "error", err)
		c.Error(err)
		return
	}

	sql := sqlbuilder.BuildLogSQL(*query, profile)

	rows, err := h.executor.QueryLogs(c.Request.Context(), sql)
	if err != nil {
		h.logger.Error("log query execution failed", "sql", sql, "error", err)
		c.Error(err)
		return
	}
	if rows == nil {
		c.JSON(http.StatusOK, logQueryResponse{Status: "success", SQL: sql})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "sql": sql, "rows": rows})
}

type traceQueryResponse struct {
	Status string `json:"status"`
	SQL    string `json:"sql"`
}

// HandleTempoSearch handles GET /tempo/api/search?q=<TraceQL>&limit=<n>.
func (h *QueryHandler) HandleTempoSearch(c *gin.Context) {
	raw := c.Query("q")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter \"q\"", "code": "MISSING_QUERY"})
		return
	}

	limit := h.defaultTraceLimit
	if ls := c.Query("limit"); ls != "" {
		if parsed, err := strconv.Atoi(ls); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > h.maxTraceLimit {
		limit = h.maxTraceLimit
	}

	profile, err := h.profiles.Resolve(c.Query("backend"))
	if err != nil {
		h.logger.Error("backend profile resolution failed", "error", err)
		c.Error(err)
		return
	}

	query, err := traceql.Parse(raw)
	if err != nil {
		h.logger.Warn("traceql parse failed", "query", raw, "error", err)
		c.Error(err)
		return
	}

	sql, err := sqlbuilder.BuildTraceSQL(query, profile, limit)
	if err != nil {
		h.logger.Warn("traceql lowering failed", "query", raw, "error", err)
		c.Error(err)
		return
	}

	rows, err := h.executor.QueryTraceSpans(c.Request.Context(), sql)
	if err != nil {
		h.logger.Error("trace query execution failed", "sql", sql, "error", err)
		c.Error(err)
		return
	}
	if rows == nil {
		c.JSON(http.StatusOK, traceQueryResponse{Status: "success", SQL: sql})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "sql": sql, "rows": rows})
}
