package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caibirdme/ltbridge/internal/backend"
	"github.com/caibirdme/ltbridge/internal/logql"
	"github.com/caibirdme/ltbridge/internal/sqlbuilder"
	"github.com/caibirdme/ltbridge/internal/traceql"
	"github.com/caibirdme/ltbridge/pkg/logger"
)

// ErrorResponse is the standardized JSON body for a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ErrorHandler maps the typed errors the query-translation pipeline returns
// to HTTP status codes: parse and semantic errors are the caller's fault
// (400), anything else is ours (500).
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		statusCode, code := classify(err)
		requestID, _ := c.Get("request_id")

		if statusCode >= 500 {
			log.Error("request failed", "status", statusCode, "path", c.Request.URL.Path, "request_id", requestID, "error", err.Error())
		} else {
			log.Warn("request rejected", "status", statusCode, "path", c.Request.URL.Path, "request_id", requestID, "error", err.Error())
		}

		c.JSON(statusCode, ErrorResponse{Error: err.Error(), Code: code})
	}
}

func classify(err error) (int, string) {
	switch err.(type) {
	case *logql.ParseError:
		return http.StatusBadRequest, "LOGQL_PARSE_ERROR"
	case *traceql.ParseError:
		return http.StatusBadRequest, "TRACEQL_PARSE_ERROR"
	case *traceql.SemanticError:
		return http.StatusBadRequest, "TRACEQL_SEMANTIC_ERROR"
	case *sqlbuilder.SemanticError:
		return http.StatusBadRequest, "TRANSLATION_SEMANTIC_ERROR"
	case *backend.ProfileError:
		return http.StatusInternalServerError, "BACKEND_PROFILE_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
