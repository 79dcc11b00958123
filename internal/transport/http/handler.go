// Package http wires the gin transport: the POST /execute route, the
// session-gate middleware, and trace-ID propagation.
package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"judgebox/internal/model"
	"judgebox/internal/session"
	"judgebox/pkg/utils/contextkey"
	"judgebox/pkg/utils/response"
)

var validate = validator.New()

// Executor is the dependency the handler calls to run a request's
// pipeline. It mirrors executor.Executor's signature without
// importing that package directly, so this package stays testable
// against a fake.
type Executor interface {
	Execute(ctx context.Context, req *model.Request) *model.Result
}

// RegisterRoutes mounts POST /execute (behind the session gate) and a
// trace-ID middleware on router.
func RegisterRoutes(router *gin.Engine, store session.Store, exec Executor) {
	router.Use(traceID())
	router.POST("/execute", session.Gate(store), executeHandler(exec))
}

func executeHandler(exec Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req model.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		req.Language = string(model.Normalize(req.Language))
		if err := validate.Struct(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		result := exec.Execute(c.Request.Context(), &req)
		c.JSON(200, result)
	}
}

// traceID assigns a request-scoped trace id and stamps it both into
// gin's key store (for response.go's envelope) and into the request's
// context.Context (for pkg/utils/logger, which only ever reads from
// ctx.Value), so every log line the executor and workspace emit for
// this request carries the same trace_id as the HTTP response.
func traceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("trace_id", id)
		ctx := context.WithValue(c.Request.Context(), contextkey.TraceID, id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
