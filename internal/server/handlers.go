package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasnim.dev/gamebox/internal/console"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-Id"
	maxBodySize     = 64 * 1024
)

type Dispatcher interface {
	Dispatch(ctx context.Context, req console.Request) console.Result
}

// HealthCheck reports liveness without touching any collaborator.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// HandleAPI dispatches every method on the API route. The body is only
// interpreted for write methods.
func HandleAPI(d Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
		if err != nil {
			clog.FromContext(c.Request.Context()).Warn("reading request body", "error", err)
			c.JSON(http.StatusInternalServerError, console.Failure{Message: "reading request body: " + err.Error()})
			return
		}

		res := d.Dispatch(c.Request.Context(), console.Request{
			Method:   c.Request.Method,
			Body:     body,
			SourceIP: c.ClientIP(),
			Event:    NewEvent(c, body),
		})
		c.JSON(res.StatusCode, res.Body())
	}
}

// HandleAsset serves the web console for any unmatched GET.
func HandleAsset(src AssetSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if name == "" {
			name = indexAsset
		}

		asset, err := src.Asset(c.Request.Context(), name)
		if errors.Is(err, ErrAssetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
		if err != nil {
			clog.FromContext(c.Request.Context()).Error("loading asset", "name", name, "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"message": "asset unavailable"})
			return
		}

		if asset.ContentDisposition != "" {
			c.Header("Content-Disposition", asset.ContentDisposition)
		}
		c.Data(http.StatusOK, asset.ContentType, asset.Body)
	}
}

// RequestLogger tags each request with an id and carries a logger on its context.
func RequestLogger(base *clog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		log := base.With("request_id", id, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(clog.WithLogger(c.Request.Context(), log))

		start := time.Now()
		c.Next()
		log.Debug("handled", "status", c.Writer.Status(), "duration", time.Since(start))
	}
}
