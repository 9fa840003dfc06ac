package routes

import (
	"io"
	"log"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/rm-hull/clawdash/internal"
)

// forwarded request headers. Authorization is never forwarded, the client sets its own.
var forwardHeaders = []string{"Accept", "Accept-Language", "X-Request-Id"}

// Proxy relays any request under the route's *path parameter to the upstream API
// through the authenticated client.
func Proxy(client *internal.Client) func(c *gin.Context) {
	return func(c *gin.Context) {
		path := c.Param("path")
		if path == "" || path == "/" {
			c.JSON(http.StatusNotFound, gin.H{"error": "no upstream path given"})
			return
		}

		req := &internal.Request{
			Method: c.Request.Method,
			Path:   path,
			Query:  c.Request.URL.Query(),
			Header: http.Header{},
		}
		for _, name := range forwardHeaders {
			if value := c.GetHeader(name); value != "" {
				req.Header.Set(name, value)
			}
		}

		if c.Request.Body != nil && c.Request.ContentLength != 0 {
			data, err := io.ReadAll(c.Request.Body)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
				return
			}
			if len(data) > 0 {
				req.Body = internal.RawBody{ContentType: c.ContentType(), Data: data}
			}
		}

		resp, err := client.Do(c.Request.Context(), req)
		if err != nil {
			relayError(c, err)
			return
		}

		if resp.StatusCode == http.StatusNoContent || len(resp.Body) == 0 {
			c.Status(resp.StatusCode)
			return
		}
		c.Data(resp.StatusCode, contentType(resp.Header), resp.Body)
	}
}

func relayError(c *gin.Context, err error) {
	var stErr *internal.HTTPStatusError
	switch {
	case sessionExpired(err):
		c.JSON(upstreamStatus(err), gin.H{"error": "session expired, log in again"})
	case errors.As(err, &stErr):
		if len(stErr.Body) == 0 {
			c.Status(stErr.StatusCode)
			return
		}
		c.Data(stErr.StatusCode, contentType(stErr.Header), stErr.Body)
	default:
		log.Printf("error while proxying request: %v", err)
		c.JSON(upstreamStatus(err), gin.H{"error": "upstream request failed"})
	}
}

func contentType(header http.Header) string {
	if ct := header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/json"
}
