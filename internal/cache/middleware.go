package cache

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
)

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware caches successful GET responses for the entity type, keyed by
// the request URL. Mutations that succeed invalidate the entity type and its
// dependents, see Dependents.
func (s *Store) Middleware(entityType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodOptions:
			c.Next()

		case http.MethodGet:
			key := c.Request.URL.String()
			if body, ok := s.Get(entityType, key); ok {
				c.Data(http.StatusOK, "application/json; charset=utf-8", body)
				c.Abort()
				return
			}

			writer := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
			c.Writer = writer
			c.Next()

			if c.Writer.Status() == http.StatusOK {
				s.Set(entityType, key, writer.body.Bytes())
			}

		default:
			c.Next()

			if c.Writer.Status() < http.StatusMultipleChoices {
				s.Invalidate(Dependents(entityType)...)
			}
		}
	}
}
