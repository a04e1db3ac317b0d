package router

import (
	"net/url"

	"github.com/centavo/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// URLMiddleware stores the API base URL in the request context so that
// response builders can construct absolute links.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), url.String())
		c.Next()
	}
}
