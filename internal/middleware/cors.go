package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// The exact surface this API serves: bearer-token JSON requests from the
// storefront, with the request id echoed back for log correlation.
var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = "Authorization, Content-Type, X-Request-ID"
)

// CORS answers preflights and stamps the allow headers on every response.
// Origins are unrestricted: everything behind auth requires a bearer token,
// and the public catalog endpoints are meant to be embeddable.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", corsMethods)
		c.Header("Access-Control-Allow-Headers", corsHeaders)
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
