package middelware

import (
	"net/http"
	"strings"

	"enquirydesk-backend/models"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware applies the browser cross-origin policy for the admin UI
// and the public enquiry form. The cors_origins config list supports three
// entry forms: "*" (any origin), an exact origin, or "*.domain" for any
// subdomain of that domain.
type CORSMiddleware struct {
	allowAll bool
	exact    map[string]bool
	domains  []string
}

// NewCORSMiddleware parses the configured origin list once.
func NewCORSMiddleware(cfg *models.Config) *CORSMiddleware {
	m := &CORSMiddleware{exact: make(map[string]bool)}
	for _, origin := range cfg.CORSOrigins {
		switch {
		case origin == "*":
			m.allowAll = true
		case strings.HasPrefix(origin, "*."):
			m.domains = append(m.domains, origin[2:])
		default:
			m.exact[origin] = true
		}
	}
	return m
}

// CORS returns the gin handler. The allowed origin is echoed back (never
// "*") so credentialed requests keep working; disallowed origins get no
// allow header at all.
func (m *CORSMiddleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.Request.Header.Get("Origin"); origin != "" && m.allows(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (m *CORSMiddleware) allows(origin string) bool {
	if m.allowAll || m.exact[origin] {
		return true
	}
	for _, domain := range m.domains {
		if origin == domain || strings.HasSuffix(origin, "."+domain) {
			return true
		}
	}
	return false
}
