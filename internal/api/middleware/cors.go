package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ConfigCORS builds the CORS policy from the configured allowed origins.
// An entry of "*" opens the API up completely, which is only meant for
// development setups.
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, domain := range allowedDomains {
		if domain == "*" {
			conf.AllowAllOrigins = true
			conf.AllowCredentials = false
			break
		}
	}
	if !conf.AllowAllOrigins {
		conf.AllowOrigins = allowedDomains
	}

	return cors.New(conf)
}
