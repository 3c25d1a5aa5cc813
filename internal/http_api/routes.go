package http_api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funildigital/prelander/internal/identity"
)

// routes sets up the routes for the HTTP server.
func (s *HTTPServer) routes() {
	s.router.GET("/modelo/:slug", s.landing)
	s.router.GET("/gera", identity.RequireVisitor(), s.issue)
	s.router.GET("/obrigado", identity.RequireVisitor(), s.confirm)

	// Everything else falls through to the public assets directory
	// (images, the unauthorized page).
	s.router.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.config.PublicDir))))
}
