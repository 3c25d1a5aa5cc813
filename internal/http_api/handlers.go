package http_api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/funildigital/prelander/internal/catalog"
	"github.com/funildigital/prelander/internal/identity"
	"github.com/funildigital/prelander/internal/ledger"
	"github.com/funildigital/prelander/internal/models"
)

// issueRequest represents the query parameters for token issuance
type issueRequest struct {
	Plano string  `form:"plano" binding:"required"`
	Valor float64 `form:"valor" binding:"required,gte=10,lte=100"`
}

// landing is a handler for the /modelo/:slug endpoint. It renders the
// prelander page for the model and assigns a visitor identity when the
// request carries none.
func (s *HTTPServer) landing(c *gin.Context) {
	slug := c.Param("slug")

	descriptor, err := s.catalog.Load(slug)
	if errors.Is(err, catalog.ErrModelNotFound) || errors.Is(err, catalog.ErrInvalidSlug) {
		c.String(http.StatusNotFound, "Modelo não encontrado")
		return
	}
	if err != nil {
		s.logger.Error("Failed to load model descriptor", " slug ", slug, " error ", err)
		c.String(http.StatusInternalServerError, "Erro interno.")
		return
	}

	identity.EnsureVisitor(c)

	c.HTML(http.StatusOK, "landing.html", gin.H{
		"Nome":    descriptor.Nome,
		"Imagem":  descriptor.Imagem,
		"PixelID": descriptor.PixelID,
		"Plano":   descriptor.Plano,
		"Valor":   strconv.FormatFloat(descriptor.Valor, 'f', -1, 64),
	})
}

// issue is a handler for the /gera endpoint. It mints (or re-uses) the
// active token for the visitor and plan, then forwards to the thank-you
// page.
func (s *HTTPServer) issue(c *gin.Context) {
	user := identity.VisitorID(c)

	var req issueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		// Same redirect target as an unauthenticated request, keeping the
		// original's externally observable contract.
		s.logger.Debug("Rejected issuance parameters", " user ", user, " error ", err)
		c.Redirect(http.StatusFound, identity.UnauthorizedPath)
		return
	}

	token, err := s.ledger.Issue(user, req.Plano, req.Valor)
	if errors.Is(err, ledger.ErrInvalidPurchase) {
		s.logger.Debug("Rejected issuance", " user ", user, " plano ", req.Plano, " valor ", req.Valor)
		c.Redirect(http.StatusFound, identity.UnauthorizedPath)
		return
	}
	if err != nil {
		s.logger.Error("Failed to issue token", " user ", user, " plano ", req.Plano, " error ", err)
		c.String(http.StatusInternalServerError, "Erro interno.")
		return
	}

	c.Redirect(http.StatusFound, "/obrigado?token="+token.Token)
}

// confirm is a handler for the /obrigado endpoint. It consumes the token
// exactly once and renders the purchase confirmation page.
func (s *HTTPServer) confirm(c *gin.Context) {
	code := c.Query("token")
	if code == "" {
		c.String(http.StatusOK, "Token ausente.")
		return
	}

	token, err := s.ledger.Redeem(code)
	if errors.Is(err, ledger.ErrTokenNotFound) || errors.Is(err, ledger.ErrTokenUsed) {
		c.String(http.StatusOK, "Token inválido ou já utilizado.")
		return
	}
	if err != nil {
		s.logger.Error("Failed to redeem token", " token ", code, " error ", err)
		c.String(http.StatusInternalServerError, "Erro interno.")
		return
	}

	go s.notificator.SendPurchaseNotification(&models.Notification{
		Token: token.Token,
		Plano: token.Plano,
		Valor: token.Valor,
	})

	c.HTML(http.StatusOK, "confirmation.html", gin.H{
		"Valor":    token.Valor,
		"ValorFmt": fmt.Sprintf("%.2f", token.Valor),
		"Plano":    token.Plano,
		"Destino":  s.destination(token.Plano),
	})
}

// destination selects the post-purchase redirect target from the plan code.
func (s *HTTPServer) destination(plano string) string {
	if strings.Contains(plano, s.config.PremiumPlanMarker) {
		return s.config.PremiumChannelURL
	}
	return s.config.DefaultChannelURL
}
