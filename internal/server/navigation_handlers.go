package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parkd-dev/parkd/internal/navigator"
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/routes"
)

// NavigateRequest asks for a navigation decision
type NavigateRequest struct {
	To   string `json:"to" binding:"required"`
	From string `json:"from"`
}

// NavigateResponse reports where a navigation lands
type NavigateResponse struct {
	Decision string      `json:"decision"` // continue, redirect
	Path     string      `json:"path"`
	Page     *pages.Page `json:"page,omitempty"`
	Trail    []string    `json:"trail"`
	// Landing is the home page of the session's role, set for signed-in sessions
	Landing  string      `json:"landing,omitempty"`
}

// RouteDetail describes one route of the table
type RouteDetail struct {
	Path       string `json:"path"`
	Page       string `json:"page,omitempty"`
	Title      string `json:"title,omitempty"`
	Role       string `json:"role,omitempty"`
	Protected  bool   `json:"protected"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Lazy       bool   `json:"lazy,omitempty"`
}

func (s *Server) respondNavigationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, navigator.ErrRouteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	default:
		s.logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Navigation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// servePage answers a GET on a table path: a redirect when the navigation
// lands elsewhere, the page otherwise.
func (s *Server) servePage(c *gin.Context) {
	target := c.FullPath()

	outcome, err := s.navigator.Navigate(c.Request.Context(), target, c.Query("from"), GetSession(c))
	if err != nil {
		s.respondNavigationError(c, err)
		return
	}

	if outcome.Path != target {
		c.Redirect(http.StatusFound, outcome.Path)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    outcome.Path,
		"page":    outcome.Page.ID,
		"title":   outcome.Page.Title,
		"section": outcome.Page.Section,
	})
}

func (s *Server) navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess := GetSession(c)
	outcome, err := s.navigator.Navigate(c.Request.Context(), req.To, req.From, sess)
	if err != nil {
		s.respondNavigationError(c, err)
		return
	}

	landing := ""
	if sess.Authenticated() && sess.Role.Valid() {
		landing = sess.Role.HomePath()
	}

	decision := "continue"
	if outcome.Redirected {
		decision = "redirect"
	}
	page := outcome.Page

	c.JSON(http.StatusOK, NavigateResponse{
		Decision: decision,
		Path:     outcome.Path,
		Page:     &page,
		Trail:    outcome.Trail,
		Landing:  landing,
	})
}

func (s *Server) listRoutes(c *gin.Context) {
	all := s.navigator.Table().All()
	details := make([]RouteDetail, len(all))
	for i, d := range all {
		details[i] = routeDetail(d)
	}
	c.JSON(http.StatusOK, details)
}

func routeDetail(d routes.Descriptor) RouteDetail {
	detail := RouteDetail{
		Path:       d.Path,
		Page:       string(d.Page),
		Role:       d.RequiredRole().String(),
		Protected:  d.Protected(),
		RedirectTo: d.RedirectTo,
		Lazy:       d.Lazy,
	}
	if d.Page != "" {
		detail.Title = pages.Title(d.Page)
	}
	return detail
}

func (s *Server) listAudit(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := s.audit.List(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list audit entries")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
