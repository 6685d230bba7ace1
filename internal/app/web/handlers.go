package web

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	common "github.com/usa-trezo/en-us/internal/app/common/exception_handler"
	"github.com/usa-trezo/en-us/internal/app/dto"
	"github.com/usa-trezo/en-us/internal/app/metrics"
	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/utils"

	"github.com/gin-gonic/gin"
)

type pageData struct {
	Content Content
	Ticker  template.HTML
}

// Page renders the full landing page with the ticker as it is right now.
func (s *Server) Page(c *gin.Context) {
	fragment, err := render.Fragment(s.format.Render(s.state.View()))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.HTML(http.StatusOK, "page", pageData{Content: s.content, Ticker: fragment})
}

// Ticker serves the bare fragment. Clients revalidate with If-None-Match.
func (s *Server) Ticker(c *gin.Context) {
	fragment, err := render.Fragment(s.format.Render(s.state.View()))
	if err != nil {
		s.fail(c, err)
		return
	}
	body := []byte(fragment)
	etag := utils.ETag(body)

	c.Header("ETag", etag)
	c.Header("Cache-Control", "no-cache")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) TickerJSON(c *gin.Context) {
	raw := s.state.View()
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.NewTickerResponse(raw, s.format.Render(raw)))
}

func (s *Server) Health(c *gin.Context) {
	view := s.state.View()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"loading": view.Loading,
		"version": view.Version,
	})
}

func (s *Server) fail(c *gin.Context, err error) {
	c.Error(err)
	code := common.CodeOf(err)
	if code == "" {
		code = common.ErrRender
	}
	metrics.ErrorsTotal.WithLabelValues(code).Inc()

	message := "Internal error"
	var ce *common.CustomError
	if errors.As(err, &ce) {
		message = ce.Message
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"errors": []string{message}})
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
