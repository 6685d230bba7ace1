// Package web serves the landing page and the read-only ticker endpoints.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/usa-trezo/en-us/internal/app/common/logger"
	"github.com/usa-trezo/en-us/internal/app/services/render"
	"github.com/usa-trezo/en-us/internal/app/services/state"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"glyph": func(name string) string { return glyphs[name] },
	"inc":   func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/*.tmpl"))

type Server struct {
	state   *state.TickerState
	format  *render.Formatter
	ws      http.HandlerFunc
	content Content
	logger  *logrus.Logger
}

// NewServer wires the page to the ticker state. ws handles /ws upgrades.
func NewServer(st *state.TickerState, format *render.Formatter, ws http.HandlerFunc) *Server {
	return &Server{
		state:   st,
		format:  format,
		ws:      ws,
		content: pageContent(),
		logger:  logger.GetLogger(),
	}
}

func (s *Server) Router(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(loggerFunc(s.logger), gin.Recovery(), corsFunc(allowedOrigins))
	engine.SetHTMLTemplate(pageTemplate)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	engine.StaticFS("/static", http.FS(static))

	engine.GET("/", s.Page)
	engine.GET("/ticker", s.Ticker)
	engine.GET("/api/ticker", s.TickerJSON)
	engine.GET("/health", s.Health)
	if s.ws != nil {
		engine.GET("/ws", gin.WrapF(s.ws))
	}
	return engine
}

func corsFunc(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Accept", "If-None-Match"},
		ExposeHeaders: []string{"ETag", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range allowedOrigins {
		if origin == "*" {
			config.AllowAllOrigins = true
		}
	}
	if !config.AllowAllOrigins {
		config.AllowOrigins = allowedOrigins
	}
	return cors.New(config)
}

func loggerFunc(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		end := time.Now()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"status":   c.Writer.Status(),
			"path":     c.Request.URL.Path,
			"query":    c.Request.URL.RawQuery,
			"clientIP": c.ClientIP(),
			"comment":  c.Errors.ByType(gin.ErrorTypePrivate).String(),
			"servedAt": end.Format("2006/01/02 - 15:04:05"),
			"latency":  fmt.Sprintf("%v", end.Sub(start)),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("Web request")
			return
		}
		entry.Info("Web request")
	}
}
