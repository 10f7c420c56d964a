package server

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
	"github.com/shouni/gemini-logo-studio/pkg/generator"
	"github.com/shouni/gemini-logo-studio/pkg/viewstate"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "logo_session"

type Options struct {
	Generator generator.LogoGenerator
	// Model は結果画面に表示するモデル名です。
	Model       string
	CORSOrigins []string
	// Sessions が nil の場合は Generator から SessionStore を作成します。
	Sessions *SessionStore
}

// Server はセッションごとの Controller を HTML と JSON API で描画する gin サーバーです。
type Server struct {
	engine   *gin.Engine
	sessions *SessionStore
	model    string
}

func New(opts Options) (*Server, error) {
	if opts.Generator == nil && opts.Sessions == nil {
		return nil, errors.New("generator is required")
	}

	sessions := opts.Sessions
	if sessions == nil {
		gen := opts.Generator
		sessions = NewSessionStore(func() (*viewstate.Controller, error) {
			return viewstate.NewController(gen, viewstate.WithLogger(log.Logger))
		})
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	if len(opts.CORSOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		engine:   engine,
		sessions: sessions,
		model:    opts.Model,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.engine.GET("/", s.handleIndex)
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/logo.png", s.handleDownload)

	api := s.engine.Group("/api")
	api.GET("/state", s.handleState)
	api.POST("/submit", s.handleSubmit)
	api.POST("/reset", s.handleReset)
	api.POST("/motion", s.handleMotion)
}

// Handler は gzip 圧縮込みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.engine)
}

// Sessions はライフサイクル管理用にセッションストアを返します。
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Debug()
		if c.Request.Method != http.MethodGet || status >= http.StatusBadRequest {
			ev = log.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("http")
	}
}
