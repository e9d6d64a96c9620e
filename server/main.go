//go:build !js
// +build !js

// Command server is the development server for the portfolio bundle. It
// serves the page, the compiled GopherJS bundle and a live-reload socket
// that fires whenever the bundle is rebuilt.
package main

import (
	"bytes"
	_ "embed"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/codelinechef/portfolio-fx/common"
)

//go:embed index.html
var indexHTML []byte

// Settings is the server configuration, read from the environment.
type Settings struct {
	Port      string
	StaticDir string
	Bundle    string
	// Poll is how often the bundle's modification time is checked.
	Poll time.Duration
}

// LoadSettings reads PORT, STATIC_DIR and BUNDLE, loading a .env file first
// when one exists.
func LoadSettings(files ...string) Settings {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log := common.Component("server")
		log.Warn().Err(err).Msg("ignoring .env")
	}
	return Settings{
		Port:      envOr("PORT", "8080"),
		StaticDir: envOr("STATIC_DIR", "."),
		Bundle:    envOr("BUNDLE", "portfolio-fx.js"),
		Poll:      500 * time.Millisecond,
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// BundlePath is where the compiled bundle is expected on disk.
func (s Settings) BundlePath() string {
	return filepath.Join(s.StaticDir, s.Bundle)
}

// newRouter builds the routes. hub receives live-reload connections.
func newRouter(s Settings, hub *Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	page := bytes.ReplaceAll(indexHTML, []byte("{{BUNDLE}}"), []byte(s.Bundle))
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	r.GET("/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
	r.Static("/static", s.StaticDir)
	r.GET("/livereload", func(c *gin.Context) {
		hub.ServeHTTP(c.Writer, c.Request)
	})
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"clients": hub.Len(),
			"bundle":  s.Bundle,
		})
	})
	return r
}

func main() {
	log := common.Component("server")
	s := LoadSettings()
	gin.SetMode(gin.ReleaseMode)

	hub := NewHub()
	watcher := NewWatcher(s.BundlePath(), s.Poll, func() {
		log.Info().Str("bundle", s.Bundle).Msg("bundle changed, reloading clients")
		hub.Broadcast(ReloadMessage)
	})
	go watcher.Run()
	defer watcher.Stop()

	addr := ":" + s.Port
	log.Info().
		Str("addr", "http://localhost"+addr).
		Str("static", s.StaticDir).
		Str("bundle", s.Bundle).
		Msg("portfolio dev server starting")
	if err := newRouter(s, hub).Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
