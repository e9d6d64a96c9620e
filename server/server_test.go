//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*httptest.Server, *Hub, Settings) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fx.js"), []byte("// bundle"), 0o644))
	s := Settings{Port: "0", StaticDir: dir, Bundle: "fx.js", Poll: time.Millisecond}
	hub := NewHub()
	srv := httptest.NewServer(newRouter(s, hub))
	t.Cleanup(srv.Close)
	return srv, hub, s
}

func TestRouter_Page(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(raw)
	assert.Contains(t, html, `/static/fx.js`)
	assert.NotContains(t, html, "{{BUNDLE}}")
	assert.Contains(t, html, `id="fx-stage"`)
	assert.Contains(t, html, `id="rz-status"`)
	assert.Contains(t, html, `id="fyi-status"`)
}

func TestRouter_StaticAndHealth(t *testing.T) {
	srv, _, _ := testServer(t)

	resp, err := http.Get(srv.URL + "/static/fx.js")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "fx.js", body["bundle"])
}

func TestHub_BroadcastReachesPage(t *testing.T) {
	srv, hub, _ := testServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/livereload"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)
	hub.Broadcast(ReloadMessage)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, ReloadMessage, string(msg))

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWatcher_Check(t *testing.T) {
	_, _, s := testServer(t)
	path := s.BundlePath()
	fired := 0
	w := NewWatcher(path, time.Hour, func() { fired++ })

	assert.False(t, w.Check(), "unchanged bundle")

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.True(t, w.Check())
	assert.False(t, w.Check(), "one event per change")
	assert.Equal(t, 1, fired)

	require.NoError(t, os.Remove(path))
	assert.False(t, w.Check(), "removed bundle is not a change")
}

func TestWatcher_MissingFileAppears(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.js")
	fired := 0
	w := NewWatcher(path, time.Hour, func() { fired++ })
	assert.False(t, w.Check())

	require.NoError(t, os.WriteFile(path, nil, 0o644))
	assert.True(t, w.Check())
	assert.Equal(t, 1, fired)
}

func TestWatcher_StopEndsRun(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "x.js"), time.Millisecond, func() {})
	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()
	w.Stop()
	w.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STATIC_DIR", "/srv/www")
	t.Setenv("BUNDLE", "")
	s := LoadSettings(filepath.Join(t.TempDir(), "missing.env"))
	assert.Equal(t, "9999", s.Port)
	assert.Equal(t, "/srv/www", s.StaticDir)
	assert.Equal(t, "portfolio-fx.js", s.Bundle)
	assert.Equal(t, filepath.Join("/srv/www", "portfolio-fx.js"), s.BundlePath())
}
