package preview

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/photofolio/internal/config"
	sitetest "git.home.luguber.info/inful/photofolio/internal/testing"
)

func newPreviewConfig(t *testing.T) *config.Config {
	t.Helper()
	f := sitetest.NewSiteFixture(t, sitetest.NewConfigBuilder().Build())
	f.WriteFile("public/favicon.svg", "<svg/>")
	f.AddWork(sitetest.WorkSpec{Slug: "foo", Year: 2021})
	return f.Config()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestBuildStatus(t *testing.T) {
	var bs buildStatus
	hasErr, err, good := bs.getStatus()
	assert.False(t, hasErr)
	require.NoError(t, err)
	assert.False(t, good)

	bs.setSuccess()
	bs.setError(errors.New("boom"))
	hasErr, err, good = bs.getStatus()
	assert.True(t, hasErr)
	require.EqualError(t, err, "boom")
	assert.True(t, good, "an earlier good build is remembered")

	bs.setSuccess()
	hasErr, _, _ = bs.getStatus()
	assert.False(t, hasErr)
}

func TestServer_ServesSiteWithLiveReload(t *testing.T) {
	cfg := newPreviewConfig(t)
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))
	h := s.Handler()

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="zh">`)
	assert.Contains(t, body, scriptTag+"</body>")

	rec = get(t, h, "/en/works/foo.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), scriptTag)

	rec = get(t, h, "/assets/main.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body { margin: 0; }\n", rec.Body.String())

	rec = get(t, h, LiveReloadScriptPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "javascript")
	assert.Contains(t, rec.Body.String(), LiveReloadPath)

	rec = get(t, h, "/en/missing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotContains(t, rec.Body.String(), scriptTag)
}

func TestServer_FailedBuildShowsErrorUntilFixed(t *testing.T) {
	cfg := newPreviewConfig(t)
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	bundle := filepath.Join(cfg.Paths.Locales, "en.json")
	saved, err := os.ReadFile(bundle)
	require.NoError(t, err)
	require.NoError(t, os.Remove(bundle))

	require.Error(t, s.Rebuild(context.Background()))
	h := s.Handler()

	rec := get(t, h, "/")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Build failed")
	assert.Contains(t, rec.Body.String(), scriptTag, "error page keeps listening for rebuilds")

	rec = get(t, h, "/assets/main.css")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "locale", payload["code"])

	require.NoError(t, os.WriteFile(bundle, saved, 0o600))
	require.NoError(t, s.Rebuild(context.Background()))
	assert.Equal(t, http.StatusOK, get(t, h, "/").Code)
}

func TestServer_Metrics(t *testing.T) {
	cfg := newPreviewConfig(t)
	cfg.Preview.Metrics = true
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), MetricsPath)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `photofolio_build_outcomes_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), `photofolio_pages_written_total{locale="en"}`)
}

func TestServer_MetricsDisabled(t *testing.T) {
	cfg := newPreviewConfig(t)
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	rec := get(t, s.Handler(), MetricsPath)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRebuild_CanceledKeepsStatus(t *testing.T) {
	cfg := newPreviewConfig(t)
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, s.Rebuild(ctx))

	hasErr, _, good := s.status.getStatus()
	assert.False(t, hasErr)
	assert.True(t, good)
}

func TestWithLiveReload_PassesThroughNonHTML(t *testing.T) {
	h := withLiveReload(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	rec := get(t, h, "/data.html")
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestWithLiveReload_LargeBodyStreamsWithoutScript(t *testing.T) {
	big := strings.Repeat("x", maxInjectSize) + "</body>"
	h := withLiveReload(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, big[:1024])
		_, _ = io.WriteString(w, big[1024:])
	}))
	rec := get(t, h, "/")
	assert.Equal(t, big, rec.Body.String())
}

func TestInjectScript(t *testing.T) {
	assert.Equal(t, "<body><p>x</p>"+scriptTag+"</body></html>", string(injectScript([]byte("<body><p>x</p></body></html>"))))
	assert.Equal(t, "<p>x</p>"+scriptTag, string(injectScript([]byte("<p>x</p>"))))
}

func TestIsHTMLRequest(t *testing.T) {
	assert.True(t, isHTMLRequest("/"))
	assert.True(t, isHTMLRequest("/en/"))
	assert.True(t, isHTMLRequest("/works/foo.html"))
	assert.False(t, isHTMLRequest("/assets/main.css"))
	assert.False(t, isHTMLRequest("/favicon.svg"))
}

func TestRebuildWorker_AppliesChanges(t *testing.T) {
	cfg := newPreviewConfig(t)
	s := New(cfg)
	require.NoError(t, s.Rebuild(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rebuildReq := make(chan struct{}, 1)
	s.startRebuildWorker(ctx, rebuildReq)

	require.NoError(t, os.Remove(cfg.Paths.Stylesheet))
	rebuildReq <- struct{}{}
	require.Eventually(t, func() bool {
		hasErr, _, _ := s.status.getStatus()
		return hasErr
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(cfg.Paths.Stylesheet, []byte("body{}"), 0o600))
	rebuildReq <- struct{}{}
	require.Eventually(t, func() bool {
		hasErr, _, _ := s.status.getStatus()
		return !hasErr
	}, 5*time.Second, 20*time.Millisecond)
}
