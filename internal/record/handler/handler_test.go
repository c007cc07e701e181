package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/entertext/internal/record"
	"github.com/gogotex/entertext/internal/record/service"
	"github.com/gogotex/entertext/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var testID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

func newEngine(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	RegisterRecordRoutes(g.Group("/api"), svc)
	return g
}

func post(g *gin.Engine, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api"+path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestRecordHandler_Lifecycle(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))

	w := post(g, GetContentPath, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, record.EmptySentinel, decode(t, w)["content"])

	w = post(g, SaveContentPath, "application/x-www-form-urlencoded", "content=hello")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "hello", decode(t, w)["content"])

	w = post(g, SaveContentPath, "application/json", `{"content":"world"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = post(g, GetContentPath, "", "")
	require.Equal(t, "world", decode(t, w)["content"])

	w = post(g, DeleteContentPath, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{}`, w.Body.String())

	w = post(g, GetContentPath, "", "")
	require.Equal(t, record.EmptySentinel, decode(t, w)["content"])

	// deleting again is fine
	w = post(g, DeleteContentPath, "", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRecordHandler_SaveRejectsBlank(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))

	w := post(g, SaveContentPath, "application/x-www-form-urlencoded", "content=%20%20%20")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Empty", decode(t, w)["error"])

	w = post(g, SaveContentPath, "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = post(g, GetContentPath, "", "")
	require.Equal(t, record.EmptySentinel, decode(t, w)["content"])
}

func TestRecordHandler_MalformedJSON(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))
	w := post(g, SaveContentPath, "application/json", `{"content":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NotEmpty(t, decode(t, w)["error"])
}

type brokenService struct{ err error }

func (b brokenService) GetContent(context.Context) (string, error) { return "", b.err }
func (b brokenService) SaveContent(context.Context, string) (string, error) {
	return "", b.err
}
func (b brokenService) DeleteContent(context.Context) error { return b.err }

func TestRecordHandler_StoreFailure(t *testing.T) {
	g := newEngine(brokenService{err: apperror.Internal("read error", errors.New("no hosts available"))})

	w := post(g, GetContentPath, "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "read error: no hosts available", decode(t, w)["error"])

	w = post(g, DeleteContentPath, "", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecordHandler_OnlyPOST(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api"+GetContentPath, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordHandler_HTMLFormRedirects(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))

	form := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api"+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Referer", "http://"+req.Host+"/")
		w := httptest.NewRecorder()
		g.ServeHTTP(w, req)
		return w
	}

	w := form(SaveContentPath, "content=from+a+form")
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	w = post(g, GetContentPath, "", "")
	require.Equal(t, "from a form", decode(t, w)["content"])

	w = form(SaveContentPath, "content=")
	require.Equal(t, http.StatusSeeOther, w.Code)
	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/", loc.Path)
	require.Equal(t, "Empty", loc.Query().Get("error"))

	w = form(DeleteContentPath, "")
	require.Equal(t, http.StatusSeeOther, w.Code)
	w = post(g, GetContentPath, "", "")
	require.Equal(t, record.EmptySentinel, decode(t, w)["content"])
}

func TestRedirectBackIgnoresForeignReferer(t *testing.T) {
	g := newEngine(service.NewMemoryService(testID))
	req := httptest.NewRequest(http.MethodPost, "/api"+DeleteContentPath, nil)
	req.Header.Set("Accept", "text/html")
	req.Header.Set("Referer", "https://evil.example/phish")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))
}
