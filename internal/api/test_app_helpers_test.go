package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/session"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testApp struct {
	app      *fiber.App
	handler  *Handler
	database *gorm.DB
	base     config.BasePath
	sessions *session.MemoryStore
}

type testAppOptions struct {
	basePath     string
	cookieSecure bool

	// mutableBuffers runs fiber without Immutable so request strings alias
	// fasthttp buffers that are reused by later requests.
	mutableBuffers bool
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithOptions(t, testAppOptions{})
}

func newTestAppWithOptions(t *testing.T, options testAppOptions) *testApp {
	t.Helper()

	_, testFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("resolve current test file path")
	}

	apiDir := filepath.Dir(testFile)
	internalDir := filepath.Dir(apiDir)
	moduleDir := filepath.Dir(internalDir)
	databasePath := filepath.Join(t.TempDir(), "wellnest-api-test.db")

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(database)
	})

	base := config.NormalizeBasePath(options.basePath)
	sessions := session.NewMemoryStore(time.Hour)
	handler, err := NewHandler(database, sessions, Options{
		BasePath:     base,
		SecretKey:    testSecretKey,
		TemplatesDir: filepath.Join(internalDir, "templates"),
		StaticDir:    filepath.Join(moduleDir, "web", "static"),
		Location:     time.UTC,
		CookieSecure: options.cookieSecure,
		SessionTTL:   time.Hour,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler, Immutable: !options.mutableBuffers})
	app.Use(handler.LoadSession)
	RegisterRoutes(app, handler)

	return &testApp{app: app, handler: handler, database: database, base: base, sessions: sessions}
}

func (ta *testApp) do(t *testing.T, request *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	for _, cookie := range cookies {
		if cookie != nil {
			request.AddCookie(cookie)
		}
	}
	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})
	return response
}

func (ta *testApp) get(t *testing.T, route string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	return ta.do(t, httptest.NewRequest(http.MethodGet, ta.base.Join(route), nil), cookies...)
}

func (ta *testApp) postForm(t *testing.T, route string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, ta.base.Join(route), strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return ta.do(t, request, cookies...)
}

// register creates an account through the HTTP flow and returns the session
// cookie it was issued.
func (ta *testApp) register(t *testing.T, username string, password string) *http.Cookie {
	t.Helper()

	response := ta.postForm(t, "/register", url.Values{
		"username":     {username},
		"display_name": {"Display " + username},
		"password":     {password},
	})
	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected register status 303, got %d: %s", response.StatusCode, readBody(t, response))
	}
	cookie := responseCookie(response.Cookies(), sessionCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie after registration")
	}
	return cookie
}

func (ta *testApp) countRows(t *testing.T, table string) int64 {
	t.Helper()

	var count int64
	if err := ta.database.Table(table).Count(&count).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return count
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return string(body)
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func assertRedirect(t *testing.T, response *http.Response, location string) {
	t.Helper()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", response.StatusCode)
	}
	if got := response.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
