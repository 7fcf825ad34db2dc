package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestRoutesDispatchUnderEveryBasePath(t *testing.T) {
	t.Parallel()

	for _, basePath := range []string{"", "/usr/417", "app/v2/"} {
		ta := newTestAppWithOptions(t, testAppOptions{basePath: basePath})

		for _, route := range []string{"/", "/about", "/login", "/register", "/recipes", "/healthz"} {
			response := ta.get(t, route)
			if response.StatusCode != http.StatusOK {
				t.Fatalf("base %q: expected %s to return 200, got %d", basePath, ta.base.Join(route), response.StatusCode)
			}
		}

		static := ta.get(t, "/static/styles.css")
		if static.StatusCode != http.StatusOK {
			t.Fatalf("base %q: expected static asset under prefix, got %d", basePath, static.StatusCode)
		}

		gated := ta.get(t, "/daily-check-in")
		assertRedirect(t, gated, ta.base.Join("/login"))
	}
}

func TestPrefixedAppDoesNotServeUnprefixedRoutes(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithOptions(t, testAppOptions{basePath: "/usr/417"})

	request, err := http.NewRequest(http.MethodGet, "/about", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	response := ta.do(t, request)
	if response.StatusCode != http.StatusNotFound {
		t.Fatalf("expected unprefixed route to be 404, got %d", response.StatusCode)
	}
	if body := readBody(t, response); !strings.Contains(body, "Not found") {
		t.Fatalf("expected not found page, got %q", body)
	}
}

func TestRenderedLinksUseBasePath(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithOptions(t, testAppOptions{basePath: "/usr/417"})
	body := readBody(t, ta.get(t, "/"))

	for _, link := range []string{
		`href="/usr/417/login"`,
		`href="/usr/417/register"`,
		`href="/usr/417/recipes"`,
		`href="/usr/417/static/styles.css"`,
		`href="/usr/417/"`,
	} {
		if !strings.Contains(body, link) {
			t.Fatalf("expected rendered page to contain %s", link)
		}
	}
	if strings.Contains(body, `href="/login"`) || strings.Contains(body, `href="//`) {
		t.Fatal("expected no unprefixed or protocol-relative links")
	}
}

func TestCookiesAreScopedToBasePath(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithOptions(t, testAppOptions{basePath: "/usr/417"})
	cookie := ta.register(t, "scoped", "password123")

	if cookie.Path != "/usr/417" {
		t.Fatalf("expected session cookie path /usr/417, got %q", cookie.Path)
	}
	if !cookie.HttpOnly {
		t.Fatal("expected session cookie to be HttpOnly")
	}
	if cookie.Secure {
		t.Fatal("expected Secure=false by default")
	}
}

func TestSecureCookiesWhenConfigured(t *testing.T) {
	t.Parallel()

	ta := newTestAppWithOptions(t, testAppOptions{cookieSecure: true})
	cookie := ta.register(t, "secure", "password123")
	if !cookie.Secure {
		t.Fatal("expected session cookie Secure=true when configured")
	}
}

func TestHealthAndNotFound(t *testing.T) {
	t.Parallel()

	ta := newTestApp(t)

	health := ta.get(t, "/healthz")
	if body := readBody(t, health); !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("unexpected health body %q", body)
	}

	missing := ta.get(t, "/does-not-exist")
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
	if body := readBody(t, missing); !strings.Contains(body, "Not found") {
		t.Fatalf("expected not found page, got %q", body)
	}
}
