package config

import "strings"

// BasePath is the normalized URL prefix the application is mounted under.
// The zero value mounts everything at the server root.
type BasePath string

// NormalizeBasePath turns a raw BASE_PATH value into either "" or a path
// with exactly one leading slash and no trailing slash.
func NormalizeBasePath(raw string) BasePath {
	trimmed := strings.TrimSpace(raw)
	segments := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return ""
	}
	return BasePath("/" + strings.Join(segments, "/"))
}

// Join returns the external path for a route relative to the mount prefix.
// Every route, link, redirect and static mount is computed through Join so a
// generated link is always one the router registered.
func (base BasePath) Join(route string) string {
	route = strings.TrimSpace(route)
	query := ""
	if index := strings.IndexAny(route, "?#"); index >= 0 {
		query = route[index:]
		route = route[:index]
	}

	segments := strings.FieldsFunc(route, func(r rune) bool { return r == '/' })
	joined := string(base) + "/" + strings.Join(segments, "/")
	if len(segments) > 0 && strings.HasSuffix(route, "/") {
		joined += "/"
	}
	return joined + query
}

// CookiePath scopes cookies to the mount prefix.
func (base BasePath) CookiePath() string {
	if base == "" {
		return "/"
	}
	return string(base)
}

func (base BasePath) String() string {
	return string(base)
}
