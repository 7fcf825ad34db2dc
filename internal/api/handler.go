package api

import (
	"errors"
	"html/template"
	"time"

	"github.com/terraincognita07/wellnest/internal/config"
	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/services"
	"github.com/terraincognita07/wellnest/internal/session"
	"gorm.io/gorm"
)

const (
	sessionCookieName = "wellnest_session"
	flashCookieName   = "wellnest_flash"
	CSRFCookieName    = "wellnest_csrf"
	CSRFFormField     = "csrf_token"
	CSRFContextKey    = "csrf"

	contextIdentityKey  = "session_identity"
	contextSessionIDKey = "session_id"
)

type Options struct {
	BasePath     config.BasePath
	SecretKey    string
	TemplatesDir string
	StaticDir    string
	Location     *time.Location
	CookieSecure bool
	SessionTTL   time.Duration
}

type Handler struct {
	basePath     config.BasePath
	staticDir    string
	cookieSecure bool
	location     *time.Location

	authService    *services.AuthService
	checkInService *services.CheckInService
	recipeService  *services.RecipeService

	sessions     session.Store
	tokens       *session.TokenSigner
	cookies      *secureCookieCodec
	loginLimiter *attemptLimiter
	templates    map[string]*template.Template
	now          func() time.Time
}

var pageTemplates = []string{
	"home",
	"about",
	"register",
	"login",
	"check_in",
	"recipes",
	"not_found",
	"error",
}

func NewHandler(database *gorm.DB, sessions session.Store, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if sessions == nil {
		return nil, errors.New("session store is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}

	cookies, err := newSecureCookieCodec([]byte(options.SecretKey))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		basePath:     options.BasePath,
		staticDir:    options.StaticDir,
		cookieSecure: options.CookieSecure,
		location:     options.Location,
		sessions:     sessions,
		tokens:       session.NewTokenSigner(options.SecretKey, options.SessionTTL),
		cookies:      cookies,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}
	handler.withDependencies(database)

	templates, err := parsePageTemplates(options.TemplatesDir, handler.templateFuncMap(), pageTemplates)
	if err != nil {
		return nil, err
	}
	handler.templates = templates
	return handler, nil
}

func (handler *Handler) withDependencies(database *gorm.DB) {
	repositories := db.NewRepositories(database)
	handler.authService = services.NewAuthService(repositories.Users)
	handler.checkInService = services.NewCheckInService(repositories.DailyLogs, handler.location)
	handler.recipeService = services.NewRecipeService(repositories.Recipes)
}

// path joins route onto the mount prefix.
func (handler *Handler) path(route string) string {
	return handler.basePath.Join(route)
}
