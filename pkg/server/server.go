package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/msubham193/buckinn-console/pkg/auth"
	"github.com/msubham193/buckinn-console/pkg/authors"
	"github.com/msubham193/buckinn-console/pkg/binder"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/categories"
	"github.com/msubham193/buckinn-console/pkg/config"
	"github.com/msubham193/buckinn-console/pkg/dashboard"
	"github.com/msubham193/buckinn-console/pkg/ebooks"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/session"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
)

// New builds the console HTTP server. The entity stores are created here and
// shared between the page groups so the dashboard reads the same mirrors the
// CRUD pages mutate.
func New(cfg *config.Config, client *catalog.Client, sessions *session.Manager) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	authorStore := store.New[models.Author]()
	categoryStore := store.New[models.Category]()
	ebookStore := store.New[models.Ebook]()

	sessMW := session.NewMiddleware(sessions)

	authGroup := e.Group("/auth")
	auth.RegisterRoutesWithGroup(authGroup, sessions)
	auth.RegisterPageRoutes(e, sessions)

	e.GET("/", home, sessMW.RedirectUnauthenticated)

	dashboardGroup := e.Group("/dashboard")
	dashboardGroup.Use(sessMW.RequireSession)
	dashboard.RegisterRoutesWithGroup(dashboardGroup, client, ebookStore, authorStore, categoryStore)

	authorsGroup := e.Group("/authors")
	authorsGroup.Use(sessMW.RequireSession)
	authors.RegisterRoutesWithGroup(authorsGroup, client, authorStore)

	categoriesGroup := e.Group("/categories")
	categoriesGroup.Use(sessMW.RequireSession)
	categories.RegisterRoutesWithGroup(categoriesGroup, client, categoryStore)

	ebooksGroup := e.Group("/ebooks")
	ebooksGroup.Use(sessMW.RequireSession)
	ebooks.RegisterRoutesWithGroup(ebooksGroup, client, ebookStore, authorStore, categoryStore)

	echo.NotFoundHandler = notFoundHandler(sessions)
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// home forwards the root path to the dashboard; the guard middleware bounces
// unauthenticated visitors to the login page first.
func home(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboard")
}

// notFoundHandler sends unknown paths home: the dashboard when a session
// exists, the login page otherwise.
func notFoundHandler(sessions *session.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetPath("/:path")
		if sessions.Authenticated() {
			return c.Redirect(http.StatusFound, "/dashboard")
		}
		return c.Redirect(http.StatusFound, session.LoginPath)
	}
}
