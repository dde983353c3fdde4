// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/tacar/listhub/internal/app/access"
	authgooglefeature "github.com/tacar/listhub/internal/app/features/authgoogle"
	categoriesfeature "github.com/tacar/listhub/internal/app/features/categories"
	healthfeature "github.com/tacar/listhub/internal/app/features/health"
	imagesfeature "github.com/tacar/listhub/internal/app/features/images"
	invitesfeature "github.com/tacar/listhub/internal/app/features/invites"
	itemsfeature "github.com/tacar/listhub/internal/app/features/items"
	loginfeature "github.com/tacar/listhub/internal/app/features/login"
	logoutfeature "github.com/tacar/listhub/internal/app/features/logout"
	promptsfeature "github.com/tacar/listhub/internal/app/features/prompts"
	userinfofeature "github.com/tacar/listhub/internal/app/features/userinfo"
	"github.com/tacar/listhub/internal/app/policy/adminpolicy"
	categorystore "github.com/tacar/listhub/internal/app/store/categories"
	imagestore "github.com/tacar/listhub/internal/app/store/images"
	itemstore "github.com/tacar/listhub/internal/app/store/items"
	"github.com/tacar/listhub/internal/app/store/oauthstate"
	promptstore "github.com/tacar/listhub/internal/app/store/prompts"
	reportstore "github.com/tacar/listhub/internal/app/store/reports"
	userstore "github.com/tacar/listhub/internal/app/store/users"
	"github.com/tacar/listhub/internal/app/system/auth"
	"github.com/tacar/listhub/internal/app/system/ratelimit"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE
// app. WAFFLE calls this after configuration, DB connections, schema
// setup, and the Startup hook have completed.
//
// The surface splits into three areas:
//   - /health for load balancers
//   - /auth/* for sign-in and sign-out
//   - /api/{app}/* for everything behind a session, where {app} is one
//     of the app namespaces (kaumono, prompt, ocrcsv)
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Stores.
	categories := categorystore.New(deps.MongoDatabase)
	users := userstore.New(deps.MongoDatabase)
	items := itemstore.New(deps.MongoDatabase)
	images := imagestore.New(deps.MongoDatabase)
	prompts := promptstore.New(deps.MongoDatabase)
	reports := reportstore.New(deps.MongoDatabase)
	states := oauthstate.New(deps.MongoDatabase)

	// The access service cascades category deletion through every
	// resource store before removing the category itself.
	accessSvc := access.New(categories, users,
		[]access.ResourceDeleter{items, images, prompts}, appCfg.InviteTTL)

	admins := adminpolicy.New(appCfg.AdminEmails)
	inviteLimiter := ratelimit.NewInviteLimiter()

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if present.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators.
	r.Mount("/health", healthfeature.Routes(healthfeature.NewHandler(deps.MongoClient, logger)))

	// Authentication.
	r.Route("/auth", func(r chi.Router) {
		google := authgooglefeature.NewHandler(sessionMgr, users, states,
			appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
		r.Mount("/", authgooglefeature.Routes(google))

		login := loginfeature.NewHandler(users, sessionMgr, appCfg.TrustLogin, logger)
		r.Mount("/login", loginfeature.Routes(login))

		logout := logoutfeature.NewHandler(sessionMgr, logger)
		r.Mount("/logout", logoutfeature.Routes(logout))
	})

	// API, session-gated. Handlers additionally verify that the session
	// was issued for the {app} in the URL.
	catHandler := categoriesfeature.NewHandler(accessSvc, appCfg.BaseURL, logger)
	invHandler := invitesfeature.NewHandler(accessSvc, inviteLimiter, logger)
	itemHandler := itemsfeature.NewHandler(accessSvc, items, logger)
	imgHandler := imagesfeature.NewHandler(accessSvc, images, logger)
	promptHandler := promptsfeature.NewHandler(accessSvc, prompts, reports, admins, logger)
	userHandler := userinfofeature.NewHandler(users, admins, logger)

	r.Route("/api/{app}", func(r chi.Router) {
		r.Use(auth.RequireSignedIn)

		r.Mount("/", userinfofeature.Routes(userHandler))
		r.Mount("/categories", categoriesfeature.Routes(catHandler, categoriesfeature.Resources{
			Items:   itemsfeature.CategoryRoutes(itemHandler),
			Images:  imagesfeature.CategoryRoutes(imgHandler),
			Prompts: promptsfeature.CategoryRoutes(promptHandler),
		}))
		r.Mount("/invites", invitesfeature.Routes(invHandler))

		r.Mount("/items", itemsfeature.Routes(itemHandler))
		r.Mount("/images", imagesfeature.Routes(imgHandler))
		r.Mount("/prompts", promptsfeature.Routes(promptHandler))

		r.Route("/admin", func(r chi.Router) {
			r.Mount("/prompts", promptsfeature.AdminRoutes(promptHandler))
			r.Mount("/users", userinfofeature.AdminRoutes(userHandler))
		})
	})

	return r, nil
}
