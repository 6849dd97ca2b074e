package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"
	"golang.org/x/time/rate"
)

// App bundles the oracle client, the per-browser session store and the
// runtime configuration.
type App struct {
	Oracle        Oracle
	OracleBaseURL string

	Sessions     map[string]*PlayerSession
	SessionMutex sync.RWMutex

	LimiterMap   map[string]*rate.Limiter
	LimiterMutex sync.Mutex

	IsProduction bool
	StartTime    time.Time

	SessionDir     string
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int
}

func newApp() *App {
	oracleBaseURL := getEnvString("ORACLE_BASE_URL", "http://localhost:3000")
	oracleTimeout := getEnvDuration("ORACLE_TIMEOUT", 10*time.Second)
	oracleRPS := getEnvInt("ORACLE_RPS", 10)

	return &App{
		Oracle:         NewGeneOracle(oracleBaseURL, oracleTimeout, oracleRPS),
		OracleBaseURL:  oracleBaseURL,
		Sessions:       make(map[string]*PlayerSession),
		LimiterMap:     make(map[string]*rate.Limiter),
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		StartTime:      time.Now(),
		SessionDir:     getEnvString("SESSION_DIR", "data/sessions"),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 24*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 24*time.Hour),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
	}
}

func main() {
	_ = godotenv.Load()

	app := newApp()
	logInfo("Starting Genedle in %s mode (oracle: %s)",
		map[bool]string{true: "production", false: "development"}[app.IsProduction],
		app.OracleBaseURL)

	if err := app.cleanupOldSessions(app.SessionTimeout); err != nil {
		logWarn("Session cleanup failed: %v", err)
	}

	router := app.setupRouter()
	startServer(router)
}

// setupRouter installs middleware, templates and routes.
func (app *App) setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))
	router.Use(requestIDMiddleware())

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		app.applyCacheHeaders(c)
	})

	if app.IsProduction && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		router.LoadHTMLGlob("dist/templates/*.html")
		router.Static("/static", "./dist/static")
	} else {
		logInfo("Serving development assets from source directories")
		router.LoadHTMLGlob("templates/*.html")
		router.Static("/static", "./static")
	}

	app.registerRoutes(router)
	return router
}

// registerRoutes wires the game endpoints. Mutating endpoints carry the
// per-client rate limit.
func (app *App) registerRoutes(router *gin.Engine) {
	router.GET(RouteHome, app.homeHandler)
	router.GET(RouteGenedleState, app.genedleStateHandler)
	router.POST(RouteGenedleKey, app.rateLimitMiddleware(), app.genedleKeyHandler)
	router.POST(RouteGenedleDelete, app.rateLimitMiddleware(), app.genedleDeleteHandler)
	router.POST(RouteGenedleGuess, app.rateLimitMiddleware(), app.genedleGuessHandler)
	router.GET(RouteGenedleNew, app.genedleNewGameHandler)
	router.POST(RouteGenedleNew, app.rateLimitMiddleware(), app.genedleNewGameHandler)

	router.GET(RouteSpelling, app.spellingHandler)
	router.GET(RouteSpellingState, app.spellingStateHandler)
	router.POST(RouteSpellingLetter, app.rateLimitMiddleware(), app.spellingLetterHandler)
	router.POST(RouteSpellingDelete, app.rateLimitMiddleware(), app.spellingDeleteHandler)
	router.POST(RouteSpellingGuess, app.rateLimitMiddleware(), app.spellingGuessHandler)
	router.GET(RouteSpellingNew, app.spellingNewGameHandler)
	router.POST(RouteSpellingNew, app.rateLimitMiddleware(), app.spellingNewGameHandler)

	router.GET("/healthz", app.healthzHandler)
}

// applyCacheHeaders keeps game responses uncached; static assets get a
// public max-age in production.
func (app *App) applyCacheHeaders(c *gin.Context) {
	if app.IsProduction && strings.HasPrefix(c.Request.URL.Path, "/static/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}

func startServer(router *gin.Engine) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
