// Package http serves the cardbook web UI: server-rendered pages for cards,
// transactions and the monthly dashboard.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cardbook/internal/cache"
	"cardbook/internal/ledger"
	"cardbook/internal/middleware/ratelimit"
	"cardbook/internal/middleware/security"
	"cardbook/internal/middleware/trace"
	appweb "cardbook/web"
)

// Ledger is the full set of ports the handlers need. *ledger.Service
// satisfies it.
type Ledger interface {
	ledger.CardCreator
	ledger.CardLister
	ledger.CardDeleter
	ledger.TransactionRecorder
	ledger.TransactionLister
	ledger.StatsReader
}

// Options tunes the server; zero values fall back to defaults.
type Options struct {
	StatsCacheTTL      time.Duration
	RateLimitPerMinute int
}

type Server struct {
	http.Server

	templates *template.Template
	ledger    Ledger

	statsCache   *cache.LRUCache[[]MonthStat]
	cacheManager *cache.Manager
	rateLimiter  *ratelimit.Limiter
	traceMW      *trace.Middleware

	startedAt    time.Time
	shutdownOnce sync.Once
}

func NewServer(addr string, ldg Ledger, opts Options) *Server {
	if opts.StatsCacheTTL <= 0 {
		opts.StatsCacheTTL = 5 * time.Minute
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = ratelimit.DefaultConfig().RequestsPerMinute
	}

	mux := http.NewServeMux()

	detector := security.NewDetector()

	s := &Server{
		ledger:       ldg,
		statsCache:   cache.NewLRUCache[[]MonthStat](16, opts.StatsCacheTTL),
		cacheManager: cache.NewManager(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		traceMW:   trace.NewMiddleware(detector.ExtractClientIP),
		startedAt: time.Now(),
	}

	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/cards/new", s.handleNewCard)
	mux.HandleFunc("/cards/delete", s.handleDeleteCard)
	mux.HandleFunc("/transactions", s.handleTransactions)
	mux.HandleFunc("/transactions/new", s.handleNewTransaction)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limited := s.rateLimiter.Middleware(detector.ExtractClientIP, nil)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.traceMW.Middleware(detector.Middleware(headers.Middleware(limited(mux)))),
	}

	return s
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// invalidateStats drops the cached dashboard aggregate after any write.
func (s *Server) invalidateStats() {
	s.statsCache.Delete(statsCacheKey)
}

// render executes a template, answering 500 when rendering fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template render error", "template", name, "error", err)
	}
}
