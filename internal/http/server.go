package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/jeffrin-samuel/expense-tracker/internal/cache"
	"github.com/jeffrin-samuel/expense-tracker/internal/core"
	"github.com/jeffrin-samuel/expense-tracker/internal/log"
	appweb "github.com/jeffrin-samuel/expense-tracker/web"
)

// Ledger is the store surface the handlers need. *store.TransactionStore
// satisfies it; tests substitute fakes.
type Ledger interface {
	Transactions() []core.Transaction
	Currency() string
	DarkMode() bool
	Add(ctx context.Context, tx core.Transaction) error
	Delete(ctx context.Context, id string) error
	SetCurrency(ctx context.Context, code string) error
	SetDarkMode(ctx context.Context, dark bool) error
}

type Server struct {
	http.Server
	templates *template.Template
	ledger    Ledger
	log       *log.Logger

	// Memoized rendered list partials, keyed by filter params. All
	// entries derive from the collection, so any mutation purges.
	listCache *cache.LRU[string]

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// Options tune the ambient behavior of the server.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Logger    *log.Logger
}

func defaultOptions() Options {
	return Options{CacheSize: 100, CacheTTL: 5 * time.Minute}
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, ledger Ledger, opts *Options) *Server {
	o := defaultOptions()
	if opts != nil {
		o = *opts
	}
	logger := o.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:      ledger,
		log:         logger.WithComponent(log.ComponentHTTP),
		listCache:   cache.NewLRU[string](o.CacheSize, o.CacheTTL),
		rateLimiter: newRateLimiter(),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.log.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.log.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("/", s.withMiddleware(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/transactions", s.withMiddleware(s.handleCreateTransaction))
	mux.HandleFunc("/transactions/delete", s.withMiddleware(s.handleDeleteTransaction))
	mux.HandleFunc("/settings/currency", s.withMiddleware(s.handleSetCurrency))
	mux.HandleFunc("/settings/theme", s.withMiddleware(s.handleSetTheme))
	// UI partials
	mux.HandleFunc("/ui/transactions", s.withMiddleware(s.handleTransactionList))
	mux.HandleFunc("/ui/categories", s.withMiddleware(s.handleCategoryOptions))
	mux.HandleFunc("/ui/summary", s.withMiddleware(s.handleSummary))

	return s
}

// Shutdown stops the server and its background cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds security headers, rate limiting and request
// logging to a handler. A request-scoped logger carrying the request id
// and client ip is injected into the context; handlers pick it up with
// log.FromContext.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		reqLog := s.log.With(
			log.FieldRequestID, generateRequestID(),
			log.FieldClientIP, clientIP)
		ctx := log.WithContext(r.Context(), reqLog)
		r = r.WithContext(ctx)

		reqLog.InfoContext(ctx, "Request started",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)

		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			reqLog.WarnContext(ctx, "Rate limit exceeded", log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		reqLog.InfoContext(ctx, "Request completed",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
