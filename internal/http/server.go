package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"ledgerlite/internal/cache"
	"ledgerlite/internal/core"
	"ledgerlite/internal/log"
	"ledgerlite/internal/metrics"
	"ledgerlite/internal/services"
)

// Server exposes the ledger as a JSON API. Read endpoints are cached per
// user; any write bumps that user's cache epoch so stale entries are never
// served (they age out of the LRU on their own).
type Server struct {
	http.Server
	ledger        *services.LedgerService
	processor     *services.SessionProcessor
	defaultUserID string
	chartMonths   int
	rateLimiter   *rateLimiter

	summaryCache   *cache.LRUCache[core.MonthlySummary]
	chartCache     *cache.LRUCache[[]core.ChartDataPoint]
	breakdownCache *cache.LRUCache[core.CategoryBreakdown]
	savingsCache   *cache.LRUCache[core.SavingsSummary]
	cacheManager   *cache.Manager

	epochMu sync.Mutex
	epochs  map[string]uint64

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, ledger *services.LedgerService, processor *services.SessionProcessor, defaultUserID string, chartMonths int) *Server {
	mux := http.NewServeMux()
	logger := log.New(log.Config{Level: slog.LevelInfo, Component: log.ComponentHTTP})

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: log.Middleware(logger)(mux),
		},
		ledger:        ledger,
		processor:     processor,
		defaultUserID: defaultUserID,
		chartMonths:   chartMonths,
		rateLimiter:   newRateLimiter(),

		summaryCache:   cache.NewLRUCache[core.MonthlySummary](200, 5*time.Minute),
		chartCache:     cache.NewLRUCache[[]core.ChartDataPoint](100, 5*time.Minute),
		breakdownCache: cache.NewLRUCache[core.CategoryBreakdown](200, 5*time.Minute),
		savingsCache:   cache.NewLRUCache[core.SavingsSummary](100, 5*time.Minute),
		cacheManager:   cache.NewManager(),

		epochs: make(map[string]uint64),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.chartCache)
	s.cacheManager.Register(s.breakdownCache)
	s.cacheManager.Register(s.savingsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("GET /api/transactions", s.withMiddleware(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withMiddleware(s.handleAddTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withMiddleware(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/summary", s.withMiddleware(s.handleSummary))
	mux.HandleFunc("GET /api/chart", s.withMiddleware(s.handleChart))
	mux.HandleFunc("GET /api/breakdown", s.withMiddleware(s.handleBreakdown))

	mux.HandleFunc("GET /api/savings", s.withMiddleware(s.handleSavingsSummary))
	mux.HandleFunc("POST /api/savings", s.withMiddleware(s.handleAddManualSaving))

	mux.HandleFunc("GET /api/categories", s.withMiddleware(s.handleCategories))

	mux.HandleFunc("GET /api/fixed-costs", s.withMiddleware(s.handleListFixedCosts))
	mux.HandleFunc("POST /api/fixed-costs", s.withMiddleware(s.handleAddFixedCost))
	mux.HandleFunc("DELETE /api/fixed-costs/{id}", s.withMiddleware(s.handleDeleteFixedCost))

	mux.HandleFunc("POST /api/session/refresh", s.withMiddleware(s.handleSessionRefresh))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withMiddleware adds security headers, rate limiting, request logging and
// metrics to an API handler.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		// Scope the context logger to this request so downstream handlers
		// carry the request id automatically.
		requestID := generateRequestID()
		reqLogger := log.FromContext(r.Context()).With(log.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), log.LoggerContextKey, reqLogger)
		r = r.WithContext(ctx)

		structured := log.NewStructuredLogger(reqLogger)
		structured.LogHTTPStart(ctx, r, clientIP)

		// Rate limit mutating requests
		if (r.Method == http.MethodPost || r.Method == http.MethodDelete) && !s.rateLimiter.allow(clientIP) {
			reqLogger.WarnContext(ctx, "Rate limit exceeded",
				log.FieldClientIP, clientIP,
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		pattern := r.Pattern
		if pattern == "" {
			pattern = r.URL.Path
		}
		metrics.HTTPRequestsTotal.WithLabelValues(pattern, strconv.Itoa(rw.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(pattern).Observe(duration.Seconds())

		structured.LogHTTPEnd(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// userID resolves the acting user from the X-User-ID header.
func (s *Server) userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return s.defaultUserID
}

// epoch returns the user's current cache epoch.
func (s *Server) epoch(userID string) uint64 {
	s.epochMu.Lock()
	defer s.epochMu.Unlock()
	return s.epochs[userID]
}

// invalidateUser bumps the user's cache epoch. Entries under the old epoch
// become unreachable and age out via TTL and LRU eviction.
func (s *Server) invalidateUser(userID string) {
	s.epochMu.Lock()
	defer s.epochMu.Unlock()
	s.epochs[userID]++
}

func (s *Server) cacheKey(userID, kind string, parts ...string) string {
	key := userID + "/" + strconv.FormatUint(s.epoch(userID), 10) + "/" + kind
	for _, p := range parts {
		key += "/" + p
	}
	return key
}
