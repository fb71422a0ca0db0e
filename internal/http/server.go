// Package http exposes the JSON API: auth, transactions, goals, reports,
// currency conversion, AI suggestions and per-user settings.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"finanger/internal/cache"
	"finanger/internal/log"
	"finanger/internal/middleware/ratelimit"
	"finanger/internal/middleware/security"
	"finanger/internal/middleware/trace"
	"finanger/internal/services"
	"finanger/internal/settings"
)

const sessionTTL = 24 * time.Hour

// Server wires the services behind the JSON routes.
type Server struct {
	http.Server

	users       *services.UserService
	txs         *services.TransactionService
	goals       *services.GoalService
	reports     *services.ReportService
	suggestions *services.SuggestionService
	settings    *settings.Store

	// sessions maps bearer tokens to user ids.
	sessions    *cache.LRUCache[string]
	rateLimiter *ratelimit.Limiter
	logger      *log.Logger

	shutdownOnce sync.Once
}

// Deps bundles everything the server needs.
type Deps struct {
	Users       *services.UserService
	Txs         *services.TransactionService
	Goals       *services.GoalService
	Reports     *services.ReportService
	Suggestions *services.SuggestionService
	Settings    *settings.Store

	RateLimitPerMinute int
	Logger             *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		users:       deps.Users,
		txs:         deps.Txs,
		goals:       deps.Goals,
		reports:     deps.Reports,
		suggestions: deps.Suggestions,
		settings:    deps.Settings,
		sessions:    cache.NewLRUCache[string](10000, sessionTTL),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		logger:      deps.Logger.WithComponent(log.ComponentHTTP),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/security-question", s.handleSecurityQuestion)
	mux.HandleFunc("POST /api/auth/reset-password", s.handleResetPassword)
	mux.HandleFunc("POST /api/auth/logout", s.requireAuth(s.handleLogout))

	mux.HandleFunc("GET /api/transactions", s.requireAuth(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.requireAuth(s.handleAddTransaction))
	mux.HandleFunc("PUT /api/transactions", s.requireAuth(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions", s.requireAuth(s.handleDeleteTransaction))
	mux.HandleFunc("POST /api/transactions/import", s.requireAuth(s.handleImportCSV))

	mux.HandleFunc("GET /api/goals", s.requireAuth(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.requireAuth(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals/{id}", s.requireAuth(s.handleGetGoal))
	mux.HandleFunc("PUT /api/goals/{id}", s.requireAuth(s.handleUpdateGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.requireAuth(s.handleDeleteGoal))

	mux.HandleFunc("GET /api/reports/summary", s.requireAuth(s.handleReportSummary))
	mux.HandleFunc("POST /api/reports/export", s.requireAuth(s.handleRequestExport))

	mux.HandleFunc("GET /api/currencies", s.handleListCurrencies)
	mux.HandleFunc("GET /api/currencies/convert", s.handleConvert)

	mux.HandleFunc("POST /api/ai/suggest-category", s.requireAuth(s.handleSuggestCategory))
	mux.HandleFunc("POST /api/ai/chat", s.requireAuth(s.handleChat))

	mux.HandleFunc("GET /api/settings", s.requireAuth(s.handleGetSettings))
	mux.HandleFunc("PUT /api/settings", s.requireAuth(s.handlePutSettings))

	traceMW := trace.NewMiddleware(extractClientIP, deps.Logger)
	headersMW := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	limitMW := s.rateLimiter.Middleware(extractClientIP, nil)

	s.Server = http.Server{
		Addr:    addr,
		Handler: traceMW.Middleware(headersMW.Middleware(limitMW(mux))),
	}
	return s
}

// Shutdown stops the server and the rate limiter cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// extractClientIP honors proxy headers before falling back to RemoteAddr.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx >= 0 {
			ip = ip[:idx]
		}
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
