// File: internal/middleware/middleware.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/zml18x/SMS-Backend-sub000/internal/auth"
	"github.com/zml18x/SMS-Backend-sub000/internal/config"
)

// AuthCookieName is the cookie that carries the access token for browser clients.
const AuthCookieName = "jwt_token"

type Middleware struct {
	app    *config.Application
	tokens *auth.TokenManager
}

func New(app *config.Application, tokens *auth.TokenManager) *Middleware {
	return &Middleware{app: app, tokens: tokens}
}

// --- RESPONSE WRITER for logging ---
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	size, err := rw.ResponseWriter.Write(b)
	rw.size += size
	return size, err
}

// --- REQUEST ID MIDDLEWARE ---
func (mw *Middleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" || len(requestID) > 64 {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), config.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// --- LOGGING MIDDLEWARE ---
func (mw *Middleware) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := GetRequestID(r.Context())

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		logEvent := mw.app.Logger.Info()
		if wrapped.statusCode >= 500 {
			logEvent = mw.app.Logger.Error()
		} else if wrapped.statusCode >= 400 {
			logEvent = mw.app.Logger.Warn()
		}

		logEvent.
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", wrapped.statusCode).
			Dur("duration", duration).
			Str("ip", getClientIP(r)).
			Str("user_agent", r.UserAgent()).
			Int64("content_length", r.ContentLength).
			Int("response_size", wrapped.size).
			Msg("HTTP request processed")
	})
}

// --- RECOVERY MIDDLEWARE ---
func (mw *Middleware) Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())

				mw.app.Logger.Error().
					Str("request_id", requestID).
					Str("panic", fmt.Sprintf("%v", err)).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Panic recovered")

				writeJSONError(w, http.StatusInternalServerError, "Internal server error", requestID)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// --- JWT MIDDLEWARE ---

// JWT authenticates the request from a Bearer header or the auth cookie and stores
// the user ID and roles in the request context.
func (mw *Middleware) JWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())

		tokenString := extractToken(r)
		if tokenString == "" {
			mw.app.Logger.Warn().
				Str("request_id", requestID).
				Msg("Missing access token")
			writeJSONError(w, http.StatusUnauthorized, "Authentication required", requestID)
			return
		}

		claims, err := mw.tokens.ParseAccessToken(tokenString)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "Token has expired"
				mw.app.Logger.Warn().
					Str("request_id", requestID).
					Msg("Expired token used")
			} else {
				mw.app.Logger.Warn().
					Str("request_id", requestID).
					Err(err).
					Msg("Token validation failed")
			}
			writeJSONError(w, http.StatusUnauthorized, msg, requestID)
			return
		}

		ctx := context.WithValue(r.Context(), config.UserIDKey, claims.Subject)
		ctx = context.WithValue(ctx, config.RolesKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated callers that hold none of the given roles.
func (mw *Middleware) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			held, _ := r.Context().Value(config.RolesKey).([]string)
			for _, role := range roles {
				if slices.Contains(held, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			requestID := GetRequestID(r.Context())
			userID, _ := r.Context().Value(config.UserIDKey).(string)
			mw.app.Logger.Warn().
				Str("request_id", requestID).
				Str("user_id", userID).
				Strs("required_roles", roles).
				Msg("Insufficient role")
			writeJSONError(w, http.StatusForbidden, "Insufficient permissions", requestID)
		})
	}
}

func extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// --- REDIS-BASED RATE LIMITER ---
type RedisRateLimiter struct {
	client *redis.Client
	logger zerolog.Logger
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, logger zerolog.Logger, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

// Allow records a hit for key and reports whether it stays within the sliding window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	redisKey := "rate_limit:" + key

	now := time.Now()
	windowStart := now.Add(-rl.window).UnixNano()

	pipe := rl.client.Pipeline()

	// Remove old entries outside the window
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))

	// Count current requests in window
	countCmd := pipe.ZCard(ctx, redisKey)

	// Nanosecond members keep concurrent hits within one second distinct
	pipe.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(now.UnixNano()),
		Member: strconv.FormatInt(now.UnixNano(), 10) + ":" + uuid.NewString()[:8],
	})

	pipe.Expire(ctx, redisKey, 2*rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open when Redis is unavailable
		rl.logger.Warn().Err(err).Msg("Redis rate limiter failed, allowing request")
		return true
	}

	return countCmd.Val() < int64(rl.limit)
}

// --- FALLBACK IN-MEMORY RATE LIMITER ---
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type MemoryRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

// NewMemoryRateLimiter allows perMinute requests per key, refilled continuously.
func NewMemoryRateLimiter(ctx context.Context, perMinute int, burst int) *MemoryRateLimiter {
	rl := &MemoryRateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(float64(perMinute) / 60),
		burst:    burst,
	}
	go rl.cleanupVisitors(ctx)
	return rl
}

func (rl *MemoryRateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *MemoryRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(rl.rate, rl.burst)
		rl.visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

func (rl *MemoryRateLimiter) cleanupVisitors(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if time.Since(v.lastSeen) > 15*time.Minute {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// RateLimit limits requests per client IP. Redis is used when configured, memory otherwise.
func (mw *Middleware) RateLimit(next http.Handler) http.Handler {
	var redisLimiter *RedisRateLimiter
	var memoryLimiter *MemoryRateLimiter

	if mw.app.Redis != nil {
		redisLimiter = NewRedisRateLimiter(mw.app.Redis, mw.app.Logger, mw.app.Config.RateLimit, time.Minute)
	} else {
		memoryLimiter = NewMemoryRateLimiter(context.Background(), mw.app.Config.RateLimit, mw.app.Config.RateLimit)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := GetRequestID(r.Context())
		ip := getClientIP(r)

		var allowed bool
		if redisLimiter != nil {
			allowed = redisLimiter.Allow(r.Context(), ip)
		} else {
			allowed = memoryLimiter.Allow(ip)
		}

		if !allowed {
			mw.app.Logger.Warn().
				Str("request_id", requestID).
				Str("ip", ip).
				Msg("Rate limit exceeded")
			w.Header().Set("Retry-After", "60")
			writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded", requestID)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- SECURITY MIDDLEWARE ---
func Security(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains; preload")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		if !strings.HasPrefix(r.URL.Path, "/swagger/") {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'; connect-src 'self'; frame-ancestors 'none'")
		}

		// Remove server information
		w.Header().Set("Server", "")

		next.ServeHTTP(w, r)
	})
}

// --- TIMEOUT MIDDLEWARE ---

// timeoutWriter drops writes from a handler that outlived its deadline. The handler
// gets its own header map; it reaches the client only when the handler writes first.
type timeoutWriter struct {
	w           http.ResponseWriter
	h           http.Header
	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
}

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{w: w, h: make(http.Header)}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.writeHeaderLocked(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.writeHeaderLocked(http.StatusOK)
	}
	return tw.w.Write(b)
}

func (tw *timeoutWriter) writeHeaderLocked(code int) {
	tw.wroteHeader = true
	dst := tw.w.Header()
	for key, values := range tw.h {
		dst[key] = append([]string(nil), values...)
	}
	tw.w.WriteHeader(code)
}

func (mw *Middleware) Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			r = r.WithContext(ctx)
			tw := newTimeoutWriter(w)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
				return
			case p := <-panicked:
				panic(p)
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if tw.wroteHeader {
					return
				}

				requestID := GetRequestID(r.Context())
				mw.app.Logger.Warn().
					Str("request_id", requestID).
					Dur("timeout", timeout).
					Msg("Request timeout")
				writeJSONError(w, http.StatusServiceUnavailable, "Request timeout", requestID)
			}
		})
	}
}

// --- HELPER FUNCTIONS ---

// GetRequestID returns the request ID stored by RequestID, or "unknown".
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(config.RequestIDKey).(string); ok {
		return requestID
	}
	return "unknown"
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// Check X-Real-IP header
	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fallback to RemoteAddr
	ip := r.RemoteAddr
	if colon := strings.LastIndex(ip, ":"); colon != -1 {
		ip = ip[:colon]
	}
	return ip
}

func writeJSONError(w http.ResponseWriter, status int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	response := fmt.Sprintf(`{"success":false,"error":%q,"request_id":%q}`, message, requestID)
	w.Write([]byte(response))
}
