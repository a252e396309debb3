package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/rpupo63/ambitious-journal-backend/auth"
	"github.com/rpupo63/ambitious-journal-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authMiddleware struct {
	responder     Responder
	authenticator auth.Authenticator
}

func newAuthMiddleware(authenticator auth.Authenticator) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder:     NewResponder(logger),
		authenticator: authenticator,
	}
}

// authenticate rejects requests without a valid admin session and puts the
// session in the request context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authenticator == nil {
			m.responder.WriteError(w, errs.NewConfigError("AUTH_PROVIDER", nil))
			return
		}

		session, err := m.authenticator.Authenticate(r)
		if err != nil {
			var apiErr *errs.ApiErr
			if !errors.As(err, &apiErr) {
				err = errs.NewInvalidTokenError(err)
			}
			m.responder.WriteError(w, err)
			return
		}
		if session.UserID == "" {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithSession(r.Context(), session)))
	})
}

// HitCounter counts requests per key within a time window.
type HitCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
}

// rateLimit allows limit requests per client IP per window. A nil counter
// disables it, and counter errors let the request through.
func rateLimit(counter HitCounter, name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	logger := log.With().Str("handlerName", "rateLimit").Str("limiter", name).Logger()
	responder := NewResponder(logger)

	return func(next http.Handler) http.Handler {
		if counter == nil || limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}

			count, err := counter.Hit(r.Context(), fmt.Sprintf("%s:%s", name, ip), window)
			if err != nil {
				logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				responder.WriteError(w, errs.NewRateLimitError(name, window))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseTrustedProxies reads CIDRs or bare addresses. Invalid entries are logged and skipped.
func parseTrustedProxies(entries []string) []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			log.Warn().Str("entry", entry).Msg("Ignoring invalid TRUSTED_PROXIES entry")
			continue
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes
}

// realIP replaces RemoteAddr with the forwarded client address, but only when
// the connection comes from a trusted proxy. The right-most X-Forwarded-For hop
// that is not itself a trusted proxy wins; hops left of it are client-supplied.
func realIP(trusted []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(trusted) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := forwardedFor(r, trusted); ip != "" {
				r.RemoteAddr = ip
			}
			next.ServeHTTP(w, r)
		})
	}
}

func forwardedFor(r *http.Request, trusted []netip.Prefix) string {
	isTrusted := func(addr netip.Addr) bool {
		addr = addr.Unmap()
		for _, prefix := range trusted {
			if prefix.Contains(addr) {
				return true
			}
		}
		return false
	}

	peer, err := netip.ParseAddr(clientIP(r))
	if err != nil || !isTrusted(peer) {
		return ""
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		addr, err := netip.ParseAddr(hop)
		if err != nil {
			return ""
		}
		if !isTrusted(addr) {
			return addr.Unmap().String()
		}
	}
	return ""
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
