package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/liftlog/internal/kvstore"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AuthTokenHeader = "X-LIFTLOG-TOKEN"

type AuthMiddlewareHandler struct {
	apiSecretHash string
	tokenCache    kvstore.Store
	tokenCacheTTL time.Duration
	allowedPaths  map[string]bool
}

// NewAuthMiddlewareHandler checks the auth token header against a bcrypt hash of the
// API secret. Tokens that passed the check are kept in tokenCache for tokenCacheTTL,
// so bcrypt runs once per token and TTL window.
func NewAuthMiddlewareHandler(
	apiSecretHash string,
	tokenCache kvstore.Store,
	tokenCacheTTL time.Duration,
) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiSecretHash: apiSecretHash,
		tokenCache:    tokenCache,
		tokenCacheTTL: tokenCacheTTL,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
	}
}

func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "auth:token:" + hex.EncodeToString(sum[:])
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions || h.allowedPaths[r.URL.Path] {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			if h.apiSecretHash == "" {
				// auth not configured (local development)
				span.SetStatus(codes.Ok, "auth-disabled")
				next.ServeHTTP(w, r)
				return
			}

			authToken := r.Header.Get(AuthTokenHeader)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			cacheKey := tokenCacheKey(authToken)
			_, err := h.tokenCache.Get(ctx, cacheKey)
			switch {
			case err == nil:
				span.SetStatus(codes.Ok, "ok-cached")
				next.ServeHTTP(w, r)
				return
			case !errors.Is(err, kvstore.ErrNotFound):
				log.Warnf("[auth middleware] token cache get: %s", err)
			}

			if !pkg.CheckPasswordHash(authToken, h.apiSecretHash) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid token] [auth middleware] unauthorized => %s, from: %s", r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			if err := h.tokenCache.Set(ctx, cacheKey, []byte{1}, h.tokenCacheTTL); err != nil {
				log.Warnf("[auth middleware] token cache set: %s", err)
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
