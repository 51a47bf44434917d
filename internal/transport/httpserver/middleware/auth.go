package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"clergy-registry-go/internal/config"
	"clergy-registry-go/pkg/logger"
)

// TokenAuth resolves bearer tokens through an external identity service.
// The identity response carries the acting user and the permission set
// granted to it; authorization decisions downstream reduce to membership
// checks against that set.
type TokenAuth struct {
	baseURL  string
	apiKey   string
	client   *http.Client
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type contextKey int

const userKey contextKey = iota

type User struct {
	ID          string
	Name        string
	permissions map[string]struct{}
	wildcard    bool
}

// Can reports whether the user holds the named permission. A "*" grant
// matches everything.
func (u User) Can(permission string) bool {
	if u.wildcard {
		return true
	}
	_, ok := u.permissions[permission]
	return ok
}

type identityResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func NewTokenAuth(cfg config.AuthConfig, log logger.Logger) *TokenAuth {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &TokenAuth{
		baseURL:  strings.TrimRight(cfg.IdentityURL, "/"),
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
		skipAuth: cfg.SkipAuth,
		mockUser: newUser(cfg.MockUserID, cfg.MockUserName, splitPermissions(cfg.MockPermissions)),
		log:      log,
	}
}

func (a *TokenAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), a.mockUser)))
			return
		}

		token := bearerToken(r)
		if token == "" {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		user, err := a.resolve(r.Context(), token)
		if err != nil {
			a.log.BusinessError("auth: token resolution failed", err)
			writeUnauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (a *TokenAuth) resolve(ctx context.Context, token string) (User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/v1/identity", nil)
	if err != nil {
		return User{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if a.apiKey != "" {
		req.Header.Set("X-Api-Key", a.apiKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return User{}, &statusError{status: resp.StatusCode}
	}

	var identity identityResponse
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return User{}, err
	}
	if identity.ID == "" {
		return User{}, errEmptyIdentity
	}

	return newUser(identity.ID, identity.Name, identity.Permissions), nil
}

// RequirePermission gates a route on a single permission of the
// authenticated user.
func RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "invalid token")
				return
			}
			if !user.Can(permission) {
				writeForbidden(w, permission)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

func withUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func newUser(id, name string, permissions []string) User {
	user := User{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		permissions: make(map[string]struct{}, len(permissions)),
	}
	for _, permission := range permissions {
		permission = strings.TrimSpace(permission)
		if permission == "" {
			continue
		}
		if permission == "*" {
			user.wildcard = true
			continue
		}
		user.permissions[permission] = struct{}{}
	}
	return user
}

func splitPermissions(value string) []string {
	return strings.Split(value, ",")
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeAuthError(w, http.StatusUnauthorized, "invalid_token", message)
}

func writeForbidden(w http.ResponseWriter, permission string) {
	writeAuthError(w, http.StatusForbidden, "permission_denied", "missing permission "+permission)
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]map[string]string{
		"error": {"code": code, "message": message},
	})
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return "identity service returned " + http.StatusText(e.status)
}

var errEmptyIdentity = errors.New("identity response missing user id")
