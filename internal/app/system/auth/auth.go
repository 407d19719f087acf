// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dalemusser/luctportal/internal/app/system/paging"
	"github.com/dalemusser/luctportal/internal/domain/models"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
	userName  = "user_name"
	userEmail = "user_email"
	userRole  = "user_role"
	pagerKey  = "pager:"
	viewKey   = "view:"
)

// SessionUser is what we cache in the session and inject into r.Context().
type SessionUser struct {
	ID    models.ID   `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// DashboardPath is where a role lands after signing in.
func DashboardPath(role models.Role) string {
	return "/dashboard/" + string(role)
}

// CurrentUser returns the user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser puts u into the request context. Tests use it to skip the
// cookie round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// SessionManager owns the cookie store. The signed-in user and the
// per-dashboard pager positions live in the session, so nothing about the
// user is kept in the browser beyond the signed cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds the cookie store. In production (secure=true)
// cookies are Secure with SameSite=None; over plain http SameSite=Lax.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide at least 32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "luct-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

func (sm *SessionManager) session(r *http.Request) *sessions.Session {
	// A bad or stale cookie yields a fresh session; that is the same as
	// being signed out.
	sess, _ := sm.store.Get(r, sm.name)
	return sess
}

// LoadSessionUser injects the user into context if they are signed in.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sm.session(r)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			u := &SessionUser{
				ID:    models.ParseID(getString(sess, userIDKey)),
				Name:  getString(sess, userName),
				Email: getString(sess, userEmail),
				Role:  models.Role(getString(sess, userRole)),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn stores the user in a fresh session. Pager state from a previous
// user is discarded.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u models.User) error {
	sess := sm.session(r)
	sess.Values = map[interface{}]interface{}{
		isAuthKey: true,
		userIDKey: u.ID.String(),
		userName:  u.Name,
		userEmail: u.Email,
		userRole:  string(u.Role),
	}
	return sess.Save(r, w)
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := sm.session(r)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// Pager restores the pager for one dashboard from the session along with
// the view (tab) it was last saved under.
func (sm *SessionManager) Pager(r *http.Request, dashboard string, size int) (*paging.Pager, string) {
	sess := sm.session(r)
	return paging.DecodePager(size, getString(sess, pagerKey+dashboard)), getString(sess, viewKey+dashboard)
}

// SavePager writes the pager and current view back to the session.
func (sm *SessionManager) SavePager(w http.ResponseWriter, r *http.Request, dashboard, view string, p *paging.Pager) error {
	sess := sm.session(r)
	sess.Values[pagerKey+dashboard] = p.Encode()
	sess.Values[viewKey+dashboard] = view
	return sess.Save(r, w)
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole routes a signed-in user with one of the allowed roles to next.
// It decides which dashboard a user reaches; it does not guard the store.
func (sm *SessionManager) RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	set := make(map[models.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[normRole(role)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[normRole(u.Role)]; !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func normRole(r models.Role) models.Role {
	n, _ := models.ParseRole(string(r))
	return n
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
