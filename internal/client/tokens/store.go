// Package tokens manages the lifecycle of the access and refresh
// credentials: persistence in the client state store, mirroring into the
// cookie channel that survives full-page navigations, and extraction of
// the subject identifier claim.
package tokens

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/storefront-client/internal/client/store"
	"github.com/dmitrijs2005/storefront-client/internal/dbx"
	"github.com/dmitrijs2005/storefront-client/internal/logging"
)

// State store keys owned by this package.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyRole         = "role"
	KeyUserEmail    = "user_email"
)

// Mirrored cookies live for 4 weeks with a lax cross-site policy. The
// mirror is a transport convenience, not a security boundary: it only
// exists so a navigation that doesn't share in-memory state still carries
// the credential.
const (
	cookieAccessToken = "access_token"
	cookieCustomerID  = "customer_id"
	mirrorTTL         = 4 * 7 * 24 * time.Hour
)

// Store owns credential persistence and the cookie mirror.
type Store struct {
	db      *sql.DB
	jar     http.CookieJar
	baseURL *url.URL
	log     logging.Logger
}

// NewStore binds the token store to the state DB and mirrors cookies into
// jar under the backend origin baseURL.
func NewStore(db *sql.DB, jar http.CookieJar, baseURL string, log logging.Logger) (*Store, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Store{db: db, jar: jar, baseURL: u, log: log}, nil
}

func (s *Store) repo() store.Store {
	return store.NewSQLiteStore(s.db)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, err := s.repo().Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Access returns the stored access credential, or "" when absent.
func (s *Store) Access(ctx context.Context) (string, error) {
	return s.get(ctx, KeyAccessToken)
}

// Refresh returns the stored refresh credential, or "" when absent.
func (s *Store) Refresh(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRefreshToken)
}

// Set persists the access credential and, when refresh is non-empty, the
// refresh credential, then mirrors the access credential and the decoded
// subject identifier into the cookie channel. A payload that fails to
// decode is logged and otherwise ignored; a malformed token must never
// fail the call.
func (s *Store) Set(ctx context.Context, access, refresh string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteStore(tx)
		if err := repo.Set(ctx, KeyAccessToken, []byte(access)); err != nil {
			return err
		}
		if refresh != "" {
			if err := repo.Set(ctx, KeyRefreshToken, []byte(refresh)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.mirror(ctx, access)
	return nil
}

// SetIdentity stores the advisory identity fields returned by the login
// and registration endpoints. They drive UX only (email prefill, role
// redirects); they are never an authorization input.
func (s *Store) SetIdentity(ctx context.Context, role, email string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteStore(tx)
		if err := repo.Set(ctx, KeyRole, []byte(role)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUserEmail, []byte(email))
	})
}

// Role returns the advisory role stored at login, or "".
func (s *Store) Role(ctx context.Context) (string, error) {
	return s.get(ctx, KeyRole)
}

// Email returns the account email stored at login, or "".
func (s *Store) Email(ctx context.Context) (string, error) {
	return s.get(ctx, KeyUserEmail)
}

// IsAuthenticated reports whether an access credential is present. It
// says nothing about validity; expiry is discovered reactively.
func (s *Store) IsAuthenticated(ctx context.Context) (bool, error) {
	access, err := s.Access(ctx)
	if err != nil {
		return false, err
	}
	return access != "", nil
}

// Subject returns the subject identifier decoded from the current access
// credential, or "" when no credential is present or it is malformed.
func (s *Store) Subject(ctx context.Context) (string, error) {
	access, err := s.Access(ctx)
	if err != nil {
		return "", err
	}
	id, _ := SubjectID(access)
	return id, nil
}

// Clear removes both credentials and the cached identity fields from the
// state store and expires the mirrored cookies. Used on logout, account
// deletion, and failed refresh.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := store.NewSQLiteStore(tx)
		for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyRole, KeyUserEmail} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.expireMirror()
	return nil
}

// mirror writes the access credential and, best effort, the subject
// identifier into the cookie channel.
func (s *Store) mirror(ctx context.Context, access string) {
	if s.jar == nil {
		return
	}

	cookies := []*http.Cookie{mirrorCookie(cookieAccessToken, access)}

	if id, ok := SubjectID(access); ok {
		cookies = append(cookies, mirrorCookie(cookieCustomerID, id))
	} else if s.log != nil {
		s.log.Warn(ctx, "could not extract subject identifier from token")
	}

	s.jar.SetCookies(s.baseURL, cookies)
}

func (s *Store) expireMirror() {
	if s.jar == nil {
		return
	}
	s.jar.SetCookies(s.baseURL, []*http.Cookie{
		expiredCookie(cookieAccessToken),
		expiredCookie(cookieCustomerID),
	})
}

func mirrorCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  time.Now().Add(mirrorTTL),
		MaxAge:   int(mirrorTTL.Seconds()),
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:    name,
		Value:   "",
		Path:    "/",
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	}
}
