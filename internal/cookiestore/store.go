// Package cookiestore keeps the backend session cookie between runs in a
// sqlite file.
package cookiestore

import (
	"database/sql"
	_ "embed"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed schema.sql
var schema string

// Store handles cookie persistence
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the cookie database at dbPath
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts cookies received from origin. Cookies that are expired or
// deleted by the server are removed instead.
func (s *Store) Save(origin string, cookies []*http.Cookie) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}

		expires := expiry(c, now)
		if expires.Valid && expires.Int64 <= now.Unix() {
			if _, err := tx.Exec(
				"DELETE FROM cookies WHERE origin = ? AND name = ? AND path = ?",
				origin, c.Name, path,
			); err != nil {
				return fmt.Errorf("delete cookie: %w", err)
			}
			continue
		}

		_, err := tx.Exec(
			`INSERT INTO cookies (origin, name, path, value, domain, expires_at, secure, http_only, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (origin, name, path) DO UPDATE SET
			   value = excluded.value,
			   domain = excluded.domain,
			   expires_at = excluded.expires_at,
			   secure = excluded.secure,
			   http_only = excluded.http_only,
			   updated_at = excluded.updated_at`,
			origin, c.Name, path, c.Value, c.Domain, expires, c.Secure, c.HttpOnly, now.UTC(),
		)
		if err != nil {
			return fmt.Errorf("save cookie: %w", err)
		}
	}

	return tx.Commit()
}

// Load returns the unexpired cookies stored for origin
func (s *Store) Load(origin string) ([]*http.Cookie, error) {
	rows, err := s.db.Query(
		`SELECT name, path, value, domain, expires_at, secure, http_only
		 FROM cookies WHERE origin = ? AND (expires_at IS NULL OR expires_at > ?)
		 ORDER BY name`,
		origin, s.now().Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("load cookies: %w", err)
	}
	defer rows.Close()

	var cookies []*http.Cookie
	for rows.Next() {
		var (
			c       http.Cookie
			expires sql.NullInt64
		)
		if err := rows.Scan(&c.Name, &c.Path, &c.Value, &c.Domain, &expires, &c.Secure, &c.HttpOnly); err != nil {
			return nil, fmt.Errorf("scan cookie: %w", err)
		}
		if expires.Valid {
			c.Expires = time.Unix(expires.Int64, 0)
		}
		cookies = append(cookies, &c)
	}

	return cookies, rows.Err()
}

// Clear deletes every cookie stored for origin
func (s *Store) Clear(origin string) error {
	if _, err := s.db.Exec("DELETE FROM cookies WHERE origin = ?", origin); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

// expiry returns when c expires in unix seconds; invalid for a session cookie
func expiry(c *http.Cookie, now time.Time) sql.NullInt64 {
	switch {
	case c.MaxAge < 0:
		return sql.NullInt64{Int64: now.Unix(), Valid: true}
	case c.MaxAge > 0:
		return sql.NullInt64{Int64: now.Unix() + int64(c.MaxAge), Valid: true}
	case !c.Expires.IsZero():
		return sql.NullInt64{Int64: c.Expires.Unix(), Valid: true}
	}
	return sql.NullInt64{}
}

// Jar is an http.CookieJar that writes through to a Store. Only cookies of
// the configured origin are persisted.
type Jar struct {
	jar    *cookiejar.Jar
	store  *Store
	origin *url.URL
	logger *logrus.Logger
	mu     sync.Mutex
}

// NewJar creates a jar primed with the cookies stored for base
func NewJar(store *Store, base string, logger *logrus.Logger) (*Jar, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	origin := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}

	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	saved, err := store.Load(origin.String())
	if err != nil {
		return nil, err
	}
	inner.SetCookies(origin, saved)

	logger.WithFields(logrus.Fields{
		"origin":  origin.String(),
		"cookies": len(saved),
	}).Debug("Restored session cookies")

	return &Jar{jar: inner, store: store, origin: origin, logger: logger}, nil
}

// SetCookies implements http.CookieJar
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.jar.SetCookies(u, cookies)
	if u.Scheme != j.origin.Scheme || u.Host != j.origin.Host {
		return
	}
	if err := j.store.Save(j.origin.String(), cookies); err != nil {
		j.logger.WithError(err).Warn("Failed to persist session cookies")
	}
}

// Cookies implements http.CookieJar
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	jar := j.jar
	j.mu.Unlock()
	return jar.Cookies(u)
}

// Clear forgets the origin's cookies in memory and on disk
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	fresh, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	j.jar = fresh
	return j.store.Clear(j.origin.String())
}
