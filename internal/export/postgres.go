package export

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	pq "github.com/lib/pq"

	"github.com/julianstephens/timegrid/internal/constants"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

// IsPostgres reports whether dsn names a PostgreSQL database, either as a URL
// or as key=value pairs.
func IsPostgres(dsn string) bool {
	dsn = strings.TrimSpace(dsn)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	_, ok := dsnParam(dsn, "host")
	if !ok {
		_, ok = dsnParam(dsn, "dbname")
	}
	return ok
}

// ValidateConnString checks that connStr parses as a PostgreSQL URL or DSN and
// carries no password. Passwords belong in ~/.pgpass or PGPASSWORD.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}

	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	if _, ok := dsnParam(connStr, "password"); ok {
		return ErrEmbeddedCredentials
	}
	return nil
}

// withSearchPath points the connection at the timegrid schema unless the
// caller already chose one.
func withSearchPath(connStr string) string {
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if _, ok := dsnParam(connStr, "search_path"); ok {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// sslHint adds a hint to the common "SSL is not enabled" failure.
func sslHint(connStr string, err error) error {
	if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(connStr) {
		return fmt.Errorf("failed to connect to database: %w (hint: try adding sslmode=disable to your connection string)", err)
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}

func hasSSLMode(connStr string) bool {
	if isURL(connStr) {
		if u, err := url.Parse(connStr); err == nil {
			for key := range u.Query() {
				if strings.EqualFold(key, "sslmode") {
					return true
				}
			}
		}
		return false
	}
	_, ok := dsnParam(connStr, "sslmode")
	return ok
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// dsnParam looks up key in a space-separated key=value connection string.
func dsnParam(connStr, key string) (string, bool) {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return kv[1], true
		}
	}
	return "", false
}

// Redact hides everything but the driver and host of a connection string.
func Redact(dsn string) string {
	if !IsPostgres(dsn) {
		return dsn
	}
	if isURL(dsn) {
		if u, err := url.Parse(dsn); err == nil {
			return "postgres://" + u.Host + u.Path
		}
		return "postgres://…"
	}
	host, _ := dsnParam(dsn, "host")
	db, _ := dsnParam(dsn, "dbname")
	return fmt.Sprintf("postgres host=%s dbname=%s", host, db)
}
