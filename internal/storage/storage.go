package storage

import (
	"net/url"
	"time"

	"github.com/caretend/caretend/internal/storage/postgres"
	"github.com/caretend/caretend/internal/storage/sqlite"
)

// NewSQLiteStore returns the default on-device Provider.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore returns a Provider backed by a shared PostgreSQL
// database, used when a care circle syncs through one server.
func NewPostgresStore(connString string) Provider {
	return postgres.NewStore(connString)
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Inline credentials are rejected at the CLI boundary;
// the keyring or environment should hold them instead.
func HasEmbeddedCredentials(connString string) bool {
	u, err := url.Parse(connString)
	if err != nil || u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func nowRFC3339() string {
	return time.Now().Format(time.RFC3339)
}
