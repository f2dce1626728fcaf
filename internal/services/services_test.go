package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"zfit-backend-go/internal/db"
	"zfit-backend-go/internal/migrations"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "zfit.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	if err := migrations.Apply(database); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return database
}

func testTokens() TokenService {
	return TokenService{
		Secret:     []byte("test-secret"),
		Issuer:     "zfit",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	}
}

func mustCreateUser(t *testing.T, database *sqlx.DB, username string) string {
	t.Helper()
	user, err := CreateUser(database, testTokens(), CreateUserInput{
		Username: username,
		Name:     "Test User",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user.ID
}
