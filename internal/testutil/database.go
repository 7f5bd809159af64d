package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-app/db"
	"todo-app/internal/config"
)

// SetupTestRepositoryFactory opens a fresh SQLite database in a temp dir
// and closes it when the test ends.
func SetupTestRepositoryFactory(t *testing.T) *db.RepositoryFactory {
	t.Helper()

	testDB, err := db.ConnectToSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	err = db.InitializeSchema(context.Background(), testDB, db.DialectSQLite)
	require.NoError(t, err)

	factory := db.NewRepositoryFactory(testDB, db.DialectSQLite, nil, "todo_app_test")
	t.Cleanup(func() {
		factory.Close(context.Background())
	})
	return factory
}

func GetTestConfig() *config.Config {
	return &config.Config{
		Port:              "0",
		JwtKey:            []byte("test_jwt_secret_key_for_testing_only"),
		TokenTTL:          time.Hour,
		BcryptCost:        bcrypt.MinCost,
		DatabaseType:      config.SQLite,
		DatabaseName:      "todo_app_test",
		LogLevel:          "disabled",
		LogFormat:         "json",
		CORSAllowedOrigin: "*",
	}
}
