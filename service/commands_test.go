package service

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/mattn/go-sqlite3"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	configPath = ""
	t.Cleanup(func() { configPath = "" })

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setupTestEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dsn := filepath.Join(dir, "nested", "blog.db")
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_DSN", dsn)
	t.Setenv("SESSION_PATH", filepath.Join(dir, "sessions"))
	return dsn
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "simpleblog version "+Version+"\n", out)
}

func TestHashPasswordCommand(t *testing.T) {
	t.Run("from argument", func(t *testing.T) {
		out, err := runCommand(t, "", "hash-password", "s3cret")
		require.NoError(t, err)
		hash := strings.TrimSpace(out)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
	})

	t.Run("from stdin", func(t *testing.T) {
		out, err := runCommand(t, "hunter2\n", "hash-password")
		require.NoError(t, err)
		hash := strings.TrimSpace(out)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter2")))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := runCommand(t, "", "hash-password")
		assert.Error(t, err)
	})
}

func TestInitCommand(t *testing.T) {
	t.Run("creates tables", func(t *testing.T) {
		dsn := setupTestEnv(t)

		out, err := runCommand(t, "", "init")
		require.NoError(t, err)
		assert.Contains(t, out, "Database initialized successfully")

		out, err = runCommand(t, "", "init")
		require.NoError(t, err, "init must be repeatable")
		assert.Contains(t, out, "Database initialized successfully")

		assert.Equal(t, 0, countRows(t, dsn, "post"))
	})

	t.Run("seed adds sample posts", func(t *testing.T) {
		dsn := setupTestEnv(t)

		out, err := runCommand(t, "", "init", "--seed")
		require.NoError(t, err)
		assert.Contains(t, out, "sample posts")
		assert.Equal(t, 3, countRows(t, dsn, "post"))
		assert.Equal(t, 3, countRows(t, dsn, "comment"))
	})

	t.Run("bad configuration", func(t *testing.T) {
		setupTestEnv(t)
		t.Setenv("DB_DRIVER", "mysql")

		_, err := runCommand(t, "", "init")
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestUnknownCommand(t *testing.T) {
	_, err := runCommand(t, "", "explode")
	assert.Error(t, err)
}

func TestSqliteFile(t *testing.T) {
	tests := map[string]string{
		"data/blog.db":                   "data/blog.db",
		"file:data/blog.db?cache=shared": "data/blog.db",
		":memory:":                       "",
		"file::memory:?cache=shared":     "",
	}
	for dsn, want := range tests {
		assert.Equal(t, want, sqliteFile(dsn), dsn)
	}
}

func countRows(t *testing.T, dsn, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
