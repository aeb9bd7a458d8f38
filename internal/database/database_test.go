package database

import (
	"context"
	"path/filepath"
	"testing"

	"dish-quiz/internal/config"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\nCREATE INDEX i ON a (x)\n;  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}

func TestEnsureSQLiteDir(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "nested", "quiz.db") + "?cache=shared"

	require.NoError(t, ensureSQLiteDir(dsn))
	assert.DirExists(t, filepath.Join(dir, "nested"))
	assert.NoError(t, ensureSQLiteDir(":memory:"))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{Driver: "mysql", DSN: "root@/quiz"}}
	_, err := Open(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")

	cfg = &config.Config{DB: config.DBConfig{Driver: "mysql"}}
	_, err = Open(cfg)
	assert.ErrorContains(t, err, "no DSN configured")
}

func TestMigrate_SQLiteRoundTrip(t *testing.T) {
	cfg := &config.Config{DB: config.DBConfig{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "quiz.db"),
	}}
	db, err := Open(cfg)
	if err != nil {
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	defer db.Close()

	require.NoError(t, Migrate(db.DB, DriverSQLite, Up))
	require.NoError(t, Migrate(db.DB, DriverSQLite, Up), "second run is a no-op")

	repo := repository.NewQuestionDatabaseAdapter(db)
	ctx := context.Background()
	bank, err := repository.DefaultQuestions()
	require.NoError(t, err)
	for i := range bank {
		require.NoError(t, repo.SaveQuestion(ctx, &bank[i]))
	}

	loaded, err := repo.ListQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(bank))
	assert.Equal(t, bank[3].Text, loaded[3].Text)
	assert.Equal(t, bank[3].Options, loaded[3].Options)
	assert.NoError(t, domain.ValidateBank(loaded))

	require.NoError(t, repo.DeleteAllQuestions(ctx))
	count, err := repo.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, Migrate(db.DB, DriverSQLite, Down))
}
