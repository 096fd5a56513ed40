package service

import (
	"os"
	"path/filepath"
	"testing"

	"cms-ui/database"
	"cms-ui/logger"
	"cms-ui/storage"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	os.Setenv("CMSUI_LOG_FOLDER", dir)
	os.Unsetenv("CMSUI_ENV")
	os.Unsetenv("CMSUI_DEFAULT_USERNAME")
	os.Unsetenv("CMSUI_DEFAULT_PASSWORD")
	logger.InitLogger(logging.DEBUG)

	require.NoError(t, database.InitDB(filepath.Join(dir, "test.db")))
	storage.Init(filepath.Join(dir, "fallback.json"))

	t.Cleanup(func() {
		_ = database.CloseDB()
	})
}

// closePrimary simulates an unreachable primary store.
func closePrimary(t *testing.T) {
	t.Helper()
	sqlDB, err := database.GetDB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
