package file

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*fileServiceImpl, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)
	return NewFileService(local).(*fileServiceImpl), dir
}

func TestFileService_ArchiveImport(t *testing.T) {
	svc, _ := newTestService(t)
	uploadedAt := time.Date(2024, time.February, 3, 10, 0, 0, 0, time.UTC)

	p, err := svc.ArchiveImport(context.Background(), "batch-1", uploadedAt, strings.NewReader("data"), "January Attendance.XLSX")
	require.NoError(t, err)
	assert.Equal(t, "imports/2024/02/batch-1.xlsx", p)

	rc, err := svc.OpenArchive(context.Background(), p)
	require.NoError(t, err)
	content, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))

	require.NoError(t, svc.DeleteFile(context.Background(), p))

	_, err = svc.OpenArchive(context.Background(), p)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFileService_OpenArchive_OutsideImports(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.OpenArchive(context.Background(), "exports/ledger.pdf")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, fs.ErrNotExist)
}

func TestFileService_ArchiveImport_RejectsOtherTypes(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ArchiveImport(context.Background(), "batch-1", time.Now(), strings.NewReader("a,b"), "attendance.csv")
	assert.Error(t, err)
}

func TestFileService_PurgeImportArchives(t *testing.T) {
	svc, dir := newTestService(t)
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	oldPath, err := svc.ArchiveImport(context.Background(), "old", now, strings.NewReader("x"), "a.xls")
	require.NoError(t, err)
	_, err = svc.ArchiveImport(context.Background(), "new", now, strings.NewReader("y"), "b.xlsx")
	require.NoError(t, err)

	past := now.Add(-100 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, oldPath), past, past))
	// keep the recent file inside the retention window relative to the fixed clock
	require.NoError(t, os.Chtimes(filepath.Join(dir, "imports/2024/06/new.xlsx"), now, now))

	deleted, err := svc.PurgeImportArchives(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = svc.PurgeImportArchives(context.Background(), 0)
	assert.Error(t, err)
}
