package file

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/storage"
)

const importsPrefix = "imports"

type FileService interface {
	// ArchiveImport keeps an uploaded attendance sheet under imports/{yyyy}/{mm}/{batchID}{ext}
	ArchiveImport(ctx context.Context, batchID string, uploadedAt time.Time, file io.Reader, filename string) (string, error)

	// OpenArchive opens an archived sheet. Purged archives wrap fs.ErrNotExist.
	OpenArchive(ctx context.Context, path string) (io.ReadCloser, error)

	// PurgeImportArchives deletes archived sheets older than retention
	PurgeImportArchives(ctx context.Context, retention time.Duration) (int, error)

	// Generic operations
	DeleteFile(ctx context.Context, path string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	now     func() time.Time
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
		now:     time.Now,
	}
}

// ArchiveImport uploads the original attendance sheet
func (s *fileServiceImpl) ArchiveImport(ctx context.Context, batchID string, uploadedAt time.Time, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return "", fmt.Errorf("invalid file type: only xlsx, xls allowed")
	}

	p := path.Join(importsPrefix, uploadedAt.Format("2006"), uploadedAt.Format("01"), batchID+ext)

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if ext == ".xls" {
		contentType = "application/vnd.ms-excel"
	}

	uploadedPath, err := s.storage.Upload(ctx, file, p, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to archive attendance sheet: %w", err)
	}

	return uploadedPath, nil
}

// OpenArchive reads back an archived sheet
func (s *fileServiceImpl) OpenArchive(ctx context.Context, p string) (io.ReadCloser, error) {
	if !strings.HasPrefix(p, importsPrefix+"/") {
		return nil, fmt.Errorf("not an import archive: %s", p)
	}
	return s.storage.Download(ctx, p)
}

// PurgeImportArchives removes old archived sheets
func (s *fileServiceImpl) PurgeImportArchives(ctx context.Context, retention time.Duration) (int, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("retention must be positive, got %s", retention)
	}
	return s.storage.DeleteOlderThan(ctx, importsPrefix, s.now().Add(-retention))
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}
