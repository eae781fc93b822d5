package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

const contentTypeXLS = "application/vnd.ms-excel"

// DownloadImport implements attendance.ImportService.
func (s *AttendanceServiceImpl) DownloadImport(ctx context.Context, batchID string) (attendance.ExportFile, error) {
	if !validator.IsValidUUID(batchID) {
		return attendance.ExportFile{}, validator.ValidationErrors{{Field: "batch_id", Message: "batch_id must be a valid UUID"}}
	}

	batch, err := s.ImportBatchRepository.GetByID(ctx, batchID)
	if err != nil {
		return attendance.ExportFile{}, err
	}

	rc, err := s.fileService.OpenArchive(ctx, batch.ArchivePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return attendance.ExportFile{}, attendance.ErrImportArchivePurged
		}
		return attendance.ExportFile{}, fmt.Errorf("failed to open archived sheet: %w", err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return attendance.ExportFile{}, fmt.Errorf("failed to read archived sheet: %w", err)
	}

	contentType := contentTypeXLSX
	if strings.EqualFold(filepath.Ext(batch.Filename), ".xls") {
		contentType = contentTypeXLS
	}

	return attendance.ExportFile{
		Filename:    batch.Filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}
