package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/pkg/storage"
)

var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

// DocumentStore persists justification documents under a per-record prefix
// and hands back the metadata the attendance store keeps.
type DocumentStore struct {
	storage storage.FileStorage
}

func NewDocumentStore(fileStorage storage.FileStorage) *DocumentStore {
	return &DocumentStore{storage: fileStorage}
}

// StoreJustification writes one uploaded file under
// justifications/<attendanceID>/<uuid><ext>.
func (s *DocumentStore) StoreJustification(ctx context.Context, attendanceID string, f attendance.DepartureFile) (attendance.Document, error) {
	ext := strings.ToLower(filepath.Ext(f.Header.Filename))
	contentType, ok := mimeByExt[ext]
	if !ok {
		contentType = "application/octet-stream"
	}

	path := fmt.Sprintf("justifications/%s/%s%s", attendanceID, uuid.New().String(), ext)
	storedPath, err := s.storage.Upload(ctx, f.File, path, contentType)
	if err != nil {
		return attendance.Document{}, fmt.Errorf("failed to store justification: %w", err)
	}

	return attendance.Document{
		AttendanceID: attendanceID,
		FileName:     f.Header.Filename,
		StoragePath:  storedPath,
		MimeType:     contentType,
		SizeBytes:    f.Header.Size,
	}, nil
}

// Remove deletes a stored document. Used to roll back a failed departure
// submission.
func (s *DocumentStore) Remove(ctx context.Context, storagePath string) error {
	return s.storage.Delete(ctx, storagePath)
}

// Open streams a stored document back to the caller.
func (s *DocumentStore) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, storagePath)
}
