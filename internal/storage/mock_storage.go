package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MockStorageService implements document storage on the local filesystem.
// This is for demo/testing without a Firebase project.
type MockStorageService struct {
	uploadsDir string
}

// NewMockStorageService creates a new mock storage service
func NewMockStorageService(uploadsDir string) (*MockStorageService, error) {
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &MockStorageService{uploadsDir: uploadsDir}, nil
}

func (m *MockStorageService) Store(ctx context.Context, fileName, folderRef, mimeType string, content []byte, metadata map[string]string) (*StoredFile, error) {
	fileID := fmt.Sprintf("%s/%s_%s", folderRef, uuid.New().String(), fileName)

	path := filepath.Join(m.uploadsDir, filepath.FromSlash(fileID))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder for %s: %w", fileID, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to save file %s: %w", fileID, err)
	}

	return &StoredFile{
		FileID:   fileID,
		Name:     fileName,
		Folder:   folderRef,
		MimeType: mimeType,
		Size:     int64(len(content)),
	}, nil
}

func (m *MockStorageService) Delete(ctx context.Context, fileID string) error {
	if strings.Contains(fileID, "..") {
		return fmt.Errorf("invalid file id: %s", fileID)
	}
	path := filepath.Join(m.uploadsDir, filepath.FromSlash(fileID))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}
