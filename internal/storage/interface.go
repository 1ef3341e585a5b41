package storage

import "context"

// StoredFile describes one uploaded document after it has been forwarded to
// the storage provider.
type StoredFile struct {
	FileID   string
	Name     string
	Folder   string
	MimeType string
	Size     int64
}

// StorageInterface is the contract for the external file-storage provider.
// Supports both mock (local filesystem) and cloud storage (Firebase/GCS).
type StorageInterface interface {
	// Store forwards a submitted document to the provider.
	// folderRef groups files belonging to the same request.
	Store(ctx context.Context, fileName, folderRef, mimeType string, content []byte, metadata map[string]string) (*StoredFile, error)

	// Delete removes a stored file.
	Delete(ctx context.Context, fileID string) error
}
