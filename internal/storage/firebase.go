package storage

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"docintake-backend/internal/logger"
)

// FirebaseStorageService stores documents in the configured Firebase/GCS bucket.
type FirebaseStorageService struct {
	bucket *storage.BucketHandle
}

// NewFirebaseStorageService initializes the Firebase app and resolves the
// default bucket. credentialsFile may be empty to use ambient credentials.
func NewFirebaseStorageService(ctx context.Context, bucketName, credentialsFile string) (*FirebaseStorageService, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage bucket: %w", err)
	}

	return &FirebaseStorageService{bucket: bucket}, nil
}

func (s *FirebaseStorageService) Store(ctx context.Context, fileName, folderRef, mimeType string, content []byte, metadata map[string]string) (*StoredFile, error) {
	fileID := uuid.New().String()
	key := fmt.Sprintf("%s/%s_%s", folderRef, fileID, fileName)
	logger.ExternalServiceCall("firebase-storage", "store", "key", key, "size", len(content))

	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = mimeType
	w.Metadata = metadata
	if _, err := w.Write(content); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	return &StoredFile{
		FileID:   key,
		Name:     fileName,
		Folder:   folderRef,
		MimeType: mimeType,
		Size:     int64(len(content)),
	}, nil
}

func (s *FirebaseStorageService) Delete(ctx context.Context, fileID string) error {
	if err := s.bucket.Object(fileID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", fileID, err)
	}
	return nil
}
