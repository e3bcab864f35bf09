package stores

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"firebase.google.com/go/v4/storage"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Mawaqit/models"
)

// FirebaseImageStore uploads profile images to Firebase Storage and hands
// back the same token URL the Firebase client SDK's getDownloadURL returns.
type FirebaseImageStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewFirebaseImageStore(client *storage.Client, bucketName string) (*FirebaseImageStore, error) {
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage bucket %s: %w", bucketName, err)
	}
	return &FirebaseImageStore{bucket: bucket, bucketName: bucketName}, nil
}

func (s *FirebaseImageStore) UploadImage(ctx context.Context, path, contentType string, data []byte) (string, error) {
	token := uuid.NewString()

	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", models.NewStorageError("upload "+path, err)
	}
	if err := w.Close(); err != nil {
		return "", models.NewStorageError("upload "+path, err)
	}

	return DownloadURL(s.bucketName, path, token), nil
}

func (s *FirebaseImageStore) DeleteImage(ctx context.Context, path string) error {
	err := s.bucket.Object(path).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		log.Warn("image to delete not found in storage", "path", path)
		return nil
	}
	if err != nil {
		return models.NewStorageError("delete "+path, err)
	}
	return nil
}

// DownloadURL builds a publicly resolvable Firebase Storage URL.
func DownloadURL(bucketName, path, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucketName, url.PathEscape(path), url.QueryEscape(token))
}
