package storage

import "context"

// Storage is the object-storage collaborator at its interface boundary:
// one put per scratch file, keyed by date prefix and filename.
type Storage interface {
	UploadFile(ctx context.Context, key string, localPath string) error
}
