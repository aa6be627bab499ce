package etl

import (
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"

	"fakestore-etl/internal/model"
	apperrors "fakestore-etl/pkg/errors"
)

// WriteTable serializes a transformed table to a snappy-compressed parquet
// file named by the run date and dataset tag, creating the scratch
// directory if absent. A pre-existing same-day file is overwritten, so
// reruns replace prior output instead of appending. Returns the written
// path.
func WriteTable[T any](dir string, dataset model.Dataset, day time.Time, rows []T) (string, error) {
	name := string(dataset)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.LoadError{Dataset: name, Path: dir, Err: err}
	}

	path := filepath.Join(dir, model.ScratchFileName(dataset, day))
	file, err := os.Create(path)
	if err != nil {
		return "", apperrors.LoadError{Dataset: name, Path: path, Err: err}
	}

	writer := parquet.NewGenericWriter[T](file)
	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			file.Close()
			return "", apperrors.LoadError{Dataset: name, Path: path, Err: err}
		}
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return "", apperrors.LoadError{Dataset: name, Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return "", apperrors.LoadError{Dataset: name, Path: path, Err: err}
	}

	return path, nil
}
