// Package errors defines the error taxonomy of the pipeline. Every stage
// fails with exactly one of these types; nothing downstream recovers or
// salvages partial results.
package errors

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned when a pipeline run is requested while a
// previous run has not finished. Two runs sharing the scratch directory
// and calendar date would race on overwrite and delete.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// ExtractError reports an unreachable endpoint or a non-2xx response.
type ExtractError struct {
	Endpoint string
	Err      error
}

func (e ExtractError) Error() string {
	return fmt.Sprintf("failed to connect with %s: %v", e.Endpoint, e.Err)
}

func (e ExtractError) Unwrap() error {
	return e.Err
}

// TransformError reports a missing or malformed field in a raw record.
type TransformError struct {
	Dataset string
	Field   string
}

func (e TransformError) Error() string {
	return fmt.Sprintf("failed to transform %s: missing or malformed field %q", e.Dataset, e.Field)
}

// LoadError reports a local serialization or I/O failure while writing
// the columnar file for a dataset.
type LoadError struct {
	Dataset string
	Path    string
	Err     error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("failed to save parquet file for %s at %s: %v", e.Dataset, e.Path, e.Err)
}

func (e LoadError) Unwrap() error {
	return e.Err
}

// UploadError reports an object-storage write failure for one file.
type UploadError struct {
	File string
	Err  error
}

func (e UploadError) Error() string {
	return fmt.Sprintf("failed to send %s to object storage: %v", e.File, e.Err)
}

func (e UploadError) Unwrap() error {
	return e.Err
}

// CleanupError reports a local delete failure for one uploaded file.
// Already-uploaded objects are never compensated.
type CleanupError struct {
	File string
	Err  error
}

func (e CleanupError) Error() string {
	return fmt.Sprintf("failed to delete %s from scratch storage: %v", e.File, e.Err)
}

func (e CleanupError) Unwrap() error {
	return e.Err
}
