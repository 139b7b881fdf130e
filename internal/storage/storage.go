// Package storage keeps request attachments on local disk or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("only PDF and DOCX attachments are accepted")
	ErrTooLarge        = errors.New("attachment is too large")
	ErrNotFound        = errors.New("attachment not found")
)

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Store saves attachments under a generated key and reads them back.
type Store interface {
	Save(ctx context.Context, dir, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// CheckUpload rejects files that are not PDF/DOCX or exceed maxMB.
func CheckUpload(filename string, size int64, maxMB int) error {
	if _, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; !ok {
		return ErrUnsupportedType
	}
	if maxMB > 0 && size > int64(maxMB)<<20 {
		return fmt.Errorf("%w: limit is %d MB", ErrTooLarge, maxMB)
	}
	return nil
}

// ContentType returns the MIME type for an accepted key.
func ContentType(key string) string {
	if ct, ok := contentTypes[strings.ToLower(path.Ext(key))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// objectKey builds dir/<uuid>.<ext>; the client's file name is never used as a path.
func objectKey(dir, filename string) string {
	return path.Join(dir, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
}

// cleanKey strips leading slashes and any "..", so keys stay inside the store.
func cleanKey(key string) string {
	return strings.TrimPrefix(path.Clean("/"+key), "/")
}
