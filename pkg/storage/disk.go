// Package storage abstracts where product images live.
//
// Two drivers are available:
//   - "local"  — local filesystem (default), served back at /storage/*
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Boot once in internal/server with storage.Connect(), then:
//
//	storage.PutStream("products/42/photo.jpg", file)
//	url := storage.URL("products/42/photo.jpg")
package storage

import "io"

// Disk is the image storage driver interface: write on upload, stream
// back when serving, remove on product deletion.
type Disk interface {
	// PutStream writes from r to path, creating parents as needed.
	PutStream(path string, r io.Reader) error

	// GetStream returns a ReadCloser for the file. Caller must close it.
	GetStream(path string) (io.ReadCloser, error)

	// URL returns the public URL for path.
	URL(path string) string

	// Delete removes a file. A missing file is not an error.
	Delete(path string) error
}
