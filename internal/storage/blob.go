// Package storage provides the blob store the generation engine persists
// audio artifacts to. The engine only depends on the BlobStore interface;
// production uses the MinIO-backed implementation, tests the in-memory one.
package storage

import "context"

// BlobStore stores binary artifacts under deterministic keys.
type BlobStore interface {
	// Put uploads data and returns a public URL for it.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes the object a previous Put returned the URL for.
	Delete(ctx context.Context, url string) error
}

// ContentTypeForFormat maps an audio format name to its MIME type.
func ContentTypeForFormat(format string) string {
	switch format {
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "flac":
		return "audio/flac"
	case "opus":
		return "audio/opus"
	default:
		return "application/octet-stream"
	}
}
