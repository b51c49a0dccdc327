// Package ai wraps the hosted LLM endpoint behind a small client
// interface so services stay testable without network access.
package ai

import "context"

// ImagePart is an inline image attachment for a generation request.
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// Client generates a JSON document from a prompt, optionally grounded
// on an attached image.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, image *ImagePart) (string, error)
}
