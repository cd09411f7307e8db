// Package imagegen talks to the image-generation collaborator that paints
// backgrounds for quote shorts.
package imagegen

import (
	"context"
	"errors"
	"mime"
	"strings"
)

// DefaultMIMEType is assumed when the collaborator does not label its payload
const DefaultMIMEType = "image/png"

// AspectPortrait is the vertical short format
const AspectPortrait = "9:16"

var (
	// ErrEmptyResult means the collaborator answered but returned no usable image
	ErrEmptyResult = errors.New("image generation returned no image")
	// ErrNoAPIKey means no credentials were configured for the remote generator
	ErrNoAPIKey = errors.New("no API key configured for image generation")
)

// Request describes a single image to generate
type Request struct {
	Prompt      string
	AspectRatio string
	// Seed keeps offline output stable for the same quote
	Seed string
}

// Image is a generated picture with its MIME type
type Image struct {
	Data     []byte
	MIMEType string
}

// Empty reports whether the image carries no payload
func (img *Image) Empty() bool {
	return img == nil || len(img.Data) == 0
}

// Extension returns the file extension for the image MIME type, ".png" when unknown
func (img *Image) Extension() string {
	if img == nil {
		return ".png"
	}
	return ExtensionFor(img.MIMEType)
}

// ExtensionFor maps a MIME type to a file extension, ".png" when unknown
func ExtensionFor(mimeType string) string {
	mt, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		return ".png"
	}
	switch strings.ToLower(mt) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// Generator produces one image per call. Implementations must honour ctx
// cancellation but callers never rely on it to discard a result.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Image, error)
}

// GeneratorFunc adapts a function to the Generator interface
type GeneratorFunc func(ctx context.Context, req Request) (*Image, error)

// Generate calls f
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (*Image, error) {
	return f(ctx, req)
}
