package imagegen

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"
	"time"

	"google.golang.org/genai"
)

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"IMAGE/JPEG", ".jpg"},
		{"image/webp", ".webp"},
		{"image/png; charset=binary", ".png"},
		{"", ".png"},
		{"application/octet-stream", ".png"},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			if got := ExtensionFor(tt.mime); got != tt.expected {
				t.Errorf("ExtensionFor(%q) = %q, want %q", tt.mime, got, tt.expected)
			}
		})
	}
}

func TestImageEmpty(t *testing.T) {
	var nilImage *Image
	if !nilImage.Empty() {
		t.Error("Expected nil image to be empty")
	}
	if !(&Image{MIMEType: "image/png"}).Empty() {
		t.Error("Expected image without data to be empty")
	}
	if (&Image{Data: []byte{1}}).Empty() {
		t.Error("Expected image with data to be non-empty")
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini("  ", "")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("Expected ErrNoAPIKey, got %v", err)
	}

	g, err := NewGemini("key", "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if g.Model() != DefaultModel {
		t.Errorf("Expected default model %s, got %s", DefaultModel, g.Model())
	}
}

func TestGenerateConfig(t *testing.T) {
	tests := []struct {
		name       string
		aspect     string
		wantAspect string
	}{
		{"default portrait", "", "9:16"},
		{"explicit aspect", "1:1", "1:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := generateConfig(Request{Prompt: "a lake at dusk", AspectRatio: tt.aspect})
			if len(cfg.ResponseModalities) != 1 || cfg.ResponseModalities[0] != "IMAGE" {
				t.Errorf("Expected image-only output, got %v", cfg.ResponseModalities)
			}
			if cfg.ImageConfig == nil || cfg.ImageConfig.AspectRatio != tt.wantAspect {
				t.Errorf("Expected aspect %s, got %+v", tt.wantAspect, cfg.ImageConfig)
			}
		})
	}
}

func TestImageFromResponse(t *testing.T) {
	withParts := func(parts ...*genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
		}
	}
	blob := func(mime string, data ...byte) *genai.Part {
		return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}}
	}

	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		wantMIME string
		wantErr  bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{name: "nil content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}, wantErr: true},
		{name: "text only", resp: withParts(&genai.Part{Text: "sorry"}), wantErr: true},
		{name: "empty blob", resp: withParts(blob("image/png")), wantErr: true},
		{name: "nil part", resp: withParts(nil), wantErr: true},
		{
			name:     "blob after text",
			resp:     withParts(&genai.Part{Text: "here you go"}, blob("image/jpeg", 1, 2)),
			wantMIME: "image/jpeg",
		},
		{
			name:     "blob without mime",
			resp:     withParts(blob("", 1)),
			wantMIME: DefaultMIMEType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := imageFromResponse(tt.resp)
			if tt.wantErr {
				if !errors.Is(err, ErrEmptyResult) {
					t.Errorf("Expected ErrEmptyResult, got %v", err)
				}
				if img != nil {
					t.Error("Expected no image on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if img.MIMEType != tt.wantMIME {
				t.Errorf("Expected MIME %s, got %s", tt.wantMIME, img.MIMEType)
			}
		})
	}
}

func TestPlaceholderDeterministic(t *testing.T) {
	p := &Placeholder{Width: 18, Height: 32}
	ctx := context.Background()

	a, err := p.Generate(ctx, Request{Seed: "iceberg-profundo-oceano"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, _ := p.Generate(ctx, Request{Seed: "iceberg-profundo-oceano"})
	c, _ := p.Generate(ctx, Request{Seed: "fenix-renacer-cenizas"})

	if !bytes.Equal(a.Data, b.Data) {
		t.Error("Expected identical output for identical seeds")
	}
	if bytes.Equal(a.Data, c.Data) {
		t.Error("Expected different output for different seeds")
	}
	if a.MIMEType != "image/png" {
		t.Errorf("Expected image/png, got %s", a.MIMEType)
	}

	decoded, err := png.Decode(bytes.NewReader(a.Data))
	if err != nil {
		t.Fatalf("Placeholder is not a valid PNG: %v", err)
	}
	if bounds := decoded.Bounds(); bounds.Dx() != 18 || bounds.Dy() != 32 {
		t.Errorf("Expected 18x32, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceholderHonoursCancel(t *testing.T) {
	p := &Placeholder{Width: 9, Height: 16, Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, err := p.Generate(ctx, Request{Seed: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image after cancel")
	}
}
