package main

import (
	"github.com/nickpending/psyquotes/internal/config"
	"github.com/nickpending/psyquotes/internal/imagegen"
)

// placeholderModel is recorded in the history for offline shorts
const placeholderModel = "placeholder"

// newGenerator picks Gemini when a key is configured and offline mode is off,
// otherwise the deterministic placeholder.
func newGenerator(cfg *config.Config) (imagegen.Generator, string, error) {
	if !cfg.UseRemote() {
		return imagegen.NewPlaceholder(), placeholderModel, nil
	}
	g, err := imagegen.NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return nil, "", err
	}
	return g, g.Model(), nil
}
