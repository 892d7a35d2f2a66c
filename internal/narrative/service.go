// Package narrative is the boundary to the generative text service. It owns the
// prompt templates, the per call site fallbacks and the debounced panels that
// keep slow responses from overwriting newer ones.
package narrative

import (
	"context"
	"errors"

	"github.com/aishield/shield-backend/model"
)

var (
	// ErrServiceUnavailable is returned by the offline service when no API key is configured
	ErrServiceUnavailable = errors.New("generative service unavailable")
	// ErrMissingImage rejects image analysis without image bytes
	ErrMissingImage = errors.New("image is required")
	// ErrUnknownKind is returned for call sites that do not exist
	ErrUnknownKind = errors.New("unknown narrative kind")
	// ErrNoImage is returned when the image model answers without inline data
	ErrNoImage = errors.New("no image in response")
)

// Prompt is a single text generation request
type Prompt struct {
	Model          string
	Text           string
	JSON           bool
	ThinkingBudget int32
}

// Generator produces text for a prompt
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Chatter continues a multi turn conversation with search grounding
type Chatter interface {
	Chat(ctx context.Context, modelName, system string, history []model.ChatMessage, message string) (model.ChatReply, error)
}

// ImageAnalyzer describes an image
type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, modelName string, data []byte, mimeType, prompt string) (string, error)
}

// ImageGenerator renders a visual for a prompt
type ImageGenerator interface {
	GenerateImage(ctx context.Context, modelName, prompt string, size model.ImageSize) ([]byte, string, error)
}

// Service is the full generative surface the adapter needs
type Service interface {
	Generator
	Chatter
	ImageAnalyzer
	ImageGenerator
}

// Models names the model used per call site class
type Models struct {
	Fast  string `yaml:"fast"`
	Pro   string `yaml:"pro"`
	Image string `yaml:"image"`
}

// DefaultModels mirrors the production model selection
func DefaultModels() Models {
	return Models{
		Fast:  "gemini-2.5-flash",
		Pro:   "gemini-3-pro-preview",
		Image: "gemini-3-pro-image-preview",
	}
}

// Offline fails every call so the adapter serves fallbacks. Used when no API key is set.
type Offline struct{}

// Generate always fails
func (Offline) Generate(context.Context, Prompt) (string, error) {
	return "", ErrServiceUnavailable
}

// Chat always fails
func (Offline) Chat(context.Context, string, string, []model.ChatMessage, string) (model.ChatReply, error) {
	return model.ChatReply{}, ErrServiceUnavailable
}

// AnalyzeImage always fails
func (Offline) AnalyzeImage(context.Context, string, []byte, string, string) (string, error) {
	return "", ErrServiceUnavailable
}

// GenerateImage always fails
func (Offline) GenerateImage(context.Context, string, string, model.ImageSize) ([]byte, string, error) {
	return nil, "", ErrServiceUnavailable
}
