package narrative

import (
	"context"
	"fmt"

	"github.com/aishield/shield-backend/model"
	"google.golang.org/genai"
)

// Gemini implements Service on the Google GenAI SDK
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini backed service
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{client: client}, nil
}

// Generate issues one GenerateContent request
func (g *Gemini) Generate(ctx context.Context, p Prompt) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if p.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if p.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(p.ThinkingBudget)}
	}

	resp, err := g.client.Models.GenerateContent(ctx, p.Model, genai.Text(p.Text), cfg)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	return resp.Text(), nil
}

func chatContents(history []model.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == model.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}

// Chat replays history into a fresh chat and sends message with search grounding enabled
func (g *Gemini) Chat(ctx context.Context, modelName, system string, history []model.ChatMessage, message string) (model.ChatReply, error) {
	contents := chatContents(history)

	chat, err := g.client.Chats.Create(ctx, modelName, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}, contents)
	if err != nil {
		return model.ChatReply{}, fmt.Errorf("GenAI chat create failed: %w", err)
	}

	resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return model.ChatReply{}, fmt.Errorf("GenAI chat failed: %w", err)
	}

	reply := model.ChatReply{Text: resp.Text()}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk != nil && chunk.Web != nil && chunk.Web.URI != "" {
				reply.GroundingURLs = append(reply.GroundingURLs, chunk.Web.URI)
			}
		}
	}
	return reply, nil
}

// AnalyzeImage sends the image inline followed by the instruction text
func (g *Gemini) AnalyzeImage(ctx context.Context, modelName string, data []byte, mimeType, prompt string) (string, error) {
	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(prompt),
		},
	}}

	resp, err := g.client.Models.GenerateContent(ctx, modelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("GenAI image analysis failed: %w", err)
	}
	return resp.Text(), nil
}

// GenerateImage renders a 16:9 visual and returns the first inline image part
func (g *Gemini) GenerateImage(ctx context.Context, modelName, prompt string, size model.ImageSize) ([]byte, string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: "16:9",
			ImageSize:   string(size),
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("GenAI image generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", ErrNoImage
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return part.InlineData.Data, mime, nil
		}
	}
	return nil, "", ErrNoImage
}
