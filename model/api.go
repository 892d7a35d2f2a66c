// Package model - API types for requests and responses of the REST surface
package model

// TimeRangeRequest selects the dashboard window
type TimeRangeRequest struct {
	Range string `json:"range"`
}

// ChatRequest is one Guardian chat turn. An empty session id starts a new session.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the reply and the text shown in the chat window
type ChatResponse struct {
	SessionID string    `json:"session_id"`
	Reply     ChatReply `json:"reply"`
	Display   string    `json:"display"`
}

// AnalyzeImageRequest submits a base64 encoded screenshot for threat analysis
type AnalyzeImageRequest struct {
	ImageBase64 string `json:"image_base64"`
	MIMEType    string `json:"mime_type"`
	Prompt      string `json:"prompt,omitempty"`
}

// GenerateImageRequest asks for a defense visual
type GenerateImageRequest struct {
	Prompt string    `json:"prompt"`
	Size   ImageSize `json:"size"`
}

// GenerateImageResponse returns the generated image inline
type GenerateImageResponse struct {
	MIMEType   string `json:"mime_type"`
	DataBase64 string `json:"data_base64"`
}
