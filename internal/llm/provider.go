package llm

import (
	"context"
)

// GenerateRequest is a single completion call to a generative backend.
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	MaxOutputTokens   int32
	Temperature       float32
}

// defines the interface for LLM providers
type Provider interface {
	GenerateText(ctx context.Context, req GenerateRequest) (string, error)
	GetProviderName() string
}

// represents an error from an LLM provider
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
