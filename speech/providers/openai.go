// Package providers contains the working provider adapters behind the
// speech engine's Provider interface.
package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/castkit/castkit/speech"
)

// openAIMaxTextLength is the character limit the speech endpoint accepts
// per call.
const openAIMaxTextLength = 4096

// OpenAIProvider synthesizes speech through the OpenAI audio API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds an adapter from the OpenAI section of the
// speech configuration.
func NewOpenAIProvider(cfg speech.OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, speech.NewError(speech.CodeAuthError, "OpenAI API key is not set").
			WithProvider(speech.ProviderOpenAI)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &OpenAIProvider{client: openai.NewClientWithConfig(clientCfg)}, nil
}

// Name returns the provider's registry name.
func (p *OpenAIProvider) Name() string {
	return speech.ProviderOpenAI
}

// Capabilities returns OpenAI's limits and published speech pricing.
func (p *OpenAIProvider) Capabilities() speech.Capabilities {
	return speech.Capabilities{
		MaxTextLength: openAIMaxTextLength,
		SupportedFormats: []speech.Format{
			speech.FormatMP3, speech.FormatWAV, speech.FormatFLAC, speech.FormatOpus,
		},
		RatePer1KChars: map[speech.Quality]float64{
			speech.QualityLow:    0.015,
			speech.QualityMedium: 0.015,
			speech.QualityHigh:   0.030,
			speech.QualityHD:     0.030,
		},
		RequiresNetwork: true,
	}
}

// Synthesize calls the OpenAI speech endpoint and returns the raw audio
// bytes. API failures come back as *speech.Error with the taxonomy code
// and retryability derived from the HTTP status.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text string, opts speech.SynthesisOptions) ([]byte, error) {
	model := openai.TTSModel1
	if opts.Quality == speech.QualityHigh || opts.Quality == speech.QualityHD {
		model = openai.TTSModel1HD
	}

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          model,
		Input:          text,
		Voice:          openai.SpeechVoice(opts.Voice),
		ResponseFormat: openai.SpeechResponseFormat(opts.Format),
		Speed:          opts.Speed,
	})
	if err != nil {
		return nil, mapAPIError(err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, speech.NewError(speech.CodeAPIError, "failed to read audio response").
			WithProvider(speech.ProviderOpenAI).WithCause(err)
	}

	return audio, nil
}

// mapAPIError classifies an OpenAI client error into the failure taxonomy.
func mapAPIError(err error) *speech.Error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return speech.NewError(speech.CodeAPIError, "OpenAI request failed").
			WithProvider(speech.ProviderOpenAI).WithCause(err)
	}

	switch {
	case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
		if strings.Contains(strings.ToLower(apiErr.Message), "quota") {
			return speech.NewError(speech.CodeQuotaExceeded, apiErr.Message).
				WithProvider(speech.ProviderOpenAI).WithCause(err)
		}
		return speech.NewError(speech.CodeRateLimit, apiErr.Message).
			WithProvider(speech.ProviderOpenAI).WithCause(err)

	case apiErr.HTTPStatusCode == http.StatusUnauthorized:
		return speech.NewError(speech.CodeAuthError, apiErr.Message).
			WithProvider(speech.ProviderOpenAI).WithCause(err)

	case apiErr.HTTPStatusCode == http.StatusBadRequest:
		return speech.NewError(speech.CodeInvalidInput, apiErr.Message).
			WithProvider(speech.ProviderOpenAI).WithCause(err)

	case apiErr.HTTPStatusCode >= http.StatusInternalServerError:
		return speech.NewError(speech.CodeAPIError,
			fmt.Sprintf("OpenAI server error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)).
			WithProvider(speech.ProviderOpenAI).WithCause(err).WithRetryable(true)

	default:
		return speech.NewError(speech.CodeAPIError,
			fmt.Sprintf("OpenAI error (%d): %s", apiErr.HTTPStatusCode, apiErr.Message)).
			WithProvider(speech.ProviderOpenAI).WithCause(err)
	}
}
