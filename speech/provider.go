package speech

import "context"

// Known provider names. Only openai has a working adapter today; the
// others are declared so requests naming them get a clean typed
// rejection instead of a crash.
const (
	ProviderOpenAI     = "openai"
	ProviderGoogle     = "google"
	ProviderElevenLabs = "elevenlabs"
	ProviderLocal      = "local"
)

// ProviderNames lists every provider a request may name.
func ProviderNames() []string {
	return []string{ProviderOpenAI, ProviderGoogle, ProviderElevenLabs, ProviderLocal}
}

// SynthesisOptions carries the per-request knobs a provider honors.
type SynthesisOptions struct {
	Voice   string
	Format  Format
	Quality Quality
	Speed   float64
	Pitch   float64
}

// Capabilities describes what a provider can do and what it charges.
type Capabilities struct {
	MaxTextLength    int
	SupportedFormats []Format

	// RatePer1KChars is the price per thousand input characters, by
	// quality tier. The engine uses it for the pre-dispatch cost check
	// and for the actual cost of a completed call.
	RatePer1KChars map[Quality]float64

	RequiresNetwork bool
}

// Rate returns the per-1K-character price for a quality tier, or zero
// when the provider publishes no price for it.
func (c Capabilities) Rate(q Quality) float64 {
	return c.RatePer1KChars[q]
}

// Provider synthesizes speech from text.
type Provider interface {
	// Name returns the provider's registry name.
	Name() string

	// Capabilities returns limits and pricing.
	Capabilities() Capabilities

	// Synthesize converts text to audio bytes. Failures are returned as
	// *Error with the taxonomy code and retryability set.
	Synthesize(ctx context.Context, text string, opts SynthesisOptions) ([]byte, error)
}

// NotImplementedProvider is the placeholder behind declared-but-unbuilt
// provider variants. Every call fails with a typed NOT_IMPLEMENTED error.
type NotImplementedProvider struct {
	ProviderName string
}

// Name returns the placeholder's registry name.
func (p NotImplementedProvider) Name() string {
	return p.ProviderName
}

// Capabilities returns permissive limits and no pricing, so requests
// reach Synthesize and fail there with the typed rejection.
func (p NotImplementedProvider) Capabilities() Capabilities {
	return Capabilities{
		MaxTextLength:    4096,
		SupportedFormats: Formats(),
		RatePer1KChars:   map[Quality]float64{},
		RequiresNetwork:  true,
	}
}

// Synthesize always fails with NOT_IMPLEMENTED.
func (p NotImplementedProvider) Synthesize(context.Context, string, SynthesisOptions) ([]byte, error) {
	return nil, NewError(CodeNotImplemented,
		"provider "+p.ProviderName+" is not implemented").WithProvider(p.ProviderName)
}
