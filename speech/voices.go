package speech

// VoiceInfo describes one entry of the supported-voice table.
type VoiceInfo struct {
	ID        string
	Name      string
	Gender    string
	Provider  string
	Available bool
}

// supportedVoices is the fixed voice table. A request's voice must be a
// member and marked available; entries flip to available when the
// backing provider ships them.
var supportedVoices = []VoiceInfo{
	{ID: "alloy", Name: "Alloy", Gender: "neutral", Provider: ProviderOpenAI, Available: true},
	{ID: "echo", Name: "Echo", Gender: "male", Provider: ProviderOpenAI, Available: true},
	{ID: "fable", Name: "Fable", Gender: "neutral", Provider: ProviderOpenAI, Available: true},
	{ID: "onyx", Name: "Onyx", Gender: "male", Provider: ProviderOpenAI, Available: true},
	{ID: "nova", Name: "Nova", Gender: "female", Provider: ProviderOpenAI, Available: true},
	{ID: "shimmer", Name: "Shimmer", Gender: "female", Provider: ProviderOpenAI, Available: true},
	{ID: "wavenet-a", Name: "WaveNet A", Gender: "female", Provider: ProviderGoogle, Available: false},
	{ID: "rachel", Name: "Rachel", Gender: "female", Provider: ProviderElevenLabs, Available: false},
}

// Voices returns a copy of the supported-voice table.
func Voices() []VoiceInfo {
	out := make([]VoiceInfo, len(supportedVoices))
	copy(out, supportedVoices)
	return out
}

// LookupVoice finds a voice by ID.
func LookupVoice(id string) (VoiceInfo, bool) {
	for _, v := range supportedVoices {
		if v.ID == id {
			return v, true
		}
	}
	return VoiceInfo{}, false
}
