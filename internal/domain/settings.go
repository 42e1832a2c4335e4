package domain

// Provider categories in the settings file.
const (
	CategoryTextAI  = "text_ai"
	CategoryImageAI = "image_ai"
)

// Providers that are actually called by the pipeline.
const (
	ProviderDeepSeek = "deepseek"
	ProviderDeepAI   = "deepai"
)

// Provider describes a configurable AI provider on the settings page.
type Provider struct {
	Name      string // key in the settings file
	Label     string // display name
	FormField string // settings form input name
}

// TextProviders lists the text generation providers in display order.
var TextProviders = []Provider{
	{Name: "deepseek", Label: "DeepSeek", FormField: "deepseek_api_key"},
	{Name: "openai", Label: "OpenAI", FormField: "openai_api_key"},
	{Name: "anthropic", Label: "Anthropic", FormField: "anthropic_api_key"},
	{Name: "google_gemini", Label: "Google Gemini", FormField: "google_gemini_api_key"},
	{Name: "cohere", Label: "Cohere", FormField: "cohere_api_key"},
	{Name: "mistral", Label: "Mistral", FormField: "mistral_api_key"},
	{Name: "groq", Label: "Groq", FormField: "groq_api_key"},
	{Name: "xai", Label: "xAI", FormField: "xai_api_key"},
	{Name: "perplexity", Label: "Perplexity", FormField: "perplexity_api_key"},
}

// ImageProviders lists the image generation providers in display order.
var ImageProviders = []Provider{
	{Name: "deepai", Label: "DeepAI", FormField: "deepai_api_key"},
	{Name: "openai_image", Label: "OpenAI Images", FormField: "openai_image_api_key"},
	{Name: "stability_ai", Label: "Stability AI", FormField: "stability_api_key"},
	{Name: "replicate", Label: "Replicate", FormField: "replicate_api_key"},
	{Name: "leonardo", Label: "Leonardo", FormField: "leonardo_api_key"},
	{Name: "midjourney", Label: "Midjourney", FormField: "midjourney_api_key"},
	{Name: "ideogram", Label: "Ideogram", FormField: "ideogram_api_key"},
	{Name: "flux", Label: "Flux", FormField: "flux_api_key"},
}

// Settings maps provider category to provider name to API key.
type Settings struct {
	TextAI  map[string]string `json:"text_ai"`
	ImageAI map[string]string `json:"image_ai"`
}

// DefaultSettings returns settings with every known provider and empty keys.
func DefaultSettings() Settings {
	s := Settings{
		TextAI:  make(map[string]string, len(TextProviders)),
		ImageAI: make(map[string]string, len(ImageProviders)),
	}
	for _, p := range TextProviders {
		s.TextAI[p.Name] = ""
	}
	for _, p := range ImageProviders {
		s.ImageAI[p.Name] = ""
	}
	return s
}

// MergeDefaults returns a copy of s in which every known provider is present.
// Saved values win; unknown saved providers are kept.
func (s Settings) MergeDefaults() Settings {
	merged := DefaultSettings()
	for k, v := range s.TextAI {
		merged.TextAI[k] = v
	}
	for k, v := range s.ImageAI {
		merged.ImageAI[k] = v
	}
	return merged
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := Settings{
		TextAI:  make(map[string]string, len(s.TextAI)),
		ImageAI: make(map[string]string, len(s.ImageAI)),
	}
	for k, v := range s.TextAI {
		c.TextAI[k] = v
	}
	for k, v := range s.ImageAI {
		c.ImageAI[k] = v
	}
	return c
}

// Masked returns a copy of s with every key replaced by MaskKey.
func (s Settings) Masked() Settings {
	m := s.Clone()
	for k, v := range m.TextAI {
		m.TextAI[k] = MaskKey(v)
	}
	for k, v := range m.ImageAI {
		m.ImageAI[k] = MaskKey(v)
	}
	return m
}

// MaskKey hides all but the last four characters of an API key.
// Keys of four characters or fewer are hidden entirely.
func MaskKey(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return ""
	}
	return "****" + string(r[len(r)-4:])
}

// ApplyForm overwrites every known provider key with the value get returns
// for its form field. Providers missing from the form are cleared.
func (s *Settings) ApplyForm(get func(field string) string) {
	if s.TextAI == nil {
		s.TextAI = make(map[string]string, len(TextProviders))
	}
	if s.ImageAI == nil {
		s.ImageAI = make(map[string]string, len(ImageProviders))
	}
	for _, p := range TextProviders {
		s.TextAI[p.Name] = get(p.FormField)
	}
	for _, p := range ImageProviders {
		s.ImageAI[p.Name] = get(p.FormField)
	}
}
