package domain

import "encoding/json"

// StringList is a list of strings that also accepts a single JSON string,
// which LLM replies occasionally produce for list fields. Non-string array
// elements are kept in their JSON form; other values decode as empty.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler. It never fails.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		out := make(StringList, 0, len(list))
		for _, raw := range list {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil {
				out = append(out, s)
				continue
			}
			out = append(out, string(raw))
		}
		*l = out
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil && single != "" {
		*l = StringList{single}
		return nil
	}
	*l = StringList{}
	return nil
}

// InstagramPost is the Instagram draft payload.
type InstagramPost struct {
	Caption          string     `json:"caption"`
	Hashtags         StringList `json:"hashtags"`
	ImageDescription string     `json:"image_description"`
}

// FacebookPost is the scroll-stopping Facebook draft payload.
type FacebookPost struct {
	Hook             string `json:"hook"`
	Body             string `json:"body"`
	CTA              string `json:"cta"`
	EngagementPrompt string `json:"engagement_prompt"`
	VisualsGuide     string `json:"visuals_guide"`
	FullPost         string `json:"full_post"`
	ImageDescription string `json:"image_description"`
}

// PinStrategy describes a single Pinterest pin idea.
type PinStrategy struct {
	Type           string     `json:"type"`
	Focus          string     `json:"focus"`
	KeyPoints      StringList `json:"keyPoints"`
	CallToAction   string     `json:"callToAction"`
	PinTitle       string     `json:"pinTitle"`
	PinDescription string     `json:"pinDescription"`
}

// PinterestPost is the Pinterest pin strategy payload.
type PinterestPost struct {
	Summary           string        `json:"summary"`
	KeyTopics         StringList    `json:"keyTopics"`
	TargetAudience    string        `json:"targetAudience"`
	PinterestKeywords StringList    `json:"pinterestKeywords"`
	BoardSuggestions  StringList    `json:"boardSuggestions"`
	PinStrategies     []PinStrategy `json:"pinStrategies"`
	ImageDescription  string        `json:"image_description"`
	BlogURL           string        `json:"blog_url"`
}

// Post is a generated draft for exactly one platform. Only the payload
// matching Platform is non-nil.
type Post struct {
	Platform  Platform
	Instagram *InstagramPost
	Facebook  *FacebookPost
	Pinterest *PinterestPost
}

// ImageDescription returns the image description of whichever payload is set.
func (p *Post) ImageDescription() string {
	switch {
	case p == nil:
		return ""
	case p.Instagram != nil:
		return p.Instagram.ImageDescription
	case p.Facebook != nil:
		return p.Facebook.ImageDescription
	case p.Pinterest != nil:
		return p.Pinterest.ImageDescription
	}
	return ""
}

// Payload returns the platform payload as an opaque value.
func (p *Post) Payload() any {
	switch {
	case p == nil:
		return nil
	case p.Instagram != nil:
		return p.Instagram
	case p.Facebook != nil:
		return p.Facebook
	case p.Pinterest != nil:
		return p.Pinterest
	}
	return nil
}

// MarshalJSON encodes the post as its platform payload.
func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Payload())
}

// PostResult is either a generated Post or the reason generation failed.
type PostResult struct {
	Post  *Post
	Error string
}

// Failed reports whether the upstream call failed.
func (r PostResult) Failed() bool {
	return r.Post == nil
}

// ImageDescription returns the post's image description, or "" on failure.
func (r PostResult) ImageDescription() string {
	return r.Post.ImageDescription()
}

// For returns the post if it was generated for platform, otherwise nil.
func (r PostResult) For(platform Platform) any {
	if r.Post == nil || r.Post.Platform != platform {
		return nil
	}
	return r.Post.Payload()
}

// MarshalJSON encodes the payload, or {"error": reason} on failure.
func (r PostResult) MarshalJSON() ([]byte, error) {
	if r.Post == nil {
		return json.Marshal(map[string]string{"error": r.Error})
	}
	return json.Marshal(r.Post)
}
