package service

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/iconidentify/postcraft/internal/domain"
)

// maxJSONCandidates bounds how many '{' positions ExtractJSONObject tries.
const maxJSONCandidates = 16

// ExtractJSONObject finds the first balanced {...} span in text that is valid
// JSON. Braces inside JSON strings are ignored. When a balanced span does not
// parse, scanning resumes just after its opening brace so a nested object can
// still be found.
func ExtractJSONObject(text string) (string, bool) {
	pos := 0
	for tries := 0; tries < maxJSONCandidates; tries++ {
		i := strings.IndexByte(text[pos:], '{')
		if i < 0 {
			return "", false
		}
		start := pos + i
		if end, ok := balancedEnd(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
		pos = start + 1
	}
	return "", false
}

// balancedEnd returns the index of the brace closing the one at start.
func balancedEnd(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// decodePost turns a model reply into a Post for platform. It never fails:
// replies without a usable JSON object produce the platform fallback.
func decodePost(platform domain.Platform, reply, blogURL string) *domain.Post {
	obj, ok := ExtractJSONObject(reply)
	if !ok {
		return fallbackPost(platform, reply, blogURL)
	}

	post := &domain.Post{Platform: platform}
	var target any
	switch platform {
	case domain.PlatformFacebook:
		post.Facebook = &domain.FacebookPost{}
		target = post.Facebook
	case domain.PlatformPinterest:
		post.Pinterest = &domain.PinterestPost{}
		target = post.Pinterest
	default:
		post.Platform = domain.PlatformInstagram
		post.Instagram = &domain.InstagramPost{}
		target = post.Instagram
	}

	// A field of the wrong type leaves that field empty; the rest still decodes.
	if err := json.Unmarshal([]byte(obj), target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return fallbackPost(platform, reply, blogURL)
		}
	}

	if post.Pinterest != nil {
		post.Pinterest.BlogURL = blogURL
	}
	return post
}

// fallbackPost builds placeholder content that keeps the platform's shape.
func fallbackPost(platform domain.Platform, reply, blogURL string) *domain.Post {
	switch platform {
	case domain.PlatformFacebook:
		return &domain.Post{
			Platform: platform,
			Facebook: &domain.FacebookPost{
				FullPost:         reply,
				ImageDescription: "An engaging, relatable image for the blog topic",
			},
		}
	case domain.PlatformPinterest:
		return &domain.Post{
			Platform: platform,
			Pinterest: &domain.PinterestPost{
				Summary:           domain.Truncate(reply, 200),
				KeyTopics:         domain.StringList{"blog", "content"},
				TargetAudience:    "Blog readers",
				PinterestKeywords: domain.StringList{"blog", "tips", "ideas"},
				BoardSuggestions:  domain.StringList{"Blog Posts", "Tips & Ideas", "Inspiration"},
				PinStrategies: []domain.PinStrategy{{
					Type:           "title",
					Focus:          "Main blog topic",
					KeyPoints:      domain.StringList{"Key point from blog"},
					CallToAction:   "Read More →",
					PinTitle:       "Blog Highlights",
					PinDescription: "Check out this blog post for great insights!",
				}},
				ImageDescription: "A visually appealing Pinterest-style graphic",
				BlogURL:          blogURL,
			},
		}
	default:
		return &domain.Post{
			Platform: domain.PlatformInstagram,
			Instagram: &domain.InstagramPost{
				Caption:          reply,
				Hashtags:         domain.StringList{"#blog", "#content", "#instagram"},
				ImageDescription: "A visually appealing image related to the blog topic",
			},
		}
	}
}
