package domain

import "strings"

// Platform identifies the social network a post is drafted for.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformPinterest Platform = "pinterest"
)

// AllPlatforms lists every supported platform.
var AllPlatforms = []Platform{
	PlatformInstagram,
	PlatformFacebook,
	PlatformPinterest,
}

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// IsValid reports whether p is one of the supported platforms.
func (p Platform) IsValid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePlatform maps a requested platform name to a supported Platform.
// Empty or unrecognised names resolve to Instagram.
func ParsePlatform(s string) Platform {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if p.IsValid() {
		return p
	}
	return PlatformInstagram
}
