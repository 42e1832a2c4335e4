// Package ui provides the embedded web UI assets.
package ui

import (
	_ "embed"
	"html/template"
)

// IndexHTML is the blog-to-post page.
//
//go:embed index.html
var IndexHTML []byte

//go:embed settings.html
var settingsHTML string

// SettingsTemplate renders the provider key form. It expects a value with
// Saved, Error, AccessKey and Sections (each with Title and Fields of
// Label, Name and Value).
var SettingsTemplate = template.Must(template.New("settings").Parse(settingsHTML))
