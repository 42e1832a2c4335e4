package downloader

import "context"

// Downloader fetches generated images from URLs.
type Downloader interface {
	// Fetch downloads url and returns the body and its content type.
	Fetch(ctx context.Context, url string) (*Result, error)
}

// Result is a completed download.
type Result struct {
	Data        []byte
	ContentType string
}
