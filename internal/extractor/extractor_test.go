package extractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/iconidentify/postcraft/internal/config"
	"github.com/iconidentify/postcraft/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() config.ExtractConfig {
	return config.ExtractConfig{
		Timeout:      5 * time.Second,
		MaxChars:     5000,
		MaxBodyBytes: 1 << 20,
		UserAgent:    "test-agent",
	}
}

func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func TestExtract_DropsNoise(t *testing.T) {
	page := `<!doctype html>
<html>
<head>
  <title>My Trip</title>
  <style>body { color: red; }</style>
  <script>var tracking = true;</script>
</head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Hiking the Alps</h1>
    <p>We started   early.</p>
    <p>The view was   <em>stunning</em>.</p>
  </article>
  <footer>Copyright 2024</footer>
</body>
</html>`
	server := serveHTML(t, http.StatusOK, page)
	defer server.Close()

	e := New(testConfig(), testLogger())
	got, err := e.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	text := got.String()
	for _, unwanted := range []string{"color: red", "tracking", "Home", "About", "Copyright"} {
		if strings.Contains(text, unwanted) {
			t.Errorf("text contains %q: %q", unwanted, text)
		}
	}
	for _, wanted := range []string{"My Trip", "Hiking the Alps", "We started early.", "stunning"} {
		if !strings.Contains(text, wanted) {
			t.Errorf("text missing %q: %q", wanted, text)
		}
	}
	if strings.Contains(text, "  ") {
		t.Errorf("text has double spaces: %q", text)
	}
	if strings.Contains(text, "\n") {
		t.Errorf("text has newlines: %q", text)
	}
}

func TestExtract_Truncates(t *testing.T) {
	page := "<html><body><p>" + strings.Repeat("é", 6000) + "</p></body></html>"
	server := serveHTML(t, http.StatusOK, page)
	defer server.Close()

	e := New(testConfig(), testLogger())
	got, err := e.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if n := utf8.RuneCountInString(got.String()); n != 5000 {
		t.Errorf("length = %d runes, want 5000", n)
	}
}

func TestExtract_NonOKStillParsed(t *testing.T) {
	server := serveHTML(t, http.StatusNotFound, "<html><body><p>Page not found</p></body></html>")
	defer server.Close()

	e := New(testConfig(), testLogger())
	got, err := e.Extract(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got.String() != "Page not found" {
		t.Errorf("text = %q", got)
	}
}

func TestExtract_NetworkError(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = time.Second
	e := New(cfg, testLogger())

	_, err := e.Extract(context.Background(), "http://127.0.0.1:1/post")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Errorf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtract_InvalidURL(t *testing.T) {
	e := New(testConfig(), testLogger())

	_, err := e.Extract(context.Background(), "not a url\x7f")
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Errorf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestExtract_UnsupportedScheme(t *testing.T) {
	e := New(testConfig(), testLogger())

	_, err := e.Extract(context.Background(), "ftp://example.com/post")
	if !errors.Is(err, domain.ErrExtractionFailed) {
		t.Errorf("err = %v, want ErrExtractionFailed", err)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", " \n\t \n", ""},
		{"single line", "hello world", "hello world"},
		{"trims lines", "  hello  \n  world  ", "hello world"},
		{"double space splits phrases", "one  two   three", "one two three"},
		{"blank lines dropped", "a\n\n\nb", "a b"},
		{"crlf", "a\r\nb\rc", "a b c"},
		{"tabs trimmed", "\ta\t\n\tb", "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(tt.input); got != tt.want {
				t.Errorf("Flatten(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
