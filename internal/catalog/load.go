package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds a catalogue fetch when the Loader has none.
const DefaultTimeout = 10 * time.Second

// FetchError reports a catalogue that could not be fetched or decoded.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("load example list %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Loader fetches catalogues from files or http(s) URLs.
type Loader struct {
	Client  *http.Client
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewLoader returns a Loader using the default HTTP client.
func NewLoader(timeout time.Duration) *Loader {
	return &Loader{Client: http.DefaultClient, Timeout: timeout}
}

// Load fetches the catalogue with the default Loader.
func Load(ctx context.Context, source string) (Catalog, error) {
	return NewLoader(DefaultTimeout).Load(ctx, source)
}

// Load fetches and decodes the catalogue at source. On failure it logs the
// *FetchError and returns it together with an empty catalogue, so callers
// can carry on with nothing to select.
func (l *Loader) Load(ctx context.Context, source string) (Catalog, error) {
	log := l.Logger
	if log == nil {
		log = slog.Default()
	}
	log.Debug("Loading example list", "source", source)

	cat, warnings, err := l.load(ctx, source)
	if err != nil {
		ferr := &FetchError{Source: source, Err: err}
		log.Error("Example list unavailable", "source", source, "err", err)
		return Catalog{}, ferr
	}
	if len(warnings) > 0 {
		log.Warn("Example list has malformed commands", "source", source, "skipped", len(warnings))
	}
	log.Debug("Loaded example list", "source", source, "examples", len(cat))
	return cat, nil
}

func (l *Loader) load(ctx context.Context, source string) (Catalog, []error, error) {
	rc, format, err := l.open(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	return Decode(rc, format)
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, Format, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, JSON, err
		}
		return f, FormatOf(source), nil
	}

	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		cancel()
		return nil, JSON, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, JSON, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, JSON, fmt.Errorf("unexpected status %s", resp.Status)
	}

	format := FormatOf(req.URL.Path)
	if strings.Contains(resp.Header.Get("Content-Type"), "yaml") {
		format = YAML
	}
	return &cancelBody{ReadCloser: resp.Body, cancel: cancel}, format, nil
}

// cancelBody releases the request context once the body is closed.
type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func isURL(source string) bool {
	u, err := url.Parse(source)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
