package scraper

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/leekduck/engine"
	"github.com/use-agent/leekduck/models"
)

// Page is a fetched listing ready for extraction.
type Page struct {
	Kind       models.Kind
	Doc        *goquery.Document
	Base       *url.URL
	EngineUsed string
}

// Source loads listing pages.
type Source interface {
	Load(ctx context.Context, kind models.Kind) (*Page, error)
}

// RemoteSource fetches listings from the live site through the engine
// dispatcher.
type RemoteSource struct {
	host       *url.URL
	dispatcher *engine.Dispatcher
	timeout    time.Duration
}

// NewRemoteSource creates a RemoteSource rooted at host.
func NewRemoteSource(host string, d *engine.Dispatcher, timeout time.Duration) (*RemoteSource, error) {
	u, err := parseHost(host)
	if err != nil {
		return nil, err
	}
	return &RemoteSource{host: u, dispatcher: d, timeout: timeout}, nil
}

// Load fetches the listing for kind.
func (s *RemoteSource) Load(ctx context.Context, kind models.Kind) (*Page, error) {
	target := s.host.ResolveReference(&url.URL{Path: kind.Path()})

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	result, err := s.dispatcher.Dispatch(ctx, &engine.FetchRequest{URL: target.String(), Timeout: s.timeout})
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, fmt.Sprintf("fetch %s", target), err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeParse, fmt.Sprintf("parse %s", target), err)
	}
	base := target
	if u, err := url.Parse(result.FinalURL); err == nil && u.IsAbs() {
		base = u
	}
	return &Page{Kind: kind, Doc: doc, Base: base, EngineUsed: result.EngineName}, nil
}

// DirSource reads saved listing pages from a directory, for offline runs
// and fixtures. The page for a kind is <dir>/<kind>.html, falling back to
// the last path segment of the kind's URL (e.g. raid-bosses.html).
type DirSource struct {
	dir  string
	host *url.URL
}

// NewDirSource creates a DirSource. host is used to resolve relative
// links as if the pages had been fetched from it.
func NewDirSource(dir, host string) (*DirSource, error) {
	u, err := parseHost(host)
	if err != nil {
		return nil, err
	}
	return &DirSource{dir: dir, host: u}, nil
}

// Load reads the saved page for kind.
func (s *DirSource) Load(_ context.Context, kind models.Kind) (*Page, error) {
	var (
		f    *os.File
		err  error
		path string
	)
	for _, name := range fileNames(kind) {
		path = filepath.Join(s.dir, name)
		f, err = os.Open(path)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetch, fmt.Sprintf("open saved page for %s", kind), err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeParse, fmt.Sprintf("parse %s", path), err)
	}
	base := s.host.ResolveReference(&url.URL{Path: kind.Path()})
	return &Page{Kind: kind, Doc: doc, Base: base}, nil
}

func fileNames(kind models.Kind) []string {
	names := []string{string(kind) + ".html"}
	if seg := strings.Trim(kind.Path(), "/"); seg != "" && seg != string(kind) {
		names = append(names, seg+".html")
	}
	return names
}

func parseHost(host string) (*url.URL, error) {
	u, err := url.Parse(host)
	if err != nil || !u.IsAbs() {
		return nil, models.NewScrapeError(models.ErrCodeInvalidInput, fmt.Sprintf("invalid source host %q", host), err)
	}
	return u, nil
}
