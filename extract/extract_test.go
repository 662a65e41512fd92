package extract

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/use-agent/leekduck/pokedex"
	"github.com/use-agent/leekduck/tables"
)

var pacific = time.FixedZone("PDT", -7*60*60)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	tb := tables.Default()
	dex, err := pokedex.Load("", tb.Forms, "zh-TW")
	require.NoError(t, err)
	x, err := New(tb, dex, Options{Locale: "zh-TW", Location: pacific})
	require.NoError(t, err)
	return x
}

func parse(t *testing.T, page, base string) (*goquery.Document, *url.URL) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	u, err := url.Parse(base)
	require.NoError(t, err)
	return doc, u
}
