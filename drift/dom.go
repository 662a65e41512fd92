package drift

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

const shingleSize = 3

// FingerprintNode fingerprints the element structure under n. Elements are
// tokenized as tag plus sorted class names, so text, links and images
// changing between days do not move the fingerprint but renamed classes
// or a reshaped card do.
func FingerprintNode(n *html.Node) uint64 {
	var tokens []string
	walk(n, &tokens)
	if len(tokens) == 0 {
		return 0
	}

	shingles := makeShingles(tokens, shingleSize)
	if len(shingles) == 0 {
		return Fingerprint(tokens)
	}
	return Fingerprint(shingles)
}

// FingerprintHTML parses s and fingerprints the result.
func FingerprintHTML(s string) uint64 {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return 0
	}
	return FingerprintNode(doc)
}

func walk(n *html.Node, tokens *[]string) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "svg":
			return
		}
		*tokens = append(*tokens, elementToken(n))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, tokens)
	}
}

func elementToken(n *html.Node) string {
	var classes []string
	for _, a := range n.Attr {
		if a.Key == "class" {
			classes = strings.Fields(a.Val)
			break
		}
	}
	if len(classes) == 0 {
		return n.Data
	}
	sort.Strings(classes)
	return n.Data + "." + strings.Join(classes, ".")
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
