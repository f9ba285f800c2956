// Package scrape is the narrow HTML extraction port used by site adapters.
// Site layouts live in selector configuration; this package only knows how to query.
package scrape

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Anchor is a link found in a document.
type Anchor struct {
	// Href is the raw attribute value.
	Href string
	// URL is Href resolved against the document URL.
	URL  string
	Text string
}

// Document is a parsed HTML page.
type Document struct {
	doc  *goquery.Document
	base *url.URL
}

// Parse reads an HTML page. base is used to resolve relative links and may be nil.
func Parse(r io.Reader, base *url.URL) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc, base: base}, nil
}

// FindAnchors returns, in document order, the elements matching selector that carry an
// href accepted by pattern. A nil pattern accepts every non-empty href.
func (d *Document) FindAnchors(selector string, pattern *regexp.Regexp) []Anchor {
	var anchors []Anchor
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			return
		}
		if pattern != nil && !pattern.MatchString(href) {
			return
		}
		anchors = append(anchors, Anchor{
			Href: href,
			URL:  d.resolve(href),
			Text: collapseSpace(s.Text()),
		})
	})
	return anchors
}

// FirstText returns the trimmed text of the first element matching selector.
func (d *Document) FirstText(selector string) string {
	return collapseSpace(d.doc.Find(selector).First().Text())
}

// TextContaining joins the text of every element matching selector whose text contains label.
func (d *Document) TextContaining(selector, label string) string {
	var parts []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := collapseSpace(s.Text())
		if strings.Contains(text, label) {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, " ")
}

func (d *Document) resolve(href string) string {
	if d.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return d.base.ResolveReference(ref).String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
