package metadata

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Extract pulls metadata out of an HTML document. Each field is selected in
// priority order; a missing tag yields an empty string, and malformed or
// truncated markup is parsed as far as possible rather than rejected.
//
// Priority per field:
//
//	title:       og:title        → <title> text
//	description: og:description  → meta[name=description]
//	image:       og:image        → meta[name=twitter:image]
func Extract(r io.Reader) Metadata {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Metadata{}
	}

	return Metadata{
		Title: firstOf(
			metaContent(doc, `meta[property="og:title"]`),
			strings.TrimSpace(doc.Find("title").First().Text()),
		),
		Description: firstOf(
			metaContent(doc, `meta[property="og:description"]`),
			metaContent(doc, `meta[name="description"]`),
		),
		ImageURL: firstOf(
			metaContent(doc, `meta[property="og:image"]`),
			metaContent(doc, `meta[name="twitter:image"]`),
		),
	}
}

// metaContent returns the trimmed content attribute of the first element
// matching selector, or "" when absent.
func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
