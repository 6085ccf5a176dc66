package ingestion

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelectors end a line of text when flattened.
const blockSelectors = "p, div, section, article, h1, h2, h3, h4, h5, h6, li, tr, ul, ol, table, blockquote"

// HTMLToText reduces an HTML fragment to readable text. Scripts and styles
// are dropped, list items become "- " bullets and block elements end lines.
// Input without markup is only entity-decoded and cleaned.
func HTMLToText(content string) string {
	if !strings.ContainsAny(content, "<>") {
		return CleanText(html.UnescapeString(content))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return CleanText(html.UnescapeString(content))
	}

	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find(blockSelectors).AppendHtml("\n")

	return CleanText(doc.Text())
}

// CourseDescription returns the plain-text description of a scraped course.
func CourseDescription(raw string) string {
	return SingleLine(HTMLToText(raw))
}
