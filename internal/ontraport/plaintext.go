package ontraport

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToPlainText derives the plain-text variant of an HTML email: style and
// script blocks dropped, links rendered as "text (url)", block elements
// separated by blank lines.
func HTMLToPlainText(htmlBody string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("style, script, head").Remove()

	// Keep link targets readable in the text version.
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return
		}
		sel.SetText(fmt.Sprintf("%s (%s)", strings.TrimSpace(sel.Text()), href))
	})

	var blocks []string
	doc.Find("h1, h2, h3, p, li").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(doc.Text()), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}
