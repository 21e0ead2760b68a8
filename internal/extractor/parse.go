package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const noise = "script, style, noscript, nav, footer, aside, header, form, iframe"

// Parse reduces a parsed page to an Article. Text is empty when the page
// holds no paragraph content.
func Parse(doc *goquery.Document, u *url.URL) *Article {
	doc.Find(noise).Remove()

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = collapse(doc.Find("title").First().Text())
	}

	description := metaContent(doc, `meta[property="og:description"]`)
	if description == "" {
		description = metaContent(doc, `meta[name="description"]`)
	}

	return &Article{
		URL:         u.String(),
		Title:       title,
		Description: description,
		ImageURL:    metaContent(doc, `meta[property="og:image"]`),
		Source:      SourceName(u),
		Text:        bodyText(doc),
	}
}

func bodyText(doc *goquery.Document) string {
	scope := doc.Find("article")
	if scope.Length() == 0 {
		scope = doc.Find("body")
	}

	var paragraphs []string
	scope.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapse(p.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n\n")
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return collapse(v)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
