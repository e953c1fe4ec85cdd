package wiki

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	contentSelector        = ".mw-parser-output > p"
	referenceSelector      = "ol.references li"
	disambiguationSelector = "#disambigbox, .dmbox-disambig, .disambigbox"
	noiseSelector          = "sup.reference, .mw-editsection, style, script"
)

// Article is the plain-text view of a rendered page.
type Article struct {
	Content          string
	References       []string
	IsDisambiguation bool
	Options          []string
}

// ParseArticle turns rendered page HTML into paragraphs, reference entries and,
// for disambiguation pages, the linked article titles.
func ParseArticle(html string, maxOptions int) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("HTML parse failed: %w", err)
	}

	article := &Article{
		References:       parseReferences(doc),
		IsDisambiguation: doc.Find(disambiguationSelector).Length() > 0,
	}

	doc.Find(noiseSelector).Remove()

	paragraphs := doc.Find(contentSelector)
	if paragraphs.Length() == 0 {
		paragraphs = doc.Find("p")
	}
	parts := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		text := strings.Join(strings.Fields(p.Text()), " ")
		if text != "" {
			parts = append(parts, text)
		}
	})
	article.Content = strings.Join(parts, "\n\n")

	if article.IsDisambiguation {
		article.Options = parseOptions(doc, maxOptions)
	}

	return article, nil
}

func parseReferences(doc *goquery.Document) []string {
	refs := make([]string, 0)
	doc.Find(referenceSelector).Each(func(_ int, li *goquery.Selection) {
		text := strings.Join(strings.Fields(li.Text()), " ")
		text = strings.TrimPrefix(text, "^ ")
		if text != "" {
			refs = append(refs, text)
		}
	})
	return refs
}

// parseOptions takes the first article link of every list item, in page order.
func parseOptions(doc *goquery.Document, maxOptions int) []string {
	options := make([]string, 0)
	seen := make(map[string]struct{})

	doc.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if li.Closest(".references, .navbox, #toc, .toc").Length() > 0 {
			return true
		}
		link := li.Find(`a[href^="/wiki/"]`).First()
		title, ok := link.Attr("title")
		if !ok {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" || strings.Contains(title, ":") {
			return true
		}
		if _, dup := seen[title]; dup {
			return true
		}
		seen[title] = struct{}{}
		options = append(options, title)
		return maxOptions <= 0 || len(options) < maxOptions
	})

	return options
}
