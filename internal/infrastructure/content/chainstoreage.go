package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ChainStoreAge extracts article bodies from chainstoreage.com pages, which
// come in several layouts: brief digests, schema.org metadata, structured
// article paragraphs, and a plain content container.
type ChainStoreAge struct{}

var _ Handler = ChainStoreAge{}

func (ChainStoreAge) Host() string {
	return "chainstoreage.com"
}

func (ChainStoreAge) Extract(doc *goquery.Document, _ string) string {
	// Brief pages list several short items; only the first one is the
	// requested article, so the rest must never be concatenated in.
	if briefs := doc.Find("section.news-brief"); briefs.Length() > 0 {
		body := briefs.First().Find("div.body").First()
		if body.Length() > 0 {
			if text := body.Find("div.text").First(); text.Length() > 0 {
				return Normalize(textOf(text))
			}
			return Normalize(textOf(body))
		}
	}

	if meta := doc.Find(`meta[name="articleBody"]`).First(); meta.Length() > 0 {
		if value, ok := meta.Attr("content"); ok && value != "" {
			return Normalize(value)
		}
	}

	if article := doc.Find("article").First(); article.Length() > 0 {
		if paragraphs := article.Find("div.eiq-paragraph"); paragraphs.Length() > 0 {
			var parts []string
			paragraphs.Each(func(_ int, para *goquery.Selection) {
				if wysiwyg := para.Find(".wysiwyg").First(); wysiwyg.Length() > 0 {
					parts = append(parts, textOf(wysiwyg))
					return
				}
				if para.Find(".ad-slot").Length() == 0 && para.Find("nav").Length() == 0 {
					parts = append(parts, textOf(para))
				}
			})
			if len(parts) > 0 {
				return Normalize(strings.Join(parts, " "))
			}
		}

		if body := article.Find(".article-body").First(); body.Length() > 0 {
			return Normalize(textOf(body))
		}

		return Normalize(textOf(article))
	}

	if main := doc.Find("main").First(); main.Length() > 0 {
		if paragraphs := main.Find("div.eiq-paragraph"); paragraphs.Length() > 0 {
			var parts []string
			paragraphs.Each(func(_ int, para *goquery.Selection) {
				if para.Find("nav").Length() > 0 || para.Find(".ad-slot").Length() > 0 {
					return
				}
				if wysiwyg := para.Find(".wysiwyg").First(); wysiwyg.Length() > 0 {
					parts = append(parts, textOf(wysiwyg))
				} else {
					parts = append(parts, textOf(para))
				}
			})
			return Normalize(strings.Join(parts, " "))
		}
	}

	if div := doc.Find("div.content").First(); div.Length() > 0 {
		if paragraphs := div.Find("p"); paragraphs.Length() > 0 {
			var parts []string
			paragraphs.Each(func(_ int, p *goquery.Selection) {
				parts = append(parts, textOf(p))
			})
			return Normalize(strings.Join(parts, " "))
		}
		return Normalize(textOf(div))
	}

	return Normalize(textOf(doc.Find("body")))
}
