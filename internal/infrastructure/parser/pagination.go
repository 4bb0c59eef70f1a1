package parser

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is one numbered pagination entry.
type Page struct {
	Number int
	URL    string
}

// Pagination describes the navigation state of one listing page. A page
// without a pagination container yields the zero-ish value (current page 1,
// nothing else set).
type Pagination struct {
	CurrentPage int
	TotalPages  int
	Pages       []Page
	HasNext     bool
	NextURL     string
	HasPrev     bool
	PrevURL     string
}

// Pagination reads the numbered-links list. Numeric link text becomes a page
// entry (the active one sets CurrentPage); "next"/"prev" containers set the
// corresponding flag unless disabled; a "last" link's page= parameter sets
// TotalPages.
func (e *Extractor) Pagination(doc *goquery.Document) Pagination {
	info := Pagination{CurrentPage: 1}

	list := doc.Find("ul.pagination__list").First()
	if list.Length() == 0 {
		return info
	}

	list.Find("li.pagination__item").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a").First()
		if link.Length() == 0 {
			return
		}

		text := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")

		if num, err := strconv.Atoi(text); err == nil {
			info.Pages = append(info.Pages, Page{Number: num, URL: e.resolvePageURL(href)})
			if item.HasClass("active") {
				info.CurrentPage = num
			}
			return
		}

		switch {
		case item.HasClass("next"):
			switch strings.ToLower(text) {
			case "next":
				info.HasNext = true
				info.NextURL = e.resolvePageURL(href)
			case "last":
				if total, ok := pageParam(href); ok {
					info.TotalPages = total
				}
			}
		case item.HasClass("prev"):
			if !item.HasClass("disabled") {
				info.HasPrev = true
				info.PrevURL = e.resolvePageURL(href)
			}
		}
	})

	return info
}

// pageParam pulls the trailing page= value out of a pagination href.
func pageParam(href string) (int, bool) {
	idx := strings.Index(href, "page=")
	if idx < 0 {
		return 0, false
	}
	num, err := strconv.Atoi(href[idx+len("page="):])
	if err != nil {
		return 0, false
	}
	return num, true
}

// resolvePageURL resolves bare query-string hrefs against the listing URL.
func (e *Extractor) resolvePageURL(href string) string {
	if strings.HasPrefix(href, "?") {
		return e.listingURL + href
	}
	return href
}
