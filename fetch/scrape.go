// Copyright 2026 Seorim Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// naverSelectors locate the body container on Naver news detail pages,
// in the order the layouts appeared over the years.
var naverSelectors = []string{
	"div#dic_area",
	"div.newsct_article._article_body",
	"article#dic_area",
	"section.article-body",
}

// boilerplateSelectors match the non-article chrome removed before text
// extraction.
var boilerplateSelectors = []string{
	"script", "style", "aside", "nav", "footer", "header", "form", "iframe", "noscript", "figure", "figcaption",
	"div.link_news", "div.reporter_area", "div#comment",
	"[class*=ad], [class*=banner], [class*=popup], [class*=related], [class*=share], [class*=comment], [class*=social], [class*=advertisement], [class*=widget]",
	"[id*=banner], [id*=popup], [id*=related], [id*=share], [id*=comment], [id*=social], [id*=advertisement], [id*=widget]",
}

// IsNaverNews reports whether a URL points at a Naver news or sports
// detail page, which get the dedicated selector set.
func IsNaverNews(url string) bool {
	return strings.Contains(url, "n.news.naver.com/mnews/article") ||
		strings.Contains(url, "sports.naver.com")
}

// Scrape extracts article body text from HTML using source-aware
// selectors. naver selects the Naver detail-page selector set; otherwise
// the generic landmark heuristics run against the whole page. Returns
// ErrNoContent when nothing usable is found.
func Scrape(html string, naver bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("fetch: parse document: %w", err)
	}

	if naver {
		for _, selector := range naverSelectors {
			container := doc.Find(selector).First()
			if container.Length() == 0 {
				continue
			}
			removeBoilerplate(container)
			if text := naverText(container); text != "" {
				return text, nil
			}
		}
		return "", ErrNoContent
	}

	for _, selector := range landmarkSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		removeBoilerplate(container)
		if text := paragraphText(container); text != "" {
			return text, nil
		}
	}

	// No landmark at all: strip the chrome from the whole page and take
	// what text remains.
	removeBoilerplate(doc.Selection)
	if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
		return text, nil
	}
	return "", ErrNoContent
}

func removeBoilerplate(root *goquery.Selection) {
	for _, selector := range boilerplateSelectors {
		root.Find(selector).Remove()
	}
}

// naverText extracts text the way the Naver body containers lay it out:
// direct child blocks first, flattened text as a fallback.
func naverText(container *goquery.Selection) string {
	var blocks []string
	container.ChildrenFiltered("div, p, span").Each(func(_ int, block *goquery.Selection) {
		text := strings.TrimSpace(block.Text())
		if len([]rune(text)) > 10 {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) > 0 {
		return strings.Join(blocks, "\n")
	}
	return strings.TrimSpace(container.Text())
}
