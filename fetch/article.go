package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Article is the result of a structural parse of a news page.
type Article struct {
	// Title from the og:title meta tag or the page <h1>/<title>.
	Title string

	// Body is the paragraph text joined with newlines, boilerplate removed.
	Body string

	// PublishedAt from the article:published_time meta tag, verbatim
	// (ISO-8601 when present). Empty when the page doesn't declare it.
	PublishedAt string
}

// landmarkSelectors are the semantic containers tried in order when
// looking for the article body of an arbitrary news page.
var landmarkSelectors = []string{
	"article",
	"main",
	"div.article-content, div.article_body, div.post-content, div.entry-content, div.article_view, div.articleBody, div.view_content",
	"div#article_body, div#articleContent, div#realContent, div#viewContent, div#content",
}

// ReadArticle structurally parses a news page: title and publication
// time from the meta tags, body text from the first semantic landmark
// containing real paragraphs. Returns ErrNoContent when no landmark
// yields any paragraph text.
func ReadArticle(html string) (*Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("fetch: parse document: %w", err)
	}

	article := &Article{
		Title:       metaContent(doc, `meta[property="og:title"]`),
		PublishedAt: metaContent(doc, `meta[property="article:published_time"]`),
	}
	if article.Title == "" {
		article.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if article.Title == "" {
		article.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	removeBoilerplate(doc.Selection)

	for _, selector := range landmarkSelectors {
		container := doc.Find(selector).First()
		if container.Length() == 0 {
			continue
		}
		if body := paragraphText(container); body != "" {
			article.Body = body
			return article, nil
		}
	}

	return article, ErrNoContent
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// paragraphText joins the text of paragraphs longer than 20 characters.
// Falls back to the container's flattened text when the page doesn't
// use <p> tags, as several older outlets don't.
func paragraphText(container *goquery.Selection) string {
	var paragraphs []string
	container.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := strings.TrimSpace(p.Text())
		if len([]rune(text)) > 20 {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return strings.Join(paragraphs, "\n")
	}
	return strings.TrimSpace(container.Text())
}
