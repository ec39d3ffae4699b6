package collector

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	CNNBaseURL       = "http://edition.cnn.com"
	AlJazeeraBaseURL = "http://www.aljazeera.com"

	cnnHeadlineClass = "cd__headline-text"
)

// DefaultSites 返回固定的站点列表，顺序决定同名标题的覆盖关系
func DefaultSites() []Site {
	return []Site{
		{Name: "cnn", BaseURL: CNNBaseURL, Extract: CNNHeadlines},
		{Name: "aljazeera", BaseURL: AlJazeeraBaseURL, Extract: AlJazeeraHeadlines},
	}
}

// linkMatcher 判断一个带 href 的元素是否属于某站点的标题链接
type linkMatcher func(href string, s *goquery.Selection) bool

// CNNHeadlines 匹配以 / 开头、.html 结尾且内部含有标题 class 的链接
func CNNHeadlines(baseURL, html string) ([]Headline, error) {
	return extractHeadlines(baseURL, html, "cnn", isCNNHeadline)
}

// AlJazeeraHeadlines 匹配以 /news 开头、html 结尾的链接
func AlJazeeraHeadlines(baseURL, html string) ([]Headline, error) {
	return extractHeadlines(baseURL, html, "aljazeera", isAlJazeeraHeadline)
}

func isCNNHeadline(href string, s *goquery.Selection) bool {
	return strings.HasPrefix(href, "/") &&
		strings.HasSuffix(href, ".html") &&
		s.Find("."+cnnHeadlineClass).Length() > 0
}

func isAlJazeeraHeadline(href string, _ *goquery.Selection) bool {
	return strings.HasPrefix(href, "/news") && strings.HasSuffix(href, "html")
}

// extractHeadlines 按文档顺序遍历所有带 href 的元素（包括嵌套的匹配），
// 文本取元素及其后代的完整文本，不做 trim
func extractHeadlines(baseURL, html, source string, match linkMatcher) ([]Headline, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%s: parse html: %w", source, err)
	}

	results := make([]Headline, 0, 32)
	doc.Find("[href]").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if text == "" {
			return
		}
		href, ok := s.Attr("href")
		if !ok || !match(href, s) {
			return
		}
		results = append(results, Headline{
			URL:    baseURL + href,
			Title:  text,
			Source: source,
		})
	})
	return results, nil
}
