package collector

import "context"

// Headline 是从单个站点页面中解析出的一条标题链接
type Headline struct {
	URL    string
	Title  string
	Source string
}

// Renderer 抽象渲染代理，返回目标站点渲染后的 HTML
type Renderer interface {
	Render(ctx context.Context, siteURL string) (string, error)
}

// Extractor 将某个站点的原始 HTML 转换为标题列表，不做排序
type Extractor func(baseURL, html string) ([]Headline, error)

// Site 描述一个需要抓取的新闻首页
type Site struct {
	Name    string
	BaseURL string
	Extract Extractor
}
