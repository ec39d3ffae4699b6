package processor

import (
	"sort"
	"strings"

	"github.com/LJTian/NewsBoard/internal/collector"
)

// Snippet 是一条标题渲染出的 HTML 片段
type Snippet struct {
	Title string
	HTML  string
}

// SimpleProcessor 按标题去重并排序，输出渲染好的片段
type SimpleProcessor struct{}

func NewSimpleProcessor() *SimpleProcessor {
	return &SimpleProcessor{}
}

// Process 以标题文本为唯一键，后出现的覆盖先出现的；结果按标题字典序升序
func (p *SimpleProcessor) Process(items []collector.Headline) []Snippet {
	byTitle := make(map[string]string, len(items))
	for _, it := range items {
		byTitle[it.Title] = renderSnippet(it)
	}

	titles := make([]string, 0, len(byTitle))
	for t := range byTitle {
		titles = append(titles, t)
	}
	sort.Strings(titles)

	out := make([]Snippet, 0, len(titles))
	for _, t := range titles {
		out = append(out, Snippet{Title: t, HTML: byTitle[t]})
	}
	return out
}

// Join 无分隔符拼接所有片段
func Join(snippets []Snippet) string {
	var b strings.Builder
	for _, s := range snippets {
		b.WriteString(s.HTML)
	}
	return b.String()
}

// renderSnippet 原样写入链接与标题，不做 HTML 转义
func renderSnippet(h collector.Headline) string {
	return `<div class="box ` + h.Source + `">` +
		`<span>` +
		`<a href="` + h.URL + `">` + h.Title + `</a>` +
		`</span>` +
		`</div>`
}
