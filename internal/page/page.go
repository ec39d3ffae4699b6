package page

import (
	"fmt"
	"io"
	"os"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "${"
	endTag   = "}"
)

// Template 是带 ${name} 占位符的静态页面。
// 只识别 ${name} 形式，$name 与 $$ 原样保留。
type Template struct {
	text string
}

// Load 在启动时读取模板文件
func Load(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("page: read template %s: %w", path, err)
	}
	return Parse(string(raw)), nil
}

func Parse(text string) *Template {
	return &Template{text: text}
}

// Render 只替换 values 中提供的占位符，其余占位符原样保留
func (t *Template) Render(values map[string]string) string {
	return substitute(t.text, values)
}

func substitute(text string, values map[string]string) string {
	s, err := fasttemplate.ExecuteFuncStringWithErr(text, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		if !isIdentifier(tag) {
			// 不合法的占位符只输出 ${，后面的内容继续参与替换
			n, err := io.WriteString(w, startTag)
			if err != nil {
				return n, err
			}
			m, err := io.WriteString(w, substitute(tag+endTag, values))
			return n + m, err
		}
		if v, ok := values[tag]; ok {
			return io.WriteString(w, v)
		}
		return io.WriteString(w, startTag+tag+endTag)
	})
	if err != nil {
		return text
	}
	return s
}

// isIdentifier 匹配 [_a-zA-Z][_a-zA-Z0-9]*
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case i > 0 && '0' <= c && c <= '9':
		default:
			return false
		}
	}
	return true
}
