package collector

import (
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gocolly/colly/v2"
)

const (
	DefaultProxyURL = "http://localhost:8050"

	// 传给渲染代理的参数：60 秒硬超时，页面渲染后等待 1 秒
	renderTimeoutSec = 60
	renderWaitSec    = 1

	// 客户端超时需大于代理自身的超时，由代理决定渲染是否失败
	renderClientTimeout = (renderTimeoutSec + 30) * time.Second
)

// RenderClient 通过本地 headless 渲染代理获取页面
type RenderClient struct {
	ProxyURL string
}

func NewRenderClient(proxyURL string) *RenderClient {
	if proxyURL == "" {
		proxyURL = DefaultProxyURL
	}
	return &RenderClient{ProxyURL: strings.TrimRight(proxyURL, "/")}
}

// RenderURL 拼出 {proxy}/render.html?url=...&timeout=60&wait=1
func (r *RenderClient) RenderURL(siteURL string) string {
	q := url.Values{}
	q.Set("url", siteURL)
	q.Set("timeout", fmt.Sprint(renderTimeoutSec))
	q.Set("wait", fmt.Sprint(renderWaitSec))
	return r.ProxyURL + "/render.html?" + q.Encode()
}

// Render 对每个站点只发起一次请求，不重试、不缓存
func (r *RenderClient) Render(ctx context.Context, siteURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// 每次调用独立的 collector 与 transport，返回前关闭空闲连接
	tr := http.DefaultTransport.(*http.Transport).Clone()
	defer tr.CloseIdleConnections()

	// MaxBodySize(0) 不限制大小，必须读完整个页面；
	// 非 2xx 状态由 OnResponse 自行判断，colly 默认会把 203 以上都当作错误
	c := colly.NewCollector(
		colly.UserAgent("NewsBoardBot/1.0"),
		colly.MaxBodySize(0),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(renderClientTimeout)
	c.WithTransport(tr)

	c.OnRequest(func(req *colly.Request) {
		if ctx.Err() != nil {
			req.Abort()
		}
	})

	var (
		body    []byte
		got     bool
		respErr error
	)
	c.OnResponse(func(resp *colly.Response) {
		got = true
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			respErr = fmt.Errorf("unexpected status %d", resp.StatusCode)
			return
		}
		// colly 会按声明的 charset 转码，这里只接受 UTF-8 原文
		if cs := declaredCharset(resp.Headers.Get("Content-Type")); cs != "" && !isUTF8Charset(cs) {
			respErr = fmt.Errorf("unsupported charset %q", cs)
			return
		}
		body = resp.Body
	})

	target := r.RenderURL(siteURL)
	if err := c.Visit(target); err != nil {
		log.Printf("render %s failed: %v", siteURL, err)
		return "", fmt.Errorf("render: visit %s: %w", siteURL, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !got {
		return "", fmt.Errorf("render: %s: empty response", siteURL)
	}
	if respErr != nil {
		log.Printf("render %s failed: %v", siteURL, respErr)
		return "", fmt.Errorf("render: %s: %w", siteURL, respErr)
	}
	if !utf8.Valid(body) {
		return "", fmt.Errorf("render: %s: response is not valid utf-8", siteURL)
	}
	return string(body), nil
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(params["charset"]))
}

func isUTF8Charset(cs string) bool {
	return cs == "utf-8" || cs == "utf8"
}
