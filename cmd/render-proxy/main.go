package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultRenderTimeout = 30 * time.Second
	defaultRenderWait    = 500 * time.Millisecond
	maxRenderTimeout     = 90 * time.Second
)

// 本地开发用的渲染代理：GET /render.html?url=...&timeout=60&wait=1，返回渲染后的完整 HTML
func main() {
	// 创建浏览器执行器与顶层上下文，整个进程复用一个 headless 实例
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// 预热浏览器，避免首个请求耗时过长
	if err := chromedp.Run(browserCtx); err != nil {
		log.Printf("warn: warmup chromedp failed: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/render.html", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		p, err := parseRenderParams(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// 每个请求在独立的 tab 中渲染，timeout 限制整个渲染过程
		tabCtx, cancelTab := chromedp.NewContext(browserCtx)
		defer cancelTab()
		ctx, cancel := context.WithTimeout(tabCtx, p.timeout)
		defer cancel()

		var html string
		err = chromedp.Run(ctx,
			chromedp.Navigate(p.url),
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.Sleep(p.wait),
			chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		)
		if err != nil {
			log.Printf("render error: %v (url=%s)", err, p.url)
			status := http.StatusBadGateway
			if ctx.Err() == context.DeadlineExceeded {
				status = http.StatusGatewayTimeout
			}
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	})

	addr := ":" + getEnv("PORT", "8050")
	log.Printf("render-proxy listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}

type renderParams struct {
	url     string
	timeout time.Duration
	wait    time.Duration
}

func parseRenderParams(q url.Values) (renderParams, error) {
	p := renderParams{
		url:     q.Get("url"),
		timeout: defaultRenderTimeout,
		wait:    defaultRenderWait,
	}
	if p.url == "" {
		return p, fmt.Errorf("url is required")
	}
	u, err := url.Parse(p.url)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return p, fmt.Errorf("url must be an absolute http(s) URL")
	}

	if v := q.Get("timeout"); v != "" {
		d, err := parseSeconds(v)
		if err != nil || d <= 0 || d > maxRenderTimeout {
			return p, fmt.Errorf("invalid timeout %q", v)
		}
		p.timeout = d
	}
	if v := q.Get("wait"); v != "" {
		d, err := parseSeconds(v)
		if err != nil || d < 0 || d >= p.timeout {
			return p, fmt.Errorf("invalid wait %q", v)
		}
		p.wait = d
	}
	return p, nil
}

// parseSeconds 支持小数秒，例如 0.5
func parseSeconds(s string) (time.Duration, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(f * float64(time.Second)), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
