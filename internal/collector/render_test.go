package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderURL(t *testing.T) {
	c := NewRenderClient("http://localhost:8050/")
	got := c.RenderURL("http://edition.cnn.com")
	want := "http://localhost:8050/render.html?timeout=60&url=http%3A%2F%2Fedition.cnn.com&wait=1"
	if got != want {
		t.Fatalf("RenderURL = %q, want %q", got, want)
	}
}

func TestNewRenderClientDefault(t *testing.T) {
	if got := NewRenderClient("").ProxyURL; got != DefaultProxyURL {
		t.Fatalf("ProxyURL = %q, want %q", got, DefaultProxyURL)
	}
}

func TestRenderReturnsBody(t *testing.T) {
	var gotPath, gotURL, gotTimeout, gotWait string
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotURL = r.URL.Query().Get("url")
		gotTimeout = r.URL.Query().Get("timeout")
		gotWait = r.URL.Query().Get("wait")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>héllo</html>"))
	}))
	defer srv.Close()

	body, err := NewRenderClient(srv.URL).Render(context.Background(), "http://www.aljazeera.com")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if body != "<html>héllo</html>" {
		t.Fatalf("body = %q", body)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
	if gotPath != "/render.html" || gotURL != "http://www.aljazeera.com" || gotTimeout != "60" || gotWait != "1" {
		t.Fatalf("unexpected proxy request: path=%q url=%q timeout=%q wait=%q", gotPath, gotURL, gotTimeout, gotWait)
	}
}

func TestRenderFailsOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render failed", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	if _, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error for non-2xx proxy response")
	}
}

func TestRenderFailsOnInvalidUTF8(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0xff, 0xfe, 0xfd})
	}))
	defer srv.Close()

	if _, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error for invalid utf-8 body")
	}
}

func TestRenderFailsWhenProxyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	if _, err := NewRenderClient(addr).Render(context.Background(), "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error when proxy is unreachable")
	}
}

func TestRenderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRenderClient("http://127.0.0.1:1").Render(ctx, "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestRenderReadsLargeBodyCompletely(t *testing.T) {
	// 超过 16MB 的页面也必须完整读取，末尾的标题不能丢
	const tail = `<a href="/news/x.html">Tail</a></body></html>`
	page := "<html><body>" + strings.Repeat("<p>filler</p>", 17<<20/13) + tail
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	body, err := NewRenderClient(srv.URL).Render(context.Background(), "http://www.aljazeera.com")
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if len(body) != len(page) {
		t.Fatalf("body length = %d, want %d", len(body), len(page))
	}
	items, err := AlJazeeraHeadlines(AlJazeeraBaseURL, body)
	if err != nil {
		t.Fatalf("AlJazeeraHeadlines error: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Tail" {
		t.Fatalf("expected the trailing headline, got %+v", items)
	}
}

func TestRenderRejectsNonUTF8Charset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("caf\xe9"))
	}))
	defer srv.Close()

	if body, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error for latin-1 response, got %q", body)
	}
}

func TestRenderAcceptsUTF8CharsetSpellings(t *testing.T) {
	for _, ct := range []string{"text/html", "text/html; charset=UTF-8", "text/html; charset=utf8"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", ct)
			_, _ = w.Write([]byte("<html>ok</html>"))
		}))
		body, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com")
		srv.Close()
		if err != nil || body != "<html>ok</html>" {
			t.Fatalf("Content-Type %q: body=%q err=%v", ct, body, err)
		}
	}
}

func TestRenderAcceptsAnySuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNonAuthoritativeInfo, http.StatusPartialContent} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = w.Write([]byte("<html></html>"))
		}))
		_, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com")
		srv.Close()
		if err != nil {
			t.Fatalf("status %d: unexpected error: %v", status, err)
		}
	}
}

func TestRenderFailsOnClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad url", http.StatusBadRequest)
	}))
	defer srv.Close()

	if _, err := NewRenderClient(srv.URL).Render(context.Background(), "http://edition.cnn.com"); err == nil {
		t.Fatalf("expected error for 400 proxy response")
	}
}

func TestDeclaredCharset(t *testing.T) {
	cases := map[string]string{
		"":                                  "",
		"text/html":                         "",
		"text/html; charset=UTF-8":          "utf-8",
		"text/html; charset=\"ISO-8859-1\"": "iso-8859-1",
		"not a media type;;":                "",
	}
	for in, want := range cases {
		if got := declaredCharset(in); got != want {
			t.Fatalf("declaredCharset(%q) = %q, want %q", in, got, want)
		}
	}
}
