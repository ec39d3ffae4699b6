package aggregator

import (
	"context"
	"fmt"
	"log"

	"github.com/LJTian/NewsBoard/internal/collector"
	"github.com/LJTian/NewsBoard/internal/processor"
	"golang.org/x/sync/errgroup"
)

// Aggregator 并发抓取所有站点，合并后交给 processor 去重排序
type Aggregator struct {
	sites     []collector.Site
	renderer  collector.Renderer
	processor *processor.SimpleProcessor
}

func New(sites []collector.Site, r collector.Renderer, p *processor.SimpleProcessor) *Aggregator {
	return &Aggregator{
		sites:     sites,
		renderer:  r,
		processor: p,
	}
}

// Collect 任意一个站点失败则整体失败，不返回部分结果
func (a *Aggregator) Collect(ctx context.Context) (string, error) {
	log.Println("start collect headlines...")

	// 每个站点写入自己的下标，goroutine 之间不共享可变状态
	results := make([][]collector.Headline, len(a.sites))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range a.sites {
		g.Go(func() error {
			log.Printf("fetch from %s...", s.Name)
			page, err := a.renderer.Render(gctx, s.BaseURL)
			if err != nil {
				return fmt.Errorf("aggregator: %s: %w", s.Name, err)
			}
			items, err := s.Extract(s.BaseURL, page)
			if err != nil {
				return fmt.Errorf("aggregator: %s: %w", s.Name, err)
			}
			if len(items) == 0 {
				log.Printf("fetch %s got 0 items", s.Name)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("collect headlines failed: %v", err)
		return "", err
	}

	// 按站点顺序展开，同名标题以靠后的站点为准
	var all []collector.Headline
	for _, items := range results {
		all = append(all, items...)
	}
	snippets := a.processor.Process(all)
	log.Printf("collect done, fetched=%d rendered=%d items", len(all), len(snippets))
	return processor.Join(snippets), nil
}
