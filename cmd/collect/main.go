package main

import (
	"fmt"
	"log"
	"os"

	"github.com/LJTian/NewsBoard/internal/aggregator"
	"github.com/LJTian/NewsBoard/internal/collector"
	"github.com/LJTian/NewsBoard/internal/config"
	"github.com/LJTian/NewsBoard/internal/page"
	"github.com/LJTian/NewsBoard/internal/processor"
	"github.com/urfave/cli/v2"
)

// 一个仅执行一次采集任务的命令行入口：结果写到标准输出
func main() {
	cfg := config.Load()

	app := &cli.App{
		Name:  "collect",
		Usage: "fetch headlines once and print the rendered fragment",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "proxy",
				Usage: "rendering proxy base URL",
				Value: cfg.RenderProxyURL,
			},
			&cli.StringFlag{
				Name:  "template",
				Usage: "substitute the fragment into this template and print the full page",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("collect failed: %v", err)
	}
}

func run(c *cli.Context) error {
	var tpl *page.Template
	if path := c.String("template"); path != "" {
		t, err := page.Load(path)
		if err != nil {
			return err
		}
		tpl = t
	}

	agg := aggregator.New(
		collector.DefaultSites(),
		collector.NewRenderClient(c.String("proxy")),
		processor.NewSimpleProcessor(),
	)
	body, err := agg.Collect(c.Context)
	if err != nil {
		return err
	}

	if tpl != nil {
		body = tpl.Render(map[string]string{"body": body})
	}
	_, err = fmt.Fprintln(c.App.Writer, body)
	return err
}
