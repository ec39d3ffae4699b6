package main

import (
	"log"

	"github.com/LJTian/NewsBoard/internal/aggregator"
	"github.com/LJTian/NewsBoard/internal/api"
	"github.com/LJTian/NewsBoard/internal/collector"
	"github.com/LJTian/NewsBoard/internal/config"
	"github.com/LJTian/NewsBoard/internal/page"
	"github.com/LJTian/NewsBoard/internal/processor"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// 模板在启动时读取，缺失则直接退出
	tpl, err := page.Load(cfg.TemplatePath)
	if err != nil {
		log.Fatalf("load template failed: %v", err)
	}

	agg := aggregator.New(
		collector.DefaultSites(),
		collector.NewRenderClient(cfg.RenderProxyURL),
		processor.NewSimpleProcessor(),
	)

	r := gin.Default()
	apiServer := api.NewServer(agg, tpl)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}
