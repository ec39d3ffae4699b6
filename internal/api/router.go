package api

import (
	"context"
	"log"
	"net/http"

	"github.com/LJTian/NewsBoard/internal/page"
	"github.com/gin-gonic/gin"
)

// Collector 产出待插入页面的标题片段
type Collector interface {
	Collect(ctx context.Context) (string, error)
}

type Server struct {
	collector Collector
	page      *page.Template
}

func NewServer(c Collector, tpl *page.Template) *Server {
	return &Server{collector: c, page: tpl}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/news", s.news)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) news(c *gin.Context) {
	body, err := s.collector.Collect(c.Request.Context())
	if err != nil {
		log.Printf("news: %v", err)
		_ = c.Error(err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html := s.page.Render(map[string]string{"body": body})
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
