package config

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	RenderProxyURL string
	TemplatePath   string
}

func Load() *Config {
	// .env 可选，不存在时直接使用环境变量与默认值
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warn: load .env: %v", err)
	}

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "8080"),
		RenderProxyURL: getEnv("RENDER_PROXY_URL", "http://localhost:8050"),
		TemplatePath:   getEnv("TEMPLATE_PATH", "index.html"),
	}

	log.Printf("config loaded: port=%s proxy=%s template=%s", cfg.AppPort, cfg.RenderProxyURL, cfg.TemplatePath)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
