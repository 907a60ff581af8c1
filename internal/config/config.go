package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppCfg struct{ Env, Port, LogLevel string }

type GalleryCfg struct {
	Root       string // server root; static files live under <Root>/img
	PerPage    int
	MaxPerPage int // 0 = unlimited
}

type CacheCfg struct {
	RedisAddr      string
	TTL            time.Duration
	ConnectTimeout time.Duration
	Watch          bool
}

type ClientCfg struct {
	BaseURL string
	Timeout time.Duration
}

type Cfg struct {
	App     AppCfg
	Gallery GalleryCfg
	Cache   CacheCfg
	Client  ClientCfg
}

// ImagesDir is the root of the static /img tree.
func (c Cfg) ImagesDir() string {
	return filepath.Join(c.Gallery.Root, "img")
}

// GalleryDir is the directory the listing is computed from.
func (c Cfg) GalleryDir() string {
	return filepath.Join(c.Gallery.Root, "img", "galeria")
}

// CacheEnabled reports whether a listing cache backend is configured.
func (c Cfg) CacheEnabled() bool {
	return c.Cache.RedisAddr != ""
}

func Load() Cfg {
	// 1) Load .env into process env (if file exists); real env wins.
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	// 2) Read from env via viper
	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "3000")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GALLERY_ROOT", ".")
	viper.SetDefault("GALLERY_PER_PAGE", 30)
	viper.SetDefault("GALLERY_MAX_PER_PAGE", 0)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("REDIS_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("WATCH_GALLERY", true)
	viper.SetDefault("GALLERY_API_URL", "http://localhost:3000")
	viper.SetDefault("CLIENT_TIMEOUT", "30s")

	cfg := Cfg{
		App: AppCfg{
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			LogLevel: strings.ToLower(strings.TrimSpace(viper.GetString("LOG_LEVEL"))),
		},
		Gallery: GalleryCfg{
			Root:       viper.GetString("GALLERY_ROOT"),
			PerPage:    viper.GetInt("GALLERY_PER_PAGE"),
			MaxPerPage: viper.GetInt("GALLERY_MAX_PER_PAGE"),
		},
		Cache: CacheCfg{
			RedisAddr:      strings.TrimSpace(viper.GetString("REDIS_ADDR")),
			TTL:            viper.GetDuration("CACHE_TTL"),
			ConnectTimeout: viper.GetDuration("REDIS_CONNECT_TIMEOUT"),
			Watch:          viper.GetBool("WATCH_GALLERY"),
		},
		Client: ClientCfg{
			BaseURL: strings.TrimRight(viper.GetString("GALLERY_API_URL"), "/"),
			Timeout: viper.GetDuration("CLIENT_TIMEOUT"),
		},
	}

	// 3) Fail fast on nonsense settings
	if cfg.App.Port == "" {
		log.Fatal().Msg("APP_PORT is required")
	}
	if cfg.Gallery.PerPage <= 0 {
		log.Warn().Int("per_page", cfg.Gallery.PerPage).Msg("GALLERY_PER_PAGE must be positive, using 30")
		cfg.Gallery.PerPage = 30
	}
	if cfg.Gallery.MaxPerPage < 0 {
		cfg.Gallery.MaxPerPage = 0
	}
	if cfg.CacheEnabled() && cfg.Cache.TTL <= 0 {
		log.Warn().Dur("ttl", cfg.Cache.TTL).Msg("CACHE_TTL must be positive, using 60s")
		cfg.Cache.TTL = 60 * time.Second
	}

	return cfg
}
