package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

// OpsHTTP 运维端口：/health + /metrics
type OpsHTTP struct {
	Host string
	Port int
}

type App struct {
	Name string
	Env  string // "production" 时 session cookie 带 Secure
	HTTP HTTP
	Ops  OpsHTTP
}

type Log struct {
	Level string
	JSON  bool
}

// Session 会话 cookie 的签名配置（HS256）
type Session struct {
	Secret  string
	Issuer  string
	TTLDays int
}

type Redis struct {
	Addr       string `mapstructure:"addr"` // 留空则关闭 feed 缓存
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	FeedTTLSec int    `mapstructure:"feed_ttl_sec"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("Session.TTLDays", 7)
	v.SetDefault("Redis.feed_ttl_sec", 30)

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	if c.Session.Secret == "" {
		log.Fatalf("session secret required (Session.Secret / APP_SESSION_SECRET)")
	}
	return &c
}
