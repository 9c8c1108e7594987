package config

import (
	"strings"
)

// Config 主配置结构体，按功能域拆分
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" envPrefix:"SERVER_"`
	Upstream UpstreamConfig `yaml:"upstream" json:"upstream" envPrefix:"UPSTREAM_"`
	Images   ImagesConfig   `yaml:"images" json:"images" envPrefix:"IMAGES_"`
	Storage  StorageConfig  `yaml:"storage" json:"storage" envPrefix:"STORAGE_"`
	Signer   SignerConfig   `yaml:"signer" json:"signer" envPrefix:"SIGNER_"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging" envPrefix:"LOG_"`
}

// ServerConfig 监听配置
type ServerConfig struct {
	Host string `yaml:"host" json:"host" env:"HOST"`
	Port string `yaml:"port" json:"port" env:"PORT"`
}

// UpstreamConfig ChatOn 上游地址与传输超时
type UpstreamConfig struct {
	ChatURL                  string `yaml:"chat_url" json:"chat_url" env:"CHAT_URL"`
	StorageTemplate          string `yaml:"storage_template" json:"storage_template" env:"STORAGE_TEMPLATE"`
	StoragePrefix            string `yaml:"storage_prefix" json:"storage_prefix" env:"STORAGE_PREFIX"`
	ProxyURL                 string `yaml:"proxy_url" json:"proxy_url" env:"PROXY_URL"`
	DialTimeoutSec           int    `yaml:"dial_timeout_sec" json:"dial_timeout_sec" env:"DIAL_TIMEOUT_SEC"`
	TLSHandshakeTimeoutSec   int    `yaml:"tls_handshake_timeout_sec" json:"tls_handshake_timeout_sec" env:"TLS_HANDSHAKE_TIMEOUT_SEC"`
	ResponseHeaderTimeoutSec int    `yaml:"response_header_timeout_sec" json:"response_header_timeout_sec" env:"RESPONSE_HEADER_TIMEOUT_SEC"`
	StreamTimeoutSec         int    `yaml:"stream_timeout_sec" json:"stream_timeout_sec" env:"STREAM_TIMEOUT_SEC"`
	LookupTimeoutSec         int    `yaml:"lookup_timeout_sec" json:"lookup_timeout_sec" env:"LOOKUP_TIMEOUT_SEC"`
	DownloadTimeoutSec       int    `yaml:"download_timeout_sec" json:"download_timeout_sec" env:"DOWNLOAD_TIMEOUT_SEC"`
}

// ImagesConfig 内联图片落地与对外地址
type ImagesConfig struct {
	Dir           string `yaml:"dir" json:"dir" env:"DIR"`
	PublicBaseURL string `yaml:"public_base_url" json:"public_base_url" env:"PUBLIC_BASE_URL"`
}

// StorageConfig 图片存储后端
type StorageConfig struct {
	Backend       string `yaml:"backend" json:"backend" env:"BACKEND"` // file, redis, sqlite
	RedisAddr     string `yaml:"redis_addr" json:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" json:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" json:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" json:"redis_prefix" env:"REDIS_PREFIX"`
	SQLitePath    string `yaml:"sqlite_path" json:"sqlite_path" env:"SQLITE_PATH"`
}

// SignerConfig 上游签名来源
type SignerConfig struct {
	Mode                string `yaml:"mode" json:"mode" env:"MODE"` // exec, static
	Command             string `yaml:"command" json:"command" env:"COMMAND"`
	TimeoutSec          int    `yaml:"timeout_sec" json:"timeout_sec" env:"TIMEOUT_SEC"`
	StaticAuthorization string `yaml:"static_authorization" json:"static_authorization" env:"STATIC_AUTHORIZATION"`
	StaticDate          string `yaml:"static_date" json:"static_date" env:"STATIC_DATE"`
}

// LoggingConfig 日志
type LoggingConfig struct {
	Debug bool   `yaml:"debug" json:"debug" env:"DEBUG"`
	File  string `yaml:"file" json:"file" env:"FILE"`
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return strings.TrimSpace(c.Server.Host) + ":" + strings.TrimSpace(c.Server.Port)
}

// ImageBaseURL returns the public base URL without a trailing slash.
func (c *Config) ImageBaseURL() string {
	base := strings.TrimSpace(c.Images.PublicBaseURL)
	if base == "" {
		host := strings.TrimSpace(c.Server.Host)
		if host == "" || host == "0.0.0.0" {
			host = "localhost"
		}
		base = "http://" + host + ":" + strings.TrimSpace(c.Server.Port)
	}
	return strings.TrimRight(base, "/")
}

// Clone returns a shallow copy; all fields are values.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
