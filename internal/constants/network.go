package constants

import "time"

// HTTP Client 连接池配置
const (
	BaseMaxIdleConns        = 256
	BaseMaxIdleConnsPerHost = 64
	BaseIdleConnTimeout     = 90 * time.Second

	// Keep-Alive 设置
	DefaultKeepAlive = 30 * time.Second
)

// HTTP 超时配置
const (
	DefaultDialTimeout           = 10 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultResponseHeaderTimeout = 60 * time.Second
	DefaultExpectContinueTimeout = 2 * time.Second
)

// Inbound server deadlines. Write deadlines stay unset so long streams survive.
const (
	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 60 * time.Second
	ServerIdleTimeout       = 120 * time.Second
)
