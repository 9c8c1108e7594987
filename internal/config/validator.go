package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation error [%s=%s]: %s", e.Field, e.Value, e.Message)
}

var (
	validBackends    = []string{"file", "redis", "sqlite"}
	validSignerModes = []string{"exec", "static"}
)

// Validate reports every problem found, aggregated into one error.
func (c *Config) Validate() error {
	var result *multierror.Error
	add := func(field, value, message string) {
		result = multierror.Append(result, ValidationError{Field: field, Value: value, Message: message})
	}

	if err := validatePort(c.Server.Port); err != nil {
		add("server.port", c.Server.Port, err.Error())
	}

	if err := validateHTTPURL(c.ImageBaseURL()); err != nil {
		add("images.public_base_url", c.Images.PublicBaseURL, err.Error())
	}
	if err := validateHTTPURL(c.Upstream.ChatURL); err != nil {
		add("upstream.chat_url", c.Upstream.ChatURL, err.Error())
	}
	if !strings.Contains(c.Upstream.StorageTemplate, "%s") {
		add("upstream.storage_template", c.Upstream.StorageTemplate, "must contain %s placeholder")
	}
	if c.Upstream.ProxyURL != "" {
		if _, err := url.Parse(c.Upstream.ProxyURL); err != nil {
			add("upstream.proxy_url", c.Upstream.ProxyURL, "invalid URL")
		}
	}
	for field, v := range map[string]int{
		"upstream.dial_timeout_sec":            c.Upstream.DialTimeoutSec,
		"upstream.tls_handshake_timeout_sec":   c.Upstream.TLSHandshakeTimeoutSec,
		"upstream.response_header_timeout_sec": c.Upstream.ResponseHeaderTimeoutSec,
		"upstream.stream_timeout_sec":          c.Upstream.StreamTimeoutSec,
		"upstream.lookup_timeout_sec":          c.Upstream.LookupTimeoutSec,
		"upstream.download_timeout_sec":        c.Upstream.DownloadTimeoutSec,
		"signer.timeout_sec":                   c.Signer.TimeoutSec,
	} {
		if v <= 0 {
			add(field, strconv.Itoa(v), "must be positive")
		}
	}

	backend := strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if !contains(validBackends, backend) {
		add("storage.backend", c.Storage.Backend, "must be one of: "+strings.Join(validBackends, ", "))
	}
	switch backend {
	case "file":
		if strings.TrimSpace(c.Images.Dir) == "" {
			add("images.dir", c.Images.Dir, "required when using file backend")
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			add("storage.redis_addr", c.Storage.RedisAddr, "required when using redis backend")
		}
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			add("storage.sqlite_path", c.Storage.SQLitePath, "required when using sqlite backend")
		}
	}

	mode := strings.ToLower(strings.TrimSpace(c.Signer.Mode))
	if !contains(validSignerModes, mode) {
		add("signer.mode", c.Signer.Mode, "must be one of: "+strings.Join(validSignerModes, ", "))
	}
	switch mode {
	case "exec":
		if strings.TrimSpace(c.Signer.Command) == "" {
			add("signer.command", c.Signer.Command, "required when using exec signer")
		}
	case "static":
		if c.Signer.StaticAuthorization == "" || c.Signer.StaticDate == "" {
			add("signer.static_authorization", c.Signer.StaticAuthorization, "static signer needs both authorization and date")
		}
	}

	return result.ErrorOrNil()
}

// ValidateAndExpandPaths expands ~ in filesystem paths, then validates.
func (c *Config) ValidateAndExpandPaths() error {
	var err error
	if c.Images.Dir, err = expandPath(c.Images.Dir); err != nil {
		return fmt.Errorf("images.dir: %w", err)
	}
	if c.Storage.SQLitePath, err = expandPath(c.Storage.SQLitePath); err != nil {
		return fmt.Errorf("storage.sqlite_path: %w", err)
	}
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return c.Validate()
}

func expandPath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], string(filepath.Separator))), nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return fmt.Errorf("must be numeric")
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an absolute http(s) URL")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
