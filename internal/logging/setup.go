package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"chaton2api-go/internal/config"
	log "github.com/sirupsen/logrus"
)

var (
	logMux        sync.Mutex
	logFileHandle *os.File
	logFilePath   string
)

// Setup configures the global logrus logger using runtime configuration.
// It is idempotent and can be called again on config reload; the most recent call wins.
func Setup(cfg *config.Config) error {
	logMux.Lock()
	defer logMux.Unlock()

	debug := cfg != nil && cfg.Logging.Debug
	var formatter log.Formatter = &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	if debug {
		formatter = &log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339Nano,
		}
	}
	log.SetFormatter(formatter)

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	target := ""
	if cfg != nil {
		target = cfg.Logging.File
	}
	if target != "" && target == logFilePath && logFileHandle != nil {
		return nil
	}

	writers := []io.Writer{os.Stdout}
	if logFileHandle != nil {
		_ = logFileHandle.Close()
		logFileHandle = nil
		logFilePath = ""
	}
	if target != "" {
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			log.SetOutput(os.Stdout)
			return fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			log.SetOutput(os.Stdout)
			return fmt.Errorf("open log file: %w", err)
		}
		logFileHandle = file
		logFilePath = target
		writers = append(writers, file)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}
