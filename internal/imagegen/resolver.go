package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"chaton2api-go/internal/constants"
	apperrors "chaton2api-go/internal/errors"
	"chaton2api-go/internal/logging"
	mw "chaton2api-go/internal/middleware"
	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

var markdownImage = regexp.MustCompile(`!\[.*?]\((.*?)\)`)

const maxLookupBody = 64 * 1024

// Fetcher is the HTTP GET the resolver needs.
type Fetcher interface {
	Get(ctx context.Context, endpoint, rawURL string, limit int64) ([]byte, error)
}

// Options overrides the vendor storage constants.
type Options struct {
	StorageTemplate string
	StoragePrefix   string
	LookupTimeout   time.Duration
	DownloadTimeout time.Duration
}

// Resolver turns generated markdown into image bytes.
type Resolver struct {
	fetch Fetcher
	opts  Options
}

func NewResolver(fetch Fetcher, opts Options) *Resolver {
	if opts.StorageTemplate == "" {
		opts.StorageTemplate = constants.UpstreamStorageTemplate
	}
	if opts.StoragePrefix == "" {
		opts.StoragePrefix = constants.UpstreamStoragePrefix
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = constants.StorageLookupTimeout
	}
	if opts.DownloadTimeout <= 0 {
		opts.DownloadTimeout = constants.ImageDownloadTimeout
	}
	return &Resolver{fetch: fetch, opts: opts}
}

// ValidateFormat accepts an absent format or b64_json.
func ValidateFormat(format string) error {
	format = strings.TrimSpace(format)
	if format == "" || strings.EqualFold(format, string(openai.CreateImageResponseFormatB64JSON)) {
		return nil
	}
	return fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
}

// ExtractImagePath returns the target of the first markdown image in text.
func ExtractImagePath(text string) (string, error) {
	m := markdownImage.FindStringSubmatch(text)
	if len(m) < 2 || strings.TrimSpace(m[1]) == "" {
		return "", apperrors.ErrCannotExtractPath
	}
	return strings.TrimSpace(m[1]), nil
}

// StorageKey strips the vendor placeholder host from a generated path.
func StorageKey(path, prefix string) string {
	if prefix == "" {
		prefix = constants.UpstreamStoragePrefix
	}
	return strings.TrimPrefix(path, prefix)
}

// Resolve runs extract → lookup → download and returns base64 image data.
func (r *Resolver) Resolve(ctx context.Context, text string, logger *log.Entry) (string, error) {
	logger = logging.OrDefault(logger)

	path, err := ExtractImagePath(text)
	mw.RecordImageGeneration("extract", err)
	if err != nil {
		logger.WithField("text", truncate(text, 200)).Warn("generated text has no image reference")
		return "", err
	}
	key := StorageKey(path, r.opts.StoragePrefix)

	finalURL, err := r.lookup(ctx, key)
	mw.RecordImageGeneration("lookup", err)
	if err != nil {
		logger.WithError(err).WithField("storage_key", key).Warn("storage lookup failed")
		return "", err
	}

	data, err := r.download(ctx, finalURL)
	mw.RecordImageGeneration("download", err)
	if err != nil {
		logger.WithError(err).Warn("generated image download failed")
		return "", err
	}
	logger.WithFields(log.Fields{"storage_key": key, "bytes": len(data)}).Info("generated image resolved")
	return base64.StdEncoding.EncodeToString(data), nil
}

func (r *Resolver) lookup(ctx context.Context, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.LookupTimeout)
	defer cancel()

	storageURL := r.storageURL(key)
	body, err := r.fetch.Get(ctx, "storage_lookup", storageURL, maxLookupBody)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrCannotResolveURL, err)
	}
	getURL := gjson.GetBytes(body, "getUrl")
	if getURL.Type != gjson.String || strings.TrimSpace(getURL.String()) == "" {
		return "", fmt.Errorf("%w: response has no getUrl", apperrors.ErrCannotResolveURL)
	}
	return strings.TrimSpace(getURL.String()), nil
}

func (r *Resolver) storageURL(key string) string {
	if strings.Contains(r.opts.StorageTemplate, "%s") {
		return fmt.Sprintf(r.opts.StorageTemplate, key)
	}
	return strings.TrimRight(r.opts.StorageTemplate, "/") + "/" + url.PathEscape(key)
}

func (r *Resolver) download(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opts.DownloadTimeout)
	defer cancel()

	data, err := r.fetch.Get(ctx, "image_download", rawURL, constants.MaxImageDownloadBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCannotDownload, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty body", apperrors.ErrCannotDownload)
	}
	return data, nil
}

// Response builds the client payload for one resolved image.
func Response(b64 string) openai.ImageResponse {
	return openai.ImageResponse{
		Created: time.Now().Unix(),
		Data:    []openai.ImageResponseDataInner{{B64JSON: b64}},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
