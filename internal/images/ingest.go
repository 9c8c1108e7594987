package images

import (
	"context"
	"strings"
	"sync"

	"chaton2api-go/internal/logging"
	mw "chaton2api-go/internal/middleware"
	"chaton2api-go/internal/storage"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PathPrefix is where persisted images are published.
const PathPrefix = "/images/"

// Result is one resolved image reference.
type Result struct {
	URL string
	// Stored is nil for pass-through URLs.
	Stored *StoredImage
}

// StoredImage describes an inline image written to the store.
type StoredImage struct {
	Filename string
	Size     int
}

// Ingestor persists inline images and resolves image references to URLs.
// The write lock is shared by every request in the process.
type Ingestor struct {
	store   storage.ImageStore
	baseURL string
	mu      *sync.Mutex
	newName func(ext string) string
}

// NewIngestor wires a store, the public base URL and the process-wide write lock.
func NewIngestor(store storage.ImageStore, baseURL string, lock *sync.Mutex) *Ingestor {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Ingestor{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		mu:      lock,
		newName: func(ext string) string { return uuid.NewString() + "." + ext },
	}
}

// URLFor builds the public URL for a stored file name.
func (i *Ingestor) URLFor(filename string) string {
	return i.baseURL + PathPrefix + filename
}

// Ingest resolves ref. ok is false when the image must be treated as absent:
// empty reference, undecodable data URI, or a failed write.
func (i *Ingestor) Ingest(ctx context.Context, ref string, logger *log.Entry) (Result, bool) {
	logger = logging.OrDefault(logger)
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Result{}, false
	}
	if !IsDataURI(ref) {
		mw.RecordImageIngest("url", "passthrough")
		return Result{URL: ref}, true
	}

	subtype, data, err := ParseDataURI(ref)
	if err != nil {
		mw.RecordImageIngest("data_uri", "decode_error")
		logger.WithError(err).Warn("skipping undecodable inline image")
		return Result{}, false
	}

	filename := i.newName(ExtensionFor(subtype))
	if err := i.persist(ctx, filename, data); err != nil {
		mw.RecordImageIngest("data_uri", "store_error")
		logger.WithError(err).WithField("filename", filename).Error("failed to persist inline image")
		return Result{}, false
	}
	mw.RecordImageIngest("data_uri", "stored")
	logger.WithFields(log.Fields{"filename": filename, "bytes": len(data)}).Debug("inline image stored")
	return Result{
		URL:    i.URLFor(filename),
		Stored: &StoredImage{Filename: filename, Size: len(data)},
	}, true
}

func (i *Ingestor) persist(ctx context.Context, filename string, data []byte) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.store.Put(ctx, filename, data)
}
