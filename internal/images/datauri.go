package images

import (
	"encoding/base64"
	"errors"
	"strings"
)

const base64Marker = "base64,"

var (
	errNotDataURI   = errors.New("not a data URI")
	errNoBase64     = errors.New("data URI has no base64 payload")
	errEmptyPayload = errors.New("data URI payload is empty")
)

// IsDataURI reports whether ref carries an inline image.
func IsDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// ParseDataURI splits "data:image/<subtype>;base64,<payload>" and decodes the payload.
// The returned subtype is lower-cased with parameters removed.
func ParseDataURI(ref string) (string, []byte, error) {
	if !IsDataURI(ref) {
		return "", nil, errNotDataURI
	}
	idx := strings.Index(ref, base64Marker)
	if idx < 0 {
		return "", nil, errNoBase64
	}
	header := ref[len("data:"):idx]
	payload := strings.TrimSpace(ref[idx+len(base64Marker):])
	if payload == "" {
		return "", nil, errEmptyPayload
	}

	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(header, ";", 2)[0]))
	subtype := ""
	if slash := strings.IndexByte(mediaType, '/'); slash >= 0 {
		subtype = mediaType[slash+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// some clients drop the padding
		if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
			return subtype, raw, nil
		}
		return "", nil, err
	}
	return subtype, data, nil
}

// ExtensionFor maps a declared image subtype to the stored file extension.
func ExtensionFor(subtype string) string {
	switch strings.ToLower(strings.TrimSpace(subtype)) {
	case "png":
		return "png"
	case "jpeg", "jpg":
		return "jpg"
	default:
		return "jpg"
	}
}

// ContentTypeFor returns the MIME type served for a stored file name.
func ContentTypeFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "image/png"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
