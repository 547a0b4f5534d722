package quantity

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"storeops/internal/core/apperror"
)

// Default decoded-size ceilings.
const (
	DefaultImageMaxBytes        int64 = 2 * 1024 * 1024
	DefaultDocumentMaxBytes     int64 = 3 * 1024 * 1024
	DefaultBillDocumentMaxBytes int64 = 1536 * 1024
)

// Accepted MIME types per attachment kind.
var (
	ImageMIMETypes    = []string{"image/jpeg", "image/png", "image/webp"}
	DocumentMIMETypes = []string{"application/pdf", "image/jpeg", "image/png"}
)

// Limits carries the configured ceilings for each attachment kind.
type Limits struct {
	ImageMaxBytes        int64
	DocumentMaxBytes     int64
	BillDocumentMaxBytes int64
}

// DefaultLimits returns the standard ceilings.
func DefaultLimits() Limits {
	return Limits{
		ImageMaxBytes:        DefaultImageMaxBytes,
		DocumentMaxBytes:     DefaultDocumentMaxBytes,
		BillDocumentMaxBytes: DefaultBillDocumentMaxBytes,
	}
}

// DecodedSize estimates the decoded byte size of a base64 payload from its
// encoded length (3 bytes per 4 characters, minus padding). A data URL prefix
// ("data:<mime>;base64,") is ignored.
func DecodedSize(encoded string) int64 {
	_, payload := splitDataURL(encoded)
	payload = strings.TrimSpace(payload)
	n := int64(len(payload))
	if n == 0 {
		return 0
	}
	padding := int64(0)
	if strings.HasSuffix(payload, "==") {
		padding = 2
	} else if strings.HasSuffix(payload, "=") {
		padding = 1
	}
	return n*3/4 - padding
}

// ValidateAttachmentSize fails with ATTACHMENT_TOO_LARGE when the decoded size
// of encoded exceeds maxDecodedBytes.
func ValidateAttachmentSize(encoded string, maxDecodedBytes int64) error {
	size := DecodedSize(encoded)
	if size > maxDecodedBytes {
		return apperror.NewTooLarge(size, maxDecodedBytes)
	}
	return nil
}

// ValidateDataURL checks a full "data:<mime>;base64,..." string: the declared
// MIME type must be one of allowed and the decoded payload must fit maxBytes.
func ValidateDataURL(dataURL string, allowed []string, maxBytes int64) error {
	mime, payload := splitDataURL(dataURL)
	if mime == "" {
		return apperror.NewValidation("attachment must be a data URL").
			WithDetail("expected", "data:<mime>;base64,<payload>")
	}
	if !contains(allowed, mime) {
		return apperror.NewUnsupportedMedia(mime, allowed)
	}
	if payload == "" {
		return apperror.NewValidation("attachment is empty")
	}
	return ValidateAttachmentSize(payload, maxBytes)
}

// EncodeAttachment validates raw file bytes and returns a data URL.
// The MIME type is sniffed from content, not trusted from the client, and the
// size check happens before encoding.
func EncodeAttachment(raw []byte, allowed []string, maxBytes int64) (string, error) {
	if len(raw) == 0 {
		return "", apperror.NewValidation("attachment is empty")
	}
	detected := mimetype.Detect(raw)
	mime := detected.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	if !contains(allowed, mime) {
		return "", apperror.NewUnsupportedMedia(mime, allowed)
	}
	if size := int64(len(raw)); size > maxBytes {
		return "", apperror.NewTooLarge(size, maxBytes)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(raw), nil
}

// splitDataURL returns (mime, payload). For a bare base64 string mime is empty.
func splitDataURL(s string) (string, string) {
	if !strings.HasPrefix(s, "data:") {
		return "", s
	}
	header, payload, ok := strings.Cut(s, ",")
	if !ok {
		return "", ""
	}
	header = strings.TrimPrefix(header, "data:")
	mime, _, _ := strings.Cut(header, ";")
	return strings.ToLower(mime), payload
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
