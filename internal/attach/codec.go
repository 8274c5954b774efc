// Package attach converts uploaded binary files to and from the textual
// transport encoding embedded in the stored collection: a data-URL carrying
// a MIME type and a base64 payload. Encode and Decode form a bijection.
package attach

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"abrechnung/internal/core"

	"github.com/h2non/filetype"
)

var (
	ErrNotDataURL = errors.New("not a data URL")
	ErrBadPayload = errors.New("invalid base64 payload")
)

const defaultMIME = "application/octet-stream"

// Encode wraps raw bytes into the self-describing transport form.
func Encode(raw []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = defaultMIME
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(raw)
}

// Decode unwraps the transport form back into raw bytes and the embedded
// MIME type.
func Decode(transport string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(transport, "data:")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrNotDataURL
	}
	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing base64 marker", ErrNotDataURL)
	}
	if mimeType == "" {
		mimeType = defaultMIME
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return raw, mimeType, nil
}

// KindForMIME derives the attachment kind from a MIME type: application/pdf
// maps to pdf, everything else to image. Non-image, non-PDF uploads come out
// as image too; callers depend on the closed two-value set.
func KindForMIME(mimeType string) core.AttachmentKind {
	if strings.Contains(mimeType, "pdf") {
		return core.KindPDF
	}
	return core.KindImage
}

// Sniff detects the MIME type from content. Used when an upload arrives
// without a usable Content-Type.
func Sniff(raw []byte) string {
	kind, err := filetype.Match(raw)
	if err != nil || kind == filetype.Unknown {
		return defaultMIME
	}
	return kind.MIME.Value
}

// FromUpload builds an Attachment from an uploaded file. The declared MIME
// type wins when present; otherwise the content is sniffed.
func FromUpload(name string, raw []byte, declaredMIME string) core.Attachment {
	mimeType := declaredMIME
	if mimeType == "" || mimeType == defaultMIME {
		mimeType = Sniff(raw)
	}
	return core.Attachment{
		Name: name,
		Kind: KindForMIME(mimeType),
		Data: Encode(raw, mimeType),
	}
}
