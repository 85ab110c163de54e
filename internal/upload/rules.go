// Package upload holds the rule sets that uploaded files are checked against.
// Files are validated and described, never stored.
package upload

import (
	"strings"
)

// Kind names a rule set.
type Kind string

const (
	// KindAsset accepts large media and document files.
	KindAsset Kind = "asset"
	// KindProcessed accepts documents that are processed into text.
	KindProcessed Kind = "processed"
)

// File count bounds shared by every rule set.
const (
	MinFiles = 1
	MaxFiles = 10
)

// Messages reported for rule violations.
const (
	MessageTypeNotAllowed = "File type is not allowed"
	MessageMinFiles       = "Min File count are 1"
	MessageMaxFiles       = "Max File count are 10"
)

// Rules is one set of upload constraints.
type Rules struct {
	Kind         Kind
	MaxFileSize  int64
	SizeMessage  string
	AllowedTypes []string
}

var documentTypes = []string{
	"application/pdf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/vnd.oasis.opendocument.text",
	"application/vnd.oasis.opendocument.presentation",
	"text/html",
	"text/html;charset=utf-8",
	"text/markdown",
	"text/plain",
	"text/plain;charset=utf-8",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

var mediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
	"image/avif",
	"image/apng",
	"image/bmp",
	"image/tiff",
	"image/tiff;baseline",
	"image/tiff;subtype=planar",
	"image/tiff;subtype=rgb",
	"video/mp4",
	"video/webm",
	"video/ogg",
	"video/avi",
	"video/mov",
	"video/wmv",
	"video/flv",
	"video/mkv",
	"audio/mpeg",
	"audio/wav",
	"audio/ogg",
	"audio/webm",
	"application/octet-stream",
}

// AssetRules accept up to 5 GiB per file of documents, images, video and audio.
var AssetRules = Rules{
	Kind:         KindAsset,
	MaxFileSize:  5 << 30,
	SizeMessage:  "File size is bigger that 5GB",
	AllowedTypes: append(append([]string{}, documentTypes...), mediaTypes...),
}

// ProcessedRules accept up to 10 MiB per file of documents only.
var ProcessedRules = Rules{
	Kind:         KindProcessed,
	MaxFileSize:  10 << 20,
	SizeMessage:  "File size is bigger that 10MB",
	AllowedTypes: documentTypes,
}

// RulesFor returns the rule set for kind.
func RulesFor(kind Kind) (Rules, bool) {
	switch kind {
	case KindAsset:
		return AssetRules, true
	case KindProcessed:
		return ProcessedRules, true
	default:
		return Rules{}, false
	}
}

// Allows reports whether contentType is on the allow-list. Matching ignores
// case and whitespace around parameters.
func (r Rules) Allows(contentType string) bool {
	ct := NormalizeContentType(contentType)
	if ct == "" {
		return false
	}
	for _, allowed := range r.AllowedTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// NormalizeContentType lower-cases a media type and removes the whitespace
// around its parameters, so "text/plain; charset=UTF-8" becomes
// "text/plain;charset=utf-8".
func NormalizeContentType(contentType string) string {
	parts := strings.Split(strings.ToLower(contentType), ";")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ";")
}
