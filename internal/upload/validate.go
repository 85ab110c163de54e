package upload

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/mando-cx/mando-api/internal/apierr"
)

// File describes one uploaded file.
type File struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Check validates files against r. All violations are reported, in order:
// the count first, then each file's size and type.
func (r Rules) Check(files []File) error {
	var issues []apierr.Issue

	switch {
	case len(files) < MinFiles:
		issues = append(issues, apierr.Issue{Path: []string{"files"}, Message: MessageMinFiles})
	case len(files) > MaxFiles:
		issues = append(issues, apierr.Issue{Path: []string{"files"}, Message: MessageMaxFiles})
	}

	for i, f := range files {
		path := []string{"files", strconv.Itoa(i)}
		if f.Size > r.MaxFileSize {
			issues = append(issues, apierr.Issue{Path: path, Message: r.SizeMessage})
		}
		if !r.Allows(f.ContentType) {
			issues = append(issues, apierr.Issue{Path: path, Message: MessageTypeNotAllowed})
		}
	}

	if len(issues) > 0 {
		return apierr.NewValidationError(issues...)
	}
	return nil
}

// Describe builds File values from multipart headers. A part without a
// declared content type is sniffed from its content.
func Describe(headers []*multipart.FileHeader) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		ct := h.Header.Get("Content-Type")
		if ct == "" {
			sniffed, err := sniff(h)
			if err != nil {
				return nil, fmt.Errorf("failed to detect content type of %q: %w", h.Filename, err)
			}
			ct = sniffed
		}
		files = append(files, File{
			Name:        h.Filename,
			Size:        h.Size,
			ContentType: NormalizeContentType(ct),
		})
	}
	return files, nil
}

func sniff(h *multipart.FileHeader) (string, error) {
	f, err := h.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	return mtype.String(), nil
}

// MimeTypes returns the allow-list without duplicates, in declaration order.
func (r Rules) MimeTypes() []string {
	seen := make(map[string]bool, len(r.AllowedTypes))
	out := make([]string, 0, len(r.AllowedTypes))
	for _, t := range r.AllowedTypes {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
