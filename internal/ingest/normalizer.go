package ingest

import (
	"strings"
)

// DefaultImageMimeType is assumed when an image arrives without a mime type.
const DefaultImageMimeType = "image/jpeg"

// Scenario is the tagged union of input modalities.
// The only implementations are ImageScenario and TextScenario.
type Scenario interface {
	isScenario()
	// Name returns "image" or "text".
	Name() string
}

// ImageScenario carries a handwritten note image.
type ImageScenario struct {
	Image    []byte
	MimeType string
}

// TextScenario carries typed note content, kept verbatim.
type TextScenario struct {
	Text string
}

func (ImageScenario) isScenario() {}
func (TextScenario) isScenario()  {}

func (ImageScenario) Name() string { return "image" }
func (TextScenario) Name() string  { return "text" }

// Normalize resolves a request into a Scenario. It performs no I/O.
//
// Image bytes take precedence when both payloads are present.
func Normalize(req Request) (Scenario, error) {
	if len(req.ImageBytes) > 0 {
		mime := strings.ToLower(strings.TrimSpace(req.MimeType))
		if mime == "" {
			mime = DefaultImageMimeType
		}
		if !strings.HasPrefix(mime, "image/") {
			return nil, invalidInput("mime type " + req.MimeType + " is not an image type")
		}
		return ImageScenario{Image: req.ImageBytes, MimeType: mime}, nil
	}

	if strings.TrimSpace(req.TextContent) != "" {
		return TextScenario{Text: req.TextContent}, nil
	}

	return nil, invalidInput("no input data found: provide image bytes or text content")
}
