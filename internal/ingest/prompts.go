package ingest

import "fmt"

const imagePrompt = `Analyze this handwritten note.
Return a VALID JSON object (no markdown) with:
1. "title": A punchy, 3-word max title.
2. "transcription": Verbatim text.
3. "summary": Concise 2-sentence summary.
4. "tags": Array of 3-5 topic keywords.`

const textPromptTemplate = `Analyze the following note content.
Return a VALID JSON object (no markdown) with:
1. "title": A punchy, 3-word max title.
2. "summary": Concise 2-sentence summary.
3. "tags": Array of 3-5 topic keywords.

CONTENT:
"%s"`

// ImagePrompt returns the prompt sent with an image.
func ImagePrompt() string {
	return imagePrompt
}

// TextPrompt returns the prompt for typed content.
func TextPrompt(content string) string {
	return fmt.Sprintf(textPromptTemplate, content)
}
