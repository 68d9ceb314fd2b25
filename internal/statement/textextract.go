package statement

import (
	"fmt"
	"os"
	"os/exec"
)

// TextExtractor turns unlocked document bytes into plain text. The interface
// allows dependency injection so the extractor is testable without a PDF
// toolchain installed.
type TextExtractor interface {
	ExtractText(content []byte) (string, error)
}

// PdftotextExtractor implements TextExtractor using the pdftotext
// command-line tool. This is the production implementation and requires
// pdftotext to be installed.
type PdftotextExtractor struct{}

// NewPdftotextExtractor creates a new PdftotextExtractor instance.
func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{}
}

// ExtractText writes the document to a temporary file and runs
// pdftotext -layout over it. Layout mode keeps statement columns aligned,
// which the line-shape patterns depend on.
func (e *PdftotextExtractor) ExtractText(content []byte) (string, error) {
	pdfFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer os.Remove(pdfFile.Name())

	if _, err := pdfFile.Write(content); err != nil {
		pdfFile.Close()
		return "", fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := pdfFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	textFile := pdfFile.Name() + ".txt"
	defer os.Remove(textFile)

	cmd := exec.Command("pdftotext", "-layout", pdfFile.Name(), textFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}

	output, err := os.ReadFile(textFile) // #nosec G304 -- temp file created above
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	return string(output), nil
}

// MockTextExtractor implements TextExtractor for testing purposes.
// It returns predefined text instead of shelling out to pdftotext.
type MockTextExtractor struct {
	Text string
	Err  error
}

// ExtractText returns the predefined mock text or error.
func (e *MockTextExtractor) ExtractText(content []byte) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Text, nil
}
