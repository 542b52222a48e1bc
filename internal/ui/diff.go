package ui

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

// WriteDiff writes a unified diff, highlighted when color is set.
func WriteDiff(w io.Writer, diff string, color bool) error {
	if !color {
		_, err := io.WriteString(w, diff)
		return err
	}
	if err := quick.Highlight(w, diff, "diff", "terminal256", "monokai"); err != nil {
		return fmt.Errorf("failed to highlight diff: %w", err)
	}
	return nil
}
