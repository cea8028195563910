package export

import (
	"fmt"
	"os"
	"strings"

	"ejector-tool/internal/format"
	"ejector-tool/internal/model"
)

// WriteTXT writes sizing runs to a text file using formatted output.
func WriteTXT(path string, runs []model.SizingRun) error {
	var b strings.Builder
	for i, r := range runs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(format.FormatResult(&r))
	}
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write txt file: %w", err)
	}
	return nil
}
