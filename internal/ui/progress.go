package ui

import (
	"fmt"
	"strings"
)

// FormatProgress renders a fixed-width bar followed by "done/total", like
// "[###-----] 3/8". An empty section renders an empty bar.
func FormatProgress(completed, total, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := 0
	if total > 0 {
		if completed > total {
			completed = total
		}
		filled = completed * width / total
	}
	return fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat("-", width-filled), completed, total)
}
