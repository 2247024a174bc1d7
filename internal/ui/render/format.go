package render

import (
	"fmt"
	"time"
)

const modifiedLayout = "2006-01-02 15:04"

// FormatFileSize renders a byte count with 1024-based units, one decimal.
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

func formatModified(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(modifiedLayout)
}

func formatCounts(folders, files, selected int) string {
	text := fmt.Sprintf("%d folders, %d files", folders, files)
	if selected > 0 {
		text += fmt.Sprintf(" · %d selected", selected)
	}
	return text
}
