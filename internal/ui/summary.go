package ui

import (
	"fmt"
	"strings"

	"github.com/paramon-tech/tgfetch/internal/download"
)

// RenderSummary formats the end-of-run report printed to stdout.
func RenderSummary(chatName string, s download.Summary) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Download summary for %q:", chatName)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Total files processed: %d\n", s.Processed())
	fmt.Fprintf(&b, "- Files downloaded: %d\n", len(s.Downloaded))
	fmt.Fprintf(&b, "- Files skipped: %d\n", len(s.Skipped))
	if s.Failed > 0 {
		b.WriteString(StyleError.Render(fmt.Sprintf("- Files failed: %d", s.Failed)))
		b.WriteString("\n")
	}
	if s.Cancelled > 0 {
		b.WriteString(StyleError.Render(fmt.Sprintf("- Files not attempted: %d", s.Cancelled)))
		b.WriteString("\n")
	}
	b.WriteString(StyleMuted.Render(fmt.Sprintf("  (%d messages scanned, %d without a matching file)", s.Scanned, s.Ignored)))
	b.WriteString("\n")

	if len(s.Downloaded) > 0 {
		b.WriteString("\nDownloaded files:\n")
		for _, f := range s.Downloaded {
			b.WriteString(StyleDownloaded.Render("- " + f.Name))
			b.WriteString(StyleMuted.Render(" (" + formatFileSize(f.Size) + ")"))
			b.WriteString("\n")
		}
	}

	if len(s.Skipped) > 0 {
		b.WriteString("\nSkipped files:\n")
		for _, f := range s.Skipped {
			b.WriteString(StyleSkipped.Render("- " + f.Name))
			b.WriteString(StyleMuted.Render(" (" + f.Reason + ")"))
			b.WriteString("\n")
		}
	}

	if s.Interrupted {
		b.WriteString("\n")
		b.WriteString(StyleError.Render("Download interrupted."))
		b.WriteString("\n")
	} else {
		b.WriteString("\nDownload process complete!\n")
	}
	return b.String()
}

// RenderError formats a fatal error for stderr.
func RenderError(err error) string {
	return StyleError.Render("Error: "+err.Error()) + "\n"
}

func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
