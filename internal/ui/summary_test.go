package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/paramon-tech/tgfetch/internal/download"
)

func TestRenderSummary(t *testing.T) {
	s := download.Summary{
		Downloaded: []download.FileInfo{
			{Name: "DSC002.ARW", Path: "d/DSC002.ARW", Size: 24 << 20, CompletedAt: time.Now()},
		},
		Skipped: []download.SkipRecord{
			{Name: "DSC001.ARW", Path: "d/DSC001.ARW", Reason: download.ReasonExists},
		},
		Failed:  1,
		Ignored: 4,
		Scanned: 7,
	}

	out := RenderSummary("Photos", s)

	for _, want := range []string{
		`Download summary for "Photos":`,
		"Total files processed: 3",
		"Files downloaded: 1",
		"Files skipped: 1",
		"Files failed: 1",
		"DSC002.ARW",
		"24.0 MB",
		"DSC001.ARW",
		"already exists",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in summary, got:\n%s", want, out)
		}
	}
}

func TestRenderSummary_Empty(t *testing.T) {
	out := RenderSummary("Photos", download.Summary{})
	if strings.Contains(out, "Downloaded files:") || strings.Contains(out, "Skipped files:") {
		t.Errorf("Expected no file sections for empty summary, got:\n%s", out)
	}
	if strings.Contains(out, "Files failed") {
		t.Errorf("Expected failure line to be omitted, got:\n%s", out)
	}
}

func TestRenderSummary_Interrupted(t *testing.T) {
	out := RenderSummary("Photos", download.Summary{
		Downloaded:  []download.FileInfo{{Name: "DSC001.ARW", Size: 1}},
		Cancelled:   4,
		Interrupted: true,
	})
	if !strings.Contains(out, "Files not attempted: 4") {
		t.Errorf("Expected cancelled count, got:\n%s", out)
	}
	if !strings.Contains(out, "Total files processed: 5") {
		t.Errorf("Expected cancelled tasks counted as processed, got:\n%s", out)
	}
	if !strings.Contains(out, "Download interrupted.") || strings.Contains(out, "Download process complete!") {
		t.Errorf("Expected interrupted footer, got:\n%s", out)
	}
}

func TestRenderError(t *testing.T) {
	out := RenderError(errors.New("conversation not found"))
	if !strings.Contains(out, "Error: conversation not found") {
		t.Errorf("Expected error text, got %q", out)
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.0 KB",
		5 << 20: "5.0 MB",
		3 << 30: "3.0 GB",
	}
	for in, want := range cases {
		if got := formatFileSize(in); got != want {
			t.Errorf("formatFileSize(%d) = %q, want %q", in, got, want)
		}
	}
}
