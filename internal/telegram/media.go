package telegram

import (
	"context"
	"fmt"
	"os"

	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/tg"
)

const partSuffix = ".part"

// DownloadAttachment writes the document carried by msg to destPath. Data
// goes to a temporary ".part" file that is renamed into place only after the
// transfer completes, so a failed download never leaves a file at destPath.
func (c *Client) DownloadAttachment(ctx context.Context, msg Message, destPath string) (int64, error) {
	api, err := c.apiClient()
	if err != nil {
		return 0, err
	}

	info := msg.Attachment
	if info == nil || info.DocID == 0 {
		return 0, fmt.Errorf("message %d: no document info available", msg.ID)
	}

	loc := &tg.InputDocumentFileLocation{
		ID:            info.DocID,
		AccessHash:    info.DocAccessHash,
		FileReference: info.DocFileRef,
		ThumbSize:     "", // full file
	}

	tmp := destPath + partSuffix
	f, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	if _, err := downloader.NewDownloader().Download(api, loc).Stream(ctx, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, err
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, err
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return 0, err
	}
	return st.Size(), nil
}

// extractAttachment maps the raw media of a message onto an Attachment.
// Only documents qualify; photos, polls, geo and the rest yield nil.
func extractAttachment(media tg.MessageMediaClass) *Attachment {
	m, ok := media.(*tg.MessageMediaDocument)
	if !ok {
		return nil
	}
	doc, ok := m.Document.(*tg.Document)
	if !ok {
		return nil
	}

	return &Attachment{
		FileName:      documentFileName(doc.Attributes),
		FileSize:      doc.Size,
		DocID:         doc.ID,
		DocAccessHash: doc.AccessHash,
		DocFileRef:    doc.FileReference,
	}
}

// documentFileName returns the first non-empty declared filename.
func documentFileName(attrs []tg.DocumentAttributeClass) string {
	for _, attr := range attrs {
		if a, ok := attr.(*tg.DocumentAttributeFilename); ok && a.FileName != "" {
			return a.FileName
		}
	}
	return ""
}
