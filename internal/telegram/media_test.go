package telegram

import (
	"testing"

	"github.com/gotd/td/tg"
)

func TestExtractAttachment_Document(t *testing.T) {
	media := &tg.MessageMediaDocument{
		Document: &tg.Document{
			ID:            42,
			AccessHash:    7,
			FileReference: []byte{1, 2},
			DCID:          2,
			MimeType:      "image/x-sony-arw",
			Size:          25 << 20,
			Attributes: []tg.DocumentAttributeClass{
				&tg.DocumentAttributeImageSize{W: 6000, H: 4000},
				&tg.DocumentAttributeFilename{FileName: ""},
				&tg.DocumentAttributeFilename{FileName: "DSC001.ARW"},
				&tg.DocumentAttributeFilename{FileName: "second.ARW"},
			},
		},
	}

	a := extractAttachment(media)
	if a == nil {
		t.Fatal("Expected attachment, got nil")
	}
	if a.FileName != "DSC001.ARW" {
		t.Errorf("Expected first non-empty filename, got %q", a.FileName)
	}
	if a.DocID != 42 || a.DocAccessHash != 7 || len(a.DocFileRef) != 2 {
		t.Errorf("Expected location fields copied, got %+v", a)
	}
	if a.FileSize != 25<<20 {
		t.Errorf("Expected size copied, got %d", a.FileSize)
	}
}

func TestExtractAttachment_NoFilename(t *testing.T) {
	a := extractAttachment(&tg.MessageMediaDocument{
		Document: &tg.Document{ID: 1, Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeAnimated{}}},
	})
	if a == nil {
		t.Fatal("Expected attachment for document without filename")
	}
	if a.FileName != "" {
		t.Errorf("Expected empty filename, got %q", a.FileName)
	}
}

func TestExtractAttachment_NonDocument(t *testing.T) {
	cases := []tg.MessageMediaClass{
		nil,
		&tg.MessageMediaPhoto{},
		&tg.MessageMediaGeo{},
		&tg.MessageMediaDocument{Document: &tg.DocumentEmpty{ID: 3}},
	}
	for _, media := range cases {
		if a := extractAttachment(media); a != nil {
			t.Errorf("Expected nil attachment for %T, got %+v", media, a)
		}
	}
}

func TestConvertMessage(t *testing.T) {
	msg := convertMessage(99, &tg.Message{
		ID:   5,
		Date: 1700000000,
		Media: &tg.MessageMediaDocument{Document: &tg.Document{
			ID:         8,
			Attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeFilename{FileName: "DSC005.ARW"}},
		}},
	})
	if msg.ID != 5 || msg.ChatID != 99 || msg.Date != 1700000000 {
		t.Errorf("Unexpected message header: %+v", msg)
	}
	if msg.Attachment == nil || msg.Attachment.FileName != "DSC005.ARW" {
		t.Errorf("Expected DSC005.ARW attachment, got %+v", msg.Attachment)
	}
}
