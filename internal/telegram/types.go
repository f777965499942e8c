package telegram

type ChatType int

const (
	ChatTypePrivate ChatType = iota
	ChatTypeGroup
	ChatTypeChannel
)

func (t ChatType) String() string {
	switch t {
	case ChatTypePrivate:
		return "private"
	case ChatTypeGroup:
		return "group"
	case ChatTypeChannel:
		return "channel"
	default:
		return "unknown"
	}
}

type Chat struct {
	ID         int64
	AccessHash int64
	Title      string
	Type       ChatType
}

// Attachment is the document carried by a message. FileName is empty when
// the document declares no filename attribute.
type Attachment struct {
	FileName string
	FileSize int64
	// Download location fields
	DocID         int64
	DocAccessHash int64
	DocFileRef    []byte
}

type Message struct {
	ID         int
	ChatID     int64
	Date       int
	Attachment *Attachment
}
