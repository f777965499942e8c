package download

import (
	"fmt"

	"github.com/paramon-tech/tgfetch/internal/telegram"
)

func docMessage(id int, name string) telegram.Message {
	return telegram.Message{
		ID:         id,
		Attachment: &telegram.Attachment{FileName: name, DocID: int64(id), FileSize: 1024},
	}
}

func arwMessages(n int) []telegram.Message {
	msgs := make([]telegram.Message, n)
	for i := range msgs {
		msgs[i] = docMessage(i+1, fmt.Sprintf("DSC%03d.ARW", i+1))
	}
	return msgs
}

func existsSet(paths ...string) func(string) bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return func(p string) bool { return set[p] }
}
