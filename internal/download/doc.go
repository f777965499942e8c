// Package download turns a conversation's message history into files on
// disk. It filters attachments by name, skips files that already exist
// locally and runs the remaining transfers in fixed-size concurrent windows.
package download
