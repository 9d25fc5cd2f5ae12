package document

import (
	"path/filepath"
	"slices"
	"strings"
)

// FileType describes the documents the editor registers for.
type FileType struct {
	Name       string
	Factory    string
	Extensions []string
	MimeTypes  []string
}

// Markdown is the file type handled by the WYSIWYG editor.
var Markdown = FileType{
	Name:       "markdown",
	Factory:    "Markdown WYSIWYG Editor",
	Extensions: []string{".md", ".markdown", ".mkd"},
	MimeTypes:  []string{"text/markdown", "text/x-markdown"},
}

// Matches reports whether path carries one of the file type's extensions.
func (f FileType) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.Contains(f.Extensions, ext)
}

// MatchesMime reports whether mime, ignoring parameters, is registered.
func (f FileType) MatchesMime(mime string) bool {
	mime, _, _ = strings.Cut(mime, ";")
	return slices.Contains(f.MimeTypes, strings.ToLower(strings.TrimSpace(mime)))
}

// IsMarkdownPath reports whether path names a markdown file.
func IsMarkdownPath(path string) bool {
	return Markdown.Matches(path)
}
