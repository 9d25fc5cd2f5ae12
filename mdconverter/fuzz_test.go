package mdconverter

import (
	"testing"

	"github.com/rgonek/md-wysiwyg/converter"
)

// FuzzConvertMarkdown checks that any input parses and that the serialized
// form parses again without error.
func FuzzConvertMarkdown(f *testing.F) {
	seeds := []string{
		"",
		"Hello World",
		"**bold** _italic_ ~~strike~~ `code`",
		"> quote\n>\n> - item",
		"```go\nfmt.Println(\"x\")\n```",
		"<div>\n<b>raw</b>\n</div>",
		"| A | B |\n| --- | --- |\n| 1 | 2 |",
		"- [ ] task\n  - [x] nested\n    1. ordered",
		"line\\\nbreak and ![img](a.png)",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	conv, err := New(ReverseConfig{})
	if err != nil {
		f.Fatalf("failed to create converter: %v", err)
	}
	serializer, err := converter.New(converter.Config{})
	if err != nil {
		f.Fatalf("failed to create serializer: %v", err)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		result, err := conv.Convert(markdown)
		if err != nil {
			t.Fatalf("convert returned error: %v", err)
		}
		out, err := serializer.Convert(result.Doc)
		if err != nil {
			t.Fatalf("serialize returned error: %v", err)
		}
		if _, err := conv.Convert(out.Markdown); err != nil {
			t.Fatalf("reparse returned error: %v", err)
		}
	})
}
