package codec

import (
	"strings"

	"github.com/adrg/frontmatter"
)

// Meta holds the frontmatter fields the editor cares about.
type Meta struct {
	Title string   `yaml:"title" toml:"title" json:"title"`
	Tags  []string `yaml:"tags" toml:"tags" json:"tags"`
}

// Frontmatter is a markdown source split at the end of its frontmatter block.
// Raw includes the delimiters and the blank lines before the body, so
// Raw + Body is always the original source.
type Frontmatter struct {
	Raw  string
	Body string
	Meta Meta
}

// SplitFrontmatter separates a leading YAML, TOML or JSON frontmatter block.
// Sources without one, or with one that does not parse, come back whole in Body.
func SplitFrontmatter(source string) Frontmatter {
	var meta Meta
	rest, err := frontmatter.Parse(strings.NewReader(source), &meta)
	if err != nil || len(rest) == len(source) {
		return Frontmatter{Body: source}
	}

	body := strings.TrimLeft(string(rest), "\r\n")
	if !strings.HasSuffix(source, body) {
		return Frontmatter{Body: source}
	}

	return Frontmatter{
		Raw:  source[:len(source)-len(body)],
		Body: body,
		Meta: meta,
	}
}

// Title returns the frontmatter title of source, or "".
func Title(source string) string {
	return strings.TrimSpace(SplitFrontmatter(source).Meta.Title)
}
