package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// RenderDefaultYAML renders a YAML config with defaults from
// GetConfigOptions. Dotted keys become sections and each option carries its
// comment.
func RenderDefaultYAML() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	sections := map[string]*yaml.Node{}

	for _, o := range GetConfigOptions() {
		target, key := root, o.Key
		if section, rest, ok := strings.Cut(o.Key, "."); ok {
			node, seen := sections[section]
			if !seen {
				node = &yaml.Node{Kind: yaml.MappingNode}
				sections[section] = node
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: section},
					node,
				)
			}
			target, key = node, rest
		}

		value := &yaml.Node{}
		if err := value.Encode(o.Default); err != nil {
			return "", err
		}
		target.Content = append(target.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key, HeadComment: o.Comment},
			value,
		)
	}

	doc := &yaml.Node{Kind: yaml.DocumentNode, HeadComment: "mdw configuration (YAML)", Content: []*yaml.Node{root}}
	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return b.String(), nil
}
