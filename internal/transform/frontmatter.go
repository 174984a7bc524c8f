package transform

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// frontmatter holds a document split at its YAML frontmatter block.
type frontmatter struct {
	// Raw is the YAML between the delimiters, without the delimiters.
	Raw string
	// Body is everything after the closing delimiter line.
	Body string
	// Found reports whether the document had a frontmatter block.
	Found bool
}

// splitFrontmatter extracts a leading "---" delimited block. Content is
// expected to be LF-normalized. An unterminated block is treated as body.
func splitFrontmatter(content string) frontmatter {
	if !strings.HasPrefix(content, frontmatterDelimiter+"\n") {
		return frontmatter{Body: content}
	}
	rest := content[len(frontmatterDelimiter)+1:]

	var raw string
	var after string
	switch {
	case strings.HasPrefix(rest, frontmatterDelimiter+"\n") || rest == frontmatterDelimiter:
		// ---\n---\n
		after = strings.TrimPrefix(rest, frontmatterDelimiter)
	default:
		idx := strings.Index(rest, "\n"+frontmatterDelimiter+"\n")
		if idx == -1 {
			if !strings.HasSuffix(rest, "\n"+frontmatterDelimiter) {
				return frontmatter{Body: content}
			}
			idx = len(rest) - len(frontmatterDelimiter) - 1
		}
		raw = rest[:idx]
		after = rest[idx+1+len(frontmatterDelimiter):]
	}

	return frontmatter{
		Raw:   raw,
		Body:  strings.TrimPrefix(after, "\n"),
		Found: true,
	}
}

// render joins the frontmatter back onto the body.
func (f frontmatter) render() string {
	if !f.Found {
		return f.Body
	}
	raw := f.Raw
	if raw != "" && !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}
	return frontmatterDelimiter + "\n" + raw + frontmatterDelimiter + "\n" + f.Body
}

// setFrontmatterKey sets key to value in the YAML mapping held by raw,
// keeping the order of existing keys.
func setFrontmatterKey(raw, key, value string) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return "", fmt.Errorf("invalid frontmatter: %w", err)
	}

	var mapping *yaml.Node
	switch {
	case doc.Kind == 0:
		mapping = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}
	case len(doc.Content) == 1 && doc.Content[0].Kind == yaml.MappingNode:
		mapping = doc.Content[0]
	default:
		return "", fmt.Errorf("invalid frontmatter: expected a mapping")
	}

	replaced := false
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
			replaced = true
			break
		}
	}
	if !replaced {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	return buf.String(), nil
}
