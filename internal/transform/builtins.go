package transform

import (
	"fmt"
	"path"
	"strings"
)

// Builtin transform names.
const (
	NameTrailingNewline        = "trailing-newline"
	NameTrimTrailingWhitespace = "trim-trailing-whitespace"
	NameStripFrontmatter       = "strip-frontmatter"
	NameFrontmatterTarget      = "frontmatter-target"
	NameGeneratedHeader        = "generated-header"
	NameExpandPlaceholders     = "expand-placeholders"
)

func builtins() []Transform {
	return []Transform{
		{
			Name:        NameTrailingNewline,
			Description: "End content with exactly one newline",
			Fn:          TrailingNewline,
		},
		{
			Name:        NameTrimTrailingWhitespace,
			Description: "Remove spaces and tabs at the end of every line",
			Fn:          TrimTrailingWhitespace,
		},
		{
			Name:        NameStripFrontmatter,
			Description: "Drop a leading YAML frontmatter block",
			Fn:          StripFrontmatter,
		},
		{
			Name:        NameFrontmatterTarget,
			Description: "Record the target key as `target` in existing YAML frontmatter",
			Fn:          FrontmatterTarget,
		},
		{
			Name:        NameGeneratedHeader,
			Description: "Insert a do-not-edit banner naming the source file",
			Fn:          GeneratedHeader,
		},
		{
			Name:        NameExpandPlaceholders,
			Description: "Replace {{target_key}}, {{source_path}}, {{target_path}} and {{target_dir}} (the destination file's directory)",
			Fn:          ExpandPlaceholders,
		},
	}
}

// TrailingNewline ends non-empty content with exactly one newline.
func TrailingNewline(content string, _ Context) (string, error) {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return "", nil
	}
	return trimmed + "\n", nil
}

// TrimTrailingWhitespace strips spaces and tabs at line ends.
func TrimTrailingWhitespace(content string, _ Context) (string, error) {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n"), nil
}

// StripFrontmatter removes a leading frontmatter block.
func StripFrontmatter(content string, _ Context) (string, error) {
	return splitFrontmatter(content).Body, nil
}

// FrontmatterTarget sets `target: <key>` in the document's frontmatter.
// Documents without frontmatter are returned unchanged.
func FrontmatterTarget(content string, ctx Context) (string, error) {
	fm := splitFrontmatter(content)
	if !fm.Found {
		return content, nil
	}
	raw, err := setFrontmatterKey(fm.Raw, "target", ctx.TargetKey)
	if err != nil {
		return "", err
	}
	fm.Raw = raw
	return fm.render(), nil
}

var hashCommentExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".toml": true,
	".sh":   true,
	".py":   true,
}

// GeneratedHeader inserts a banner telling readers the file is generated.
// Markdown gets an HTML comment after any frontmatter; hash-comment formats
// get a "#" line after any shebang. Other extensions are left alone.
func GeneratedHeader(content string, ctx Context) (string, error) {
	notice := fmt.Sprintf("Generated from %s by agentsync. Do not edit; run `agentsync sync` instead.", ctx.SourceRelative)
	ext := strings.ToLower(ctx.Extension)

	switch {
	case ext == ".md" || ext == ".mdc" || ext == ".markdown":
		fm := splitFrontmatter(content)
		fm.Body = "<!-- " + notice + " -->\n\n" + fm.Body
		return fm.render(), nil

	case hashCommentExtensions[ext]:
		banner := "# " + notice + "\n"
		if strings.HasPrefix(content, "#!") {
			first, rest, _ := strings.Cut(content, "\n")
			return first + "\n" + banner + rest, nil
		}
		return banner + content, nil

	default:
		return content, nil
	}
}

// ExpandPlaceholders substitutes context values for {{...}} tokens.
// {{target_dir}} is the directory holding the destination file, not the
// target's configured root.
func ExpandPlaceholders(content string, ctx Context) (string, error) {
	r := strings.NewReplacer(
		"{{target_key}}", ctx.TargetKey,
		"{{target_dir}}", path.Dir(ctx.TargetRelative),
		"{{source_path}}", ctx.SourceRelative,
		"{{target_path}}", ctx.TargetRelative,
	)
	return r.Replace(content), nil
}
