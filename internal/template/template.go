// Package template renders scaffolding: starter configuration files and
// new skill sources under the skills root.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind selects a skill template.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindWorkflow Kind = "workflow"
	KindCommand  Kind = "command"
)

// ErrExists is returned when a scaffold would overwrite a file.
var ErrExists = errors.New("already exists")

// SkillData holds the data passed to skill templates.
type SkillData struct {
	Name        string
	Description string
	Year        int
}

// Generator renders the built-in templates.
type Generator struct {
	skills map[Kind]*template.Template
	config *template.Template
}

// New parses the built-in templates.
func New() (*Generator, error) {
	g := &Generator{skills: make(map[Kind]*template.Template)}

	sources := map[Kind]string{
		KindSkill:    skillTemplate,
		KindWorkflow: workflowTemplate,
		KindCommand:  commandTemplate,
	}
	for kind, content := range sources {
		tmpl, err := template.New(string(kind)).Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", kind, err)
		}
		g.skills[kind] = tmpl
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config template: %w", err)
	}
	g.config = tmpl

	return g, nil
}

// Kinds returns the available skill template kinds, sorted.
func (g *Generator) Kinds() []string {
	kinds := make([]string, 0, len(g.skills))
	for k := range g.skills {
		kinds = append(kinds, string(k))
	}
	slices.Sort(kinds)
	return kinds
}

// ParseKind parses a skill template kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skill":
		return KindSkill, nil
	case "workflow":
		return KindWorkflow, nil
	case "command", "cmd":
		return KindCommand, nil
	default:
		return "", fmt.Errorf("unknown template kind %q (valid: skill, workflow, command)", s)
	}
}

var skillNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateName checks that name is a lowercase, hyphen-separated identifier.
func ValidateName(name string) error {
	if !skillNamePattern.MatchString(name) {
		return fmt.Errorf("invalid skill name %q: use lowercase letters, digits and single hyphens", name)
	}
	return nil
}

// Generate renders a skill of the given kind.
func (g *Generator) Generate(kind Kind, data SkillData) (string, error) {
	tmpl, ok := g.skills[kind]
	if !ok {
		return "", fmt.Errorf("template %s not found", kind)
	}
	if err := ValidateName(data.Name); err != nil {
		return "", err
	}
	if data.Description == "" {
		data.Description = "Describe when to use " + data.Name + "."
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// ValidateSkill checks that content starts with YAML frontmatter holding a
// name and a description.
func ValidateSkill(content string) error {
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return errors.New("skill has no frontmatter")
	}
	raw, _, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return errors.New("skill frontmatter is not terminated")
	}

	var meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return fmt.Errorf("invalid skill frontmatter: %w", err)
	}
	if meta.Name == "" || meta.Description == "" {
		return errors.New("skill frontmatter needs name and description")
	}
	return nil
}

// CreateSkill writes <skillsRoot>/<name>/SKILL.md and returns its path.
// Existing files are never overwritten.
func (g *Generator) CreateSkill(skillsRoot string, kind Kind, data SkillData) (string, error) {
	content, err := g.Generate(kind, data)
	if err != nil {
		return "", err
	}
	if err := ValidateSkill(content); err != nil {
		return "", err
	}

	skillPath := filepath.Join(skillsRoot, data.Name, "SKILL.md")
	if _, err := os.Stat(skillPath); err == nil {
		return "", fmt.Errorf("%s %w", skillPath, ErrExists)
	}

	if err := os.MkdirAll(filepath.Dir(skillPath), 0o750); err != nil {
		return "", fmt.Errorf("failed to create skill directory: %w", err)
	}
	// #nosec G306 - skill sources are checked into the repository
	if err := os.WriteFile(skillPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write skill file: %w", err)
	}
	return skillPath, nil
}
