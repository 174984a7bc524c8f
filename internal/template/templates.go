package template

const configTemplate = `# agentsync configuration.
version: 1

# Directory glob patterns are resolved against, relative to the repository root.
package_root: {{.PackageRoot}}
# Subtree of package_root mirrored into every target.
skills_root: {{.SkillsRoot}}

global_transforms:
  - trailing-newline

sources:
  - patterns:
      - "{{.SkillsRoot}}/**/*"
    targets:
{{- range .Targets}}
      {{.Key}}:
        dir: {{.Dir}}
        description: {{.Description}}
{{- end}}
    transforms:
      - frontmatter-target
`

const skillTemplate = `---
name: {{.Name}}
description: {{.Description}}
---

# {{.Name}}

## When to use

Describe the situations where this skill applies.

## Instructions

1. First step.
2. Second step.
`

const workflowTemplate = `---
name: {{.Name}}
description: {{.Description}}
---

# {{.Name}}

A skill that orchestrates several steps.

## Steps

1. Gather context.
2. Make the change.
3. Verify the result.

## Done when

- The result has been verified.
`

const commandTemplate = `---
name: {{.Name}}
description: {{.Description}}
---

# {{.Name}}

A skill that wraps a command-line tool.

## Usage

` + "```" + `
{{.Name}} [options]
` + "```" + `

## Error handling

Report the command's exit status and the relevant part of its output.
`
