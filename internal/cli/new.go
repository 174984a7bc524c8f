package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/logging"
	"github.com/klauern/agentsync/internal/template"
	"github.com/klauern/agentsync/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Scaffold a new skill source under the skills root",
		ArgsUsage: "<name>",
		Description: `Create <skills_root>/<name>/SKILL.md from a template. Run
   'agentsync sync' afterwards to propagate it.

   Examples:
     agentsync new --description "Draft release notes" release-notes
     agentsync new --kind command deploy`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Template kind: skill, workflow, command",
				Value:   string(template.KindSkill),
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Skill description written to the frontmatter",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("new requires exactly 1 argument: <name>")
			}
			kind, err := template.ParseKind(cmd.String("kind"))
			if err != nil {
				return err
			}

			ws, err := loadWorkspace(cmd)
			if err != nil {
				return err
			}
			_, skillsRoot := ws.cfg.Roots(ws.root)

			gen, err := template.New()
			if err != nil {
				return err
			}
			path, err := gen.CreateSkill(skillsRoot, kind, template.SkillData{
				Name:        cmd.Args().First(),
				Description: cmd.String("description"),
			})
			if err != nil {
				return err
			}
			logging.Info("skill created", logging.Path(path), logging.Operation("new"))

			fmt.Fprintf(cmd.Root().Writer, "%s\n", ui.Mark(ui.ToneSuccess, "Created "+path))
			return nil
		},
	}
}
