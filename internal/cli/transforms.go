package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/klauern/agentsync/internal/transform"
)

func transformsCommand() *cli.Command {
	return &cli.Command{
		Name:  "transforms",
		Usage: "List the transforms available to configuration files",
		Action: func(_ context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			list := transform.Default().List()
			fmt.Fprintf(w, "%-26s %s\n", "NAME", "DESCRIPTION")
			for _, t := range list {
				fmt.Fprintf(w, "%-26s %s\n", t.Name, t.Description)
			}
			fmt.Fprintf(w, "\nTotal: %d transform(s)\n", len(list))
			return nil
		},
	}
}
