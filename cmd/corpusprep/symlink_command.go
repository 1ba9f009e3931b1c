package main

import (
	"github.com/spf13/cobra"

	"corpusprep/internal/symlinks"
)

func newSymlinkCommand(ctx *commandContext) *cobra.Command {
	var files []string
	var links []string
	var force bool

	cmd := &cobra.Command{
		Use:   "symlink",
		Short: "Create symlinks aliasing dataset files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := symlinks.Create(files, links, symlinks.Options{
				Force:  force,
				Logger: ctx.loggerValue(),
			})
			status := newStatusPrinter(cmd.OutOrStdout())
			for _, link := range created {
				status.ok("Linked", "%s -> %s", link.Path, link.Target)
			}
			if err != nil {
				status.fail("Linked", "stopped after %d of %d link(s)", len(created), len(links))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&files, "files", nil, "Existing files to link to (repeatable)")
	cmd.Flags().StringSliceVar(&links, "links", nil, "Link paths, one per --files entry (repeatable)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace existing files or links at the link paths")
	return cmd
}
