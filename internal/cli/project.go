package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/worklog/internal/core/patch"
	"github.com/example/worklog/internal/core/project"
	"github.com/example/worklog/internal/ports/primary"
)

// ProjectCmd groups the project commands.
func ProjectCmd() *cobra.Command {
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	addTokenFlag(projectCmd)

	projectCreateCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			colorCode, _ := cmd.Flags().GetString("color")

			req := primary.CreateProjectRequest{Name: args[0], Color: colorCode}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			return withOwner(cmd, func(s *session, owner string) error {
				req.OwnerID = owner
				_, err := s.container.ProjectAdapter(cmd.OutOrStdout()).Create(s.ctx, req)
				return err
			})
		},
	}
	projectCreateCmd.Flags().StringP("description", "d", "", "Project description")
	projectCreateCmd.Flags().String("color", "", "Color as #RRGGBB (default "+project.DefaultColor+")")

	projectListCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.ProjectAdapter(cmd.OutOrStdout()).List(s.ctx, owner, all)
			})
		},
	}
	projectListCmd.Flags().BoolP("all", "a", false, "Include archived projects")

	projectShowCmd := &cobra.Command{
		Use:   "show [project-id]",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.ProjectAdapter(cmd.OutOrStdout()).Show(s.ctx, owner, args[0])
				return err
			})
		},
	}

	projectUpdateCmd := &cobra.Command{
		Use:   "update [project-id]",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := projectPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.ProjectAdapter(cmd.OutOrStdout()).Update(s.ctx, primary.UpdateProjectRequest{
					OwnerID:   owner,
					ProjectID: args[0],
					Patch:     p,
				})
				return err
			})
		},
	}
	projectUpdateCmd.Flags().String("name", "", "New name")
	projectUpdateCmd.Flags().StringP("description", "d", "", "New description")
	projectUpdateCmd.Flags().Bool("clear-description", false, "Remove the description")
	projectUpdateCmd.Flags().String("color", "", "New color as #RRGGBB")

	projectArchiveCmd := archiveCmd("archive", "Hide a project from the default listing", true)
	projectUnarchiveCmd := archiveCmd("unarchive", "Bring an archived project back", false)

	projectDeleteCmd := &cobra.Command{
		Use:   "delete [project-id]",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.ProjectAdapter(cmd.OutOrStdout()).Delete(s.ctx, owner, args[0])
			})
		},
	}

	projectCmd.AddCommand(projectCreateCmd, projectListCmd, projectShowCmd, projectUpdateCmd,
		projectArchiveCmd, projectUnarchiveCmd, projectDeleteCmd)
	return projectCmd
}

func archiveCmd(use, short string, archived bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [project-id]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.ProjectAdapter(cmd.OutOrStdout()).Update(s.ctx, primary.UpdateProjectRequest{
					OwnerID:   owner,
					ProjectID: args[0],
					Patch:     project.Patch{Archived: patch.Provide(archived)},
				})
				return err
			})
		},
	}
}

// projectPatchFromFlags builds a patch from the flags the user actually set.
func projectPatchFromFlags(cmd *cobra.Command) (project.Patch, error) {
	flags := cmd.Flags()
	var p project.Patch

	if flags.Changed("name") {
		v, _ := flags.GetString("name")
		p.Name = patch.Provide(v)
	}
	if flags.Changed("description") && flags.Changed("clear-description") {
		return project.Patch{}, fmt.Errorf("--description and --clear-description are mutually exclusive")
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		p.Description = patch.Provide(&v)
	}
	if unset, _ := flags.GetBool("clear-description"); unset {
		p.Description = patch.Clear[*string]()
	}
	if flags.Changed("color") {
		v, _ := flags.GetString("color")
		p.Color = patch.Provide(v)
	}
	return p, nil
}
