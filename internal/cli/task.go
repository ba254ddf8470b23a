package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/worklog/internal/core/task"
	"github.com/example/worklog/internal/ports/primary"
)

// TaskCmd groups the task commands.
func TaskCmd() *cobra.Command {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long:  "Create, list, complete and manage your tasks",
	}
	addTokenFlag(taskCmd)

	taskCreateCmd := &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description, _ := cmd.Flags().GetString("description")
			status, _ := cmd.Flags().GetString("status")
			priority, _ := cmd.Flags().GetString("priority")
			due, _ := cmd.Flags().GetString("due")
			order, _ := cmd.Flags().GetInt("order")

			req := primary.CreateTaskRequest{
				Title: args[0],
				Order: order,
			}
			var err error
			if req.Status, err = optionalStatus(status); err != nil {
				return err
			}
			if req.Priority, err = optionalPriority(priority); err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if due != "" {
				d, err := task.ParseDueDate(due)
				if err != nil {
					return err
				}
				req.DueDate = &d
			}

			return withOwner(cmd, func(s *session, owner string) error {
				req.OwnerID = owner
				_, err := s.container.TaskAdapter(cmd.OutOrStdout()).Create(s.ctx, req)
				return err
			})
		},
	}
	taskCreateCmd.Flags().StringP("description", "d", "", "Task description")
	taskCreateCmd.Flags().StringP("status", "s", "", "Initial status (todo, doing, done)")
	taskCreateCmd.Flags().StringP("priority", "p", "", "Priority (high, medium, low)")
	taskCreateCmd.Flags().String("due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	taskCreateCmd.Flags().Int("order", 0, "Manual sort order")

	taskListCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			skip, _ := cmd.Flags().GetInt("skip")
			limit, _ := cmd.Flags().GetInt("limit")
			status, _ := cmd.Flags().GetString("status")
			priority, _ := cmd.Flags().GetString("priority")
			search, _ := cmd.Flags().GetString("search")

			req := primary.ListTasksRequest{Skip: skip, Limit: limit, Search: search}
			var err error
			if req.Status, err = optionalStatus(status); err != nil {
				return err
			}
			if req.Priority, err = optionalPriority(priority); err != nil {
				return err
			}

			return withOwner(cmd, func(s *session, owner string) error {
				req.OwnerID = owner
				return s.container.TaskAdapter(cmd.OutOrStdout()).List(s.ctx, req)
			})
		},
	}
	taskListCmd.Flags().Int("skip", 0, "Number of tasks to skip")
	taskListCmd.Flags().Int("limit", 20, "Page size (1-100)")
	taskListCmd.Flags().StringP("status", "s", "", "Filter by status")
	taskListCmd.Flags().StringP("priority", "p", "", "Filter by priority")
	taskListCmd.Flags().String("search", "", "Match title or description")

	taskTodayCmd := &cobra.Command{
		Use:   "today",
		Short: "List open tasks due today, overdue or undated",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.TaskAdapter(cmd.OutOrStdout()).Today(s.ctx, owner)
			})
		},
	}

	taskStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.TaskAdapter(cmd.OutOrStdout()).Stats(s.ctx, owner)
			})
		},
	}

	taskShowCmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.TaskAdapter(cmd.OutOrStdout()).Show(s.ctx, owner, args[0])
				return err
			})
		},
	}

	taskUpdateCmd := &cobra.Command{
		Use:   "update [task-id]",
		Short: "Update task fields",
		Long:  "Update only the fields given as flags. Use --clear-description or --clear-due to unset them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := taskPatchFromFlags(cmd)
			if err != nil {
				return err
			}
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.TaskAdapter(cmd.OutOrStdout()).Update(s.ctx, primary.UpdateTaskRequest{
					OwnerID: owner,
					TaskID:  args[0],
					Patch:   patch,
				})
				return err
			})
		},
	}
	taskUpdateCmd.Flags().String("title", "", "New title")
	taskUpdateCmd.Flags().StringP("description", "d", "", "New description")
	taskUpdateCmd.Flags().Bool("clear-description", false, "Remove the description")
	taskUpdateCmd.Flags().StringP("status", "s", "", "New status")
	taskUpdateCmd.Flags().StringP("priority", "p", "", "New priority")
	taskUpdateCmd.Flags().String("due", "", "New due date")
	taskUpdateCmd.Flags().Bool("clear-due", false, "Remove the due date")
	taskUpdateCmd.Flags().Int("order", 0, "New sort order")

	taskStatusCmd := &cobra.Command{
		Use:   "status [task-id] [todo|doing|done]",
		Short: "Change task status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.TaskAdapter(cmd.OutOrStdout()).SetStatus(s.ctx, owner, args[0], status)
				return err
			})
		},
	}

	taskCompleteCmd := &cobra.Command{
		Use:   "complete [task-id]",
		Short: "Mark a task as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.TaskAdapter(cmd.OutOrStdout()).Complete(s.ctx, owner, args[0])
				return err
			})
		},
	}

	taskDeleteCmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.TaskAdapter(cmd.OutOrStdout()).Delete(s.ctx, owner, args[0])
			})
		},
	}

	taskCmd.AddCommand(taskCreateCmd, taskListCmd, taskTodayCmd, taskStatsCmd, taskShowCmd,
		taskUpdateCmd, taskStatusCmd, taskCompleteCmd, taskDeleteCmd)
	return taskCmd
}

// withOwner opens a session, authenticates and runs fn with the owner's context.
func withOwner(cmd *cobra.Command, fn func(s *session, owner string) error) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, owner, err := s.authenticate(cmd)
	if err != nil {
		return err
	}
	s.ctx = ctx
	return fn(s, owner)
}

// taskPatchFromFlags builds a patch from the flags the user actually set.
func taskPatchFromFlags(cmd *cobra.Command) (task.Patch, error) {
	flags := cmd.Flags()
	var p task.Patch

	if flags.Changed("title") {
		v, _ := flags.GetString("title")
		p.Title = task.Provide(v)
	}
	if flags.Changed("description") && flags.Changed("clear-description") {
		return task.Patch{}, fmt.Errorf("--description and --clear-description are mutually exclusive")
	}
	if flags.Changed("description") {
		v, _ := flags.GetString("description")
		p.Description = task.Provide(&v)
	}
	if unset, _ := flags.GetBool("clear-description"); unset {
		p.Description = task.Provide[*string](nil)
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		status, err := task.ParseStatus(v)
		if err != nil {
			return task.Patch{}, err
		}
		p.Status = task.Provide(status)
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		priority, err := task.ParsePriority(v)
		if err != nil {
			return task.Patch{}, err
		}
		p.Priority = task.Provide(priority)
	}
	if flags.Changed("due") && flags.Changed("clear-due") {
		return task.Patch{}, fmt.Errorf("--due and --clear-due are mutually exclusive")
	}
	if flags.Changed("due") {
		v, _ := flags.GetString("due")
		d, err := task.ParseDueDate(v)
		if err != nil {
			return task.Patch{}, err
		}
		p.DueDate = task.Provide(&d)
	}
	if unset, _ := flags.GetBool("clear-due"); unset {
		p.DueDate = task.Provide[*time.Time](nil)
	}
	if flags.Changed("order") {
		v, _ := flags.GetInt("order")
		p.Order = task.Provide(v)
	}
	return p, nil
}

// optionalStatus parses a status flag; empty means not given.
func optionalStatus(v string) (task.Status, error) {
	if v == "" {
		return "", nil
	}
	return task.ParseStatus(v)
}

func optionalPriority(v string) (task.Priority, error) {
	if v == "" {
		return "", nil
	}
	return task.ParsePriority(v)
}
