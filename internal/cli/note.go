package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/worklog/internal/core/note"
	"github.com/example/worklog/internal/core/patch"
	"github.com/example/worklog/internal/ports/primary"
)

// NoteCmd groups the daily note commands. Date arguments default to today
// in the configured timezone.
func NoteCmd() *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Manage daily notes",
	}
	addTokenFlag(noteCmd)

	noteCreateCmd := &cobra.Command{
		Use:   "create [date]",
		Short: "Write the note for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _ := cmd.Flags().GetString("content")
			moodName, _ := cmd.Flags().GetString("mood")

			return withOwner(cmd, func(s *session, owner string) error {
				req := primary.CreateNoteRequest{OwnerID: owner, Date: noteDate(s, args)}
				if cmd.Flags().Changed("content") {
					req.Content = &content
				}
				if moodName != "" {
					mood, err := note.ParseMood(moodName)
					if err != nil {
						return err
					}
					req.Mood = &mood
				}
				_, err := s.container.NoteAdapter(cmd.OutOrStdout()).Create(s.ctx, req)
				return err
			})
		},
	}
	noteCreateCmd.Flags().StringP("content", "c", "", "Note text")
	noteCreateCmd.Flags().StringP("mood", "m", "", "Mood (great, good, okay, bad)")

	noteShowCmd := &cobra.Command{
		Use:   "show [date]",
		Short: "Show the note for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.NoteAdapter(cmd.OutOrStdout()).Show(s.ctx, owner, noteDate(s, args))
				return err
			})
		},
	}

	noteListCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.NoteAdapter(cmd.OutOrStdout()).List(s.ctx, owner, from, to)
			})
		},
	}
	noteListCmd.Flags().String("from", "", "First date (inclusive)")
	noteListCmd.Flags().String("to", "", "Last date (inclusive)")

	noteUpdateCmd := &cobra.Command{
		Use:   "update [date]",
		Short: "Update the note for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := notePatchFromFlags(cmd)
			if err != nil {
				return err
			}
			return withOwner(cmd, func(s *session, owner string) error {
				_, err := s.container.NoteAdapter(cmd.OutOrStdout()).Update(s.ctx, primary.UpdateNoteRequest{
					OwnerID: owner,
					Date:    noteDate(s, args),
					Patch:   p,
				})
				return err
			})
		},
	}
	noteUpdateCmd.Flags().StringP("content", "c", "", "New text")
	noteUpdateCmd.Flags().Bool("clear-content", false, "Remove the text")
	noteUpdateCmd.Flags().StringP("mood", "m", "", "New mood")
	noteUpdateCmd.Flags().Bool("clear-mood", false, "Remove the mood")

	noteDeleteCmd := &cobra.Command{
		Use:   "delete [date]",
		Short: "Delete the note for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withOwner(cmd, func(s *session, owner string) error {
				return s.container.NoteAdapter(cmd.OutOrStdout()).Delete(s.ctx, owner, args[0])
			})
		},
	}

	noteCmd.AddCommand(noteCreateCmd, noteShowCmd, noteListCmd, noteUpdateCmd, noteDeleteCmd)
	return noteCmd
}

func noteDate(s *session, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return time.Now().In(s.cfg.Location()).Format(note.DateLayout)
}

func notePatchFromFlags(cmd *cobra.Command) (note.Patch, error) {
	flags := cmd.Flags()
	var p note.Patch

	if flags.Changed("content") && flags.Changed("clear-content") {
		return note.Patch{}, fmt.Errorf("--content and --clear-content are mutually exclusive")
	}
	if flags.Changed("content") {
		v, _ := flags.GetString("content")
		p.Content = patch.Provide(&v)
	}
	if unset, _ := flags.GetBool("clear-content"); unset {
		p.Content = patch.Clear[*string]()
	}

	if flags.Changed("mood") && flags.Changed("clear-mood") {
		return note.Patch{}, fmt.Errorf("--mood and --clear-mood are mutually exclusive")
	}
	if flags.Changed("mood") {
		v, _ := flags.GetString("mood")
		mood, err := note.ParseMood(v)
		if err != nil {
			return note.Patch{}, err
		}
		p.Mood = patch.Provide(&mood)
	}
	if unset, _ := flags.GetBool("clear-mood"); unset {
		p.Mood = patch.Clear[*note.Mood]()
	}
	return p, nil
}
