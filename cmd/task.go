package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rogersnm/tcli/internal/editor"
	"github.com/rogersnm/tcli/internal/markdown"
	"github.com/rogersnm/tcli/internal/model"
	"github.com/rogersnm/tcli/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a new task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		description := strings.TrimSpace(strings.Join(args, " "))

		var (
			t   *model.Task
			err error
		)
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			t, err = model.NewTaskWithStatus(description, statusStr)
		} else {
			t, err = model.NewTask(description)
		}
		if err != nil {
			return err
		}

		if err := st.Add(t); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added task %s\n", t.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task's description and/or status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		descChanged := cmd.Flags().Changed("description")
		statusChanged := cmd.Flags().Changed("status")
		description, _ := cmd.Flags().GetString("description")
		statusStr, _ := cmd.Flags().GetString("status")

		var (
			out store.Outcome
			err error
		)
		switch {
		case descChanged && statusChanged:
			out, err = st.UpdateDescriptionAndStatus(args[0], description, statusStr)
		case descChanged:
			out, err = st.UpdateDescription(args[0], description)
		case statusChanged:
			out, err = st.UpdateStatus(args[0], statusStr)
		default:
			return fmt.Errorf("at least one update flag is required (--description, --status)")
		}
		return report(cmd, args[0], out, err, "Updated task %s")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, out, err := st.Get(args[0])
		if err != nil || out == store.NotFound {
			return report(cmd, args[0], out, err, "")
		}
		ok, err := confirmDelete(cmd, t)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
		out, err = st.Delete(t.ID)
		return report(cmd, t.ID, out, err, "Deleted task %s")
	},
}

var markInProgressCmd = &cobra.Command{
	Use:   "mark-in-progress <id>",
	Short: "Set a task's status to IN_PROGRESS",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := st.MarkAs(args[0], model.StatusInProgress)
		return report(cmd, args[0], out, err, "Marked task %s as IN_PROGRESS")
	},
}

var markDoneCmd = &cobra.Command{
	Use:   "mark-done <id>",
	Short: "Set a task's status to DONE",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := st.MarkAs(args[0], model.StatusDone)
		return report(cmd, args[0], out, err, "Marked task %s as DONE")
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var tasks []model.Task
		if cmd.Flags().Changed("status") {
			statusStr, _ := cmd.Flags().GetString("status")
			s, err := model.ParseStatus(statusStr)
			if err != nil {
				return err
			}
			tasks = st.ListByStatus(s)
		} else {
			tasks = st.List()
		}
		fmt.Fprintln(cmd.OutOrStdout(), markdown.RenderTaskTable(tasks))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, out, err := st.Get(args[0])
		if err != nil || out == store.NotFound {
			return report(cmd, args[0], out, err, "")
		}

		var rendered string
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			rendered, err = markdown.RenderTask(t)
		} else {
			var data []byte
			data, err = markdown.MarshalTask(t)
			rendered = string(data)
		}
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a task's description and status in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, out, err := st.Get(args[0])
		if err != nil || out == store.NotFound {
			return report(cmd, args[0], out, err, "")
		}

		meta, body, err := editTask(t)
		if err != nil {
			return err
		}
		if meta.ID != t.ID {
			return fmt.Errorf("%w: task id cannot be changed (was %s, got %s)", model.ErrInvalidArgument, t.ID, meta.ID)
		}
		newStatus, err := model.ParseStatus(meta.Status)
		if err != nil {
			return err
		}
		if body == t.Description && newStatus == t.Status {
			fmt.Fprintf(cmd.OutOrStdout(), "No changes to task %s\n", t.ID)
			return nil
		}

		out, err = st.UpdateDescriptionAndStatus(t.ID, body, meta.Status)
		return report(cmd, t.ID, out, err, "Updated task %s")
	},
}

// editTask writes t to a temporary frontmatter document, opens it in the
// user's editor and parses the result.
func editTask(t model.Task) (markdown.TaskMeta, string, error) {
	data, err := markdown.MarshalTask(t)
	if err != nil {
		return markdown.TaskMeta{}, "", err
	}
	f, err := os.CreateTemp("", "tcli-"+t.ID+"-*.md")
	if err != nil {
		return markdown.TaskMeta{}, "", fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	_, werr := f.Write(data)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		return markdown.TaskMeta{}, "", fmt.Errorf("writing %s: %w", path, werr)
	}

	if err := editor.Open(path); err != nil {
		return markdown.TaskMeta{}, "", err
	}

	edited, err := os.Open(path)
	if err != nil {
		return markdown.TaskMeta{}, "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer edited.Close()
	return markdown.ParseTask(edited)
}

func confirmDelete(cmd *cobra.Command, t model.Task) (bool, error) {
	if force, _ := cmd.Flags().GetBool("force"); force {
		return true, nil
	}
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete task %s (%s)?", t.ID, t.Description)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	if err != nil {
		return false, fmt.Errorf("confirming delete (use --force to skip): %w", err)
	}
	return ok, nil
}

// report prints the result of an id-addressed operation. A missing id is an
// informational message, not an error.
func report(cmd *cobra.Command, taskID string, out store.Outcome, err error, successFormat string) error {
	if err != nil {
		return err
	}
	switch out {
	case store.NotFound:
		fmt.Fprintf(cmd.OutOrStdout(), "Task %s not found\n", taskID)
	case store.Success:
		fmt.Fprintf(cmd.OutOrStdout(), successFormat+"\n", taskID)
	}
	return nil
}

func init() {
	addCmd.Flags().StringP("status", "s", string(model.StatusNotStarted), "initial status (not_started, in_progress, done)")

	updateCmd.Flags().StringP("description", "d", "", "new description")
	updateCmd.Flags().StringP("status", "s", "", "new status (not_started, in_progress, done)")

	deleteCmd.Flags().BoolP("force", "f", false, "skip confirmation")

	listCmd.Flags().StringP("status", "s", "", "filter by status (not_started, in_progress, done)")

	showCmd.Flags().Bool("pretty", false, "render with ANSI styling")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(markInProgressCmd)
	rootCmd.AddCommand(markDoneCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
}
