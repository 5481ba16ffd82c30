package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	mtp "github.com/modeltoolsprotocol/go-sdk"
	"github.com/rogersnm/tcli/internal/config"
	"github.com/rogersnm/tcli/internal/store"
	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	configDir string
	tasksFile string
	verbose   bool
	st        store.Store
	cfg       *config.Config
	logger    *log.Logger
)

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tcli")
	}
	return filepath.Join(home, ".tcli")
}

var rootCmd = &cobra.Command{
	Use:     "tcli",
	Short:   "Track short tasks in a local JSON file",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)

		var err error
		cfg, err = config.Load(configDir)
		if err != nil {
			return &fatalError{fmt.Errorf("loading config: %w", err)}
		}

		if !usesTasks(cmd) {
			return nil
		}

		st, err = store.NewLocal(resolveTasksFile(cmd), store.WithLogger(logger))
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", defaultConfigDir(), "directory holding config.yaml or config.toml")
	rootCmd.PersistentFlags().StringVar(&tasksFile, "file", store.DefaultFile, "tasks file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	mtpOpts := &mtp.DescribeOptions{
		Commands: map[string]*mtp.CommandAnnotation{
			"add": {
				Examples: []mtp.Example{
					{Description: "Add a task", Command: "tcli add \"Buy milk\""},
					{Description: "Add a task that is already underway", Command: "tcli add \"Write report\" -s in_progress"},
				},
			},
			"update": {
				Examples: []mtp.Example{
					{Description: "Change a description", Command: "tcli update 1a2b3c4d -d \"Buy oat milk\""},
					{Description: "Change description and status", Command: "tcli update 1a2b3c4d -d \"Buy oat milk\" -s done"},
				},
			},
			"delete": {
				Examples: []mtp.Example{
					{Description: "Delete a task (interactive confirm)", Command: "tcli delete 1a2b3c4d"},
					{Description: "Delete a task (skip confirm)", Command: "tcli delete 1a2b3c4d --force"},
				},
			},
			"mark-in-progress": {
				Examples: []mtp.Example{
					{Description: "Start a task", Command: "tcli mark-in-progress 1a2b3c4d"},
				},
			},
			"mark-done": {
				Examples: []mtp.Example{
					{Description: "Finish a task", Command: "tcli mark-done 1a2b3c4d"},
				},
			},
			"list": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Table of tasks with ID, description, status, and timestamps in file order",
				},
				Examples: []mtp.Example{
					{Description: "List unfinished work", Command: "tcli list -s in_progress"},
				},
			},
			"search": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/plain",
					Description: "Closest tasks by edit distance, best first",
				},
				Examples: []mtp.Example{
					{Description: "Top 3 matches", Command: "tcli search milk -k 3"},
				},
			},
			"show": {
				Stdout: &mtp.IODescriptor{
					ContentType: "text/markdown",
					Description: "Task as YAML frontmatter with the description as body",
				},
			},
			"edit": {
				Examples: []mtp.Example{
					{Description: "Edit a task in $EDITOR", Command: "tcli edit 1a2b3c4d"},
				},
			},
		},
	}

	mtp.WithDescribe(rootCmd, mtpOpts)
}

// Execute runs the command tree and returns the process exit code. Handled
// outcomes exit 0, including missing ids and rejected input; only failures
// to load config or to create or write the tasks file exit 1.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	if isFatal(err) {
		return 1
	}
	return 0
}

type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func isFatal(err error) bool {
	var fe *fatalError
	return errors.As(err, &fe) || store.IsFatal(err)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	l := log.NewWithOptions(w, log.Options{Prefix: "tcli"})
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// usesTasks reports whether cmd reads or writes the tasks file. The bare root
// command, help, shell completion and config never do, so they must not
// create it.
func usesTasks(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return false
	}
	top := cmd
	for top.Parent().HasParent() {
		top = top.Parent()
	}
	switch top.Name() {
	case "help", "completion", "config":
		return false
	}
	return true
}

// resolveTasksFile returns the --file flag if given, else the configured
// file, else tasks.json in the working directory.
func resolveTasksFile(cmd *cobra.Command) string {
	if cmd.Flags().Changed("file") {
		return tasksFile
	}
	if cfg != nil && cfg.TasksFile != "" {
		return cfg.TasksFile
	}
	return store.DefaultFile
}
