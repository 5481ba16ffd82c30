package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rogersnm/tcli/internal/config"
	"github.com/rogersnm/tcli/internal/model"
	"github.com/rogersnm/tcli/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	dir       string
	tasksPath string
	configDir string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{
		dir:       dir,
		tasksPath: filepath.Join(dir, "tasks.json"),
		configDir: filepath.Join(dir, "config"),
	}
}

// resetFlags clears values and Changed marks left behind by earlier runs,
// since cobra commands are package-level and reused across tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	code := Execute()
	return stdout.String(), stderr.String(), code
}

// run executes a command against the env's tasks file and config dir.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--file", e.tasksPath, "--config-dir", e.configDir}, args...))
	err := rootCmd.Execute()
	return stdout.String(), err
}

func (e *testEnv) store(t *testing.T) *store.LocalStore {
	t.Helper()
	s, err := store.NewLocal(e.tasksPath, store.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return s
}

func (e *testEnv) seed(t *testing.T, description string, status model.Status) model.Task {
	t.Helper()
	task, err := model.NewTaskWithStatus(description, string(status))
	require.NoError(t, err)
	require.NoError(t, e.store(t).Add(task))
	return *task
}

// --- add ---

func TestAdd_DefaultStatus(t *testing.T) {
	e := setupEnv(t)
	out, err := e.run(t, "add", "buy", "milk")
	require.NoError(t, err)

	tasks := e.store(t).List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Description)
	assert.Equal(t, model.StatusNotStarted, tasks[0].Status)
	assert.Equal(t, "Added task "+tasks[0].ID+"\n", out)
}

func TestAdd_WithStatus(t *testing.T) {
	e := setupEnv(t)
	_, err := e.run(t, "add", "write report", "-s", "in_progress")
	require.NoError(t, err)

	tasks := e.store(t).List()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.StatusInProgress, tasks[0].Status)
}

func TestAdd_InvalidStatus(t *testing.T) {
	e := setupEnv(t)
	_, err := e.run(t, "add", "x", "--status", "someday")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	assert.Empty(t, e.store(t).List())
}

func TestAdd_BlankDescription(t *testing.T) {
	e := setupEnv(t)
	_, err := e.run(t, "add", "   ")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

// --- update ---

func TestUpdate_Description(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "buy milk", model.StatusNotStarted)

	out, err := e.run(t, "update", task.ID, "-d", "buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Updated task "+task.ID+"\n", out)

	got, _, err := e.store(t).Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy oat milk", got.Description)
	assert.Equal(t, model.StatusNotStarted, got.Status)
}

func TestUpdate_Status(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "buy milk", model.StatusNotStarted)

	_, err := e.run(t, "update", task.ID, "--status", "done")
	require.NoError(t, err)

	got, _, err := e.store(t).Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Description)
	assert.Equal(t, model.StatusDone, got.Status)
}

func TestUpdate_DescriptionAndStatus(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "buy milk", model.StatusNotStarted)

	_, err := e.run(t, "update", task.ID, "-d", "buy bread", "-s", "IN_PROGRESS")
	require.NoError(t, err)

	got, _, err := e.store(t).Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy bread", got.Description)
	assert.Equal(t, model.StatusInProgress, got.Status)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
}

func TestUpdate_NoFlags(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "buy milk", model.StatusNotStarted)
	_, err := e.run(t, "update", task.ID)
	assert.Error(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	e := setupEnv(t)
	out, err := e.run(t, "update", "zzzz9999", "-d", "nope")
	require.NoError(t, err)
	assert.Equal(t, "Task zzzz9999 not found\n", out)
}

// --- delete ---

func TestDelete_Force(t *testing.T) {
	e := setupEnv(t)
	keep := e.seed(t, "keep me", model.StatusNotStarted)
	drop := e.seed(t, "drop me", model.StatusDone)

	out, err := e.run(t, "delete", drop.ID, "--force")
	require.NoError(t, err)
	assert.Equal(t, "Deleted task "+drop.ID+"\n", out)

	tasks := e.store(t).List()
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)
}

func TestDelete_NotFound(t *testing.T) {
	e := setupEnv(t)
	e.seed(t, "keep me", model.StatusNotStarted)

	out, err := e.run(t, "delete", "zzzz9999", "-f")
	require.NoError(t, err)
	assert.Equal(t, "Task zzzz9999 not found\n", out)
	assert.Len(t, e.store(t).List(), 1)
}

// --- mark ---

func TestMarkInProgressThenDone(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "ship it", model.StatusNotStarted)

	out, err := e.run(t, "mark-in-progress", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "IN_PROGRESS")
	got, _, _ := e.store(t).Get(task.ID)
	assert.Equal(t, model.StatusInProgress, got.Status)

	_, err = e.run(t, "mark-done", task.ID)
	require.NoError(t, err)
	got, _, _ = e.store(t).Get(task.ID)
	assert.Equal(t, model.StatusDone, got.Status)
}

func TestMarkDone_NotFound(t *testing.T) {
	e := setupEnv(t)
	out, err := e.run(t, "mark-done", "zzzz9999")
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
}

// --- list ---

func TestList_Empty(t *testing.T) {
	e := setupEnv(t)
	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found.\n", out)
}

func TestList_All(t *testing.T) {
	e := setupEnv(t)
	a := e.seed(t, "first task", model.StatusNotStarted)
	b := e.seed(t, "second task", model.StatusDone)

	out, err := e.run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, a.ID)
	assert.Contains(t, out, b.ID)
	assert.Less(t, strings.Index(out, a.ID), strings.Index(out, b.ID))
}

func TestList_ByStatus(t *testing.T) {
	e := setupEnv(t)
	a := e.seed(t, "first task", model.StatusNotStarted)
	b := e.seed(t, "second task", model.StatusDone)

	out, err := e.run(t, "list", "-s", " done ")
	require.NoError(t, err)
	assert.NotContains(t, out, a.ID)
	assert.Contains(t, out, b.ID)
}

func TestList_InvalidStatus(t *testing.T) {
	e := setupEnv(t)
	_, err := e.run(t, "list", "-s", "todo")
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

// --- search ---

func TestSearch_Ranking(t *testing.T) {
	e := setupEnv(t)
	milk := e.seed(t, "buy milk", model.StatusNotStarted)
	bread := e.seed(t, "buy bread", model.StatusNotStarted)
	dog := e.seed(t, "walk dog", model.StatusNotStarted)

	out, err := e.run(t, "search", "buy")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, milk.ID), strings.Index(out, bread.ID))
	assert.Less(t, strings.Index(out, bread.ID), strings.Index(out, dog.ID))

	out, err = e.run(t, "search", "buy", "-k", "1")
	require.NoError(t, err)
	assert.Contains(t, out, milk.ID)
	assert.NotContains(t, out, bread.ID)
	assert.NotContains(t, out, dog.ID)
}

func TestSearch_ZeroLimit(t *testing.T) {
	e := setupEnv(t)
	e.seed(t, "buy milk", model.StatusNotStarted)

	out, err := e.run(t, "search", "milk", "-k", "0")
	require.NoError(t, err)
	assert.Equal(t, "No matching tasks.\n", out)
}

func TestSearch_ConfiguredLimit(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, config.Save(e.configDir, &config.Config{SearchLimit: 1}))
	milk := e.seed(t, "buy milk", model.StatusNotStarted)
	bread := e.seed(t, "buy bread", model.StatusNotStarted)

	out, err := e.run(t, "search", "buy")
	require.NoError(t, err)
	assert.Contains(t, out, milk.ID)
	assert.NotContains(t, out, bread.ID)
}

// --- show / edit ---

func TestShow_Frontmatter(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "renew passport", model.StatusInProgress)

	out, err := e.run(t, "show", task.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\nid: "+task.ID+"\n"))
	assert.Contains(t, out, "status: IN_PROGRESS")
	assert.Contains(t, out, "renew passport")
}

func TestShow_Pretty(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "renew passport", model.StatusDone)

	out, err := e.run(t, "show", task.ID, "--pretty")
	require.NoError(t, err)
	assert.Contains(t, out, task.ID)
	assert.Contains(t, out, "DONE")
	assert.Contains(t, out, model.FormatTime(task.CreatedAt))
	assert.Contains(t, out, model.FormatTime(task.UpdatedAt))
	assert.Contains(t, out, "renew passport")
	assert.NotContains(t, out, "status: DONE")
}

func TestShow_NotFound(t *testing.T) {
	e := setupEnv(t)
	out, err := e.run(t, "show", "zzzz9999")
	require.NoError(t, err)
	assert.Equal(t, "Task zzzz9999 not found\n", out)
}

func fakeEditor(t *testing.T, dir, content string) {
	t.Helper()
	replacement := filepath.Join(dir, "replacement.md")
	require.NoError(t, os.WriteFile(replacement, []byte(content), 0644))
	script := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\ncp \""+replacement+"\" \"$1\"\n"), 0755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)
}

func TestEdit_AppliesChanges(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "renew passport", model.StatusNotStarted)
	fakeEditor(t, e.dir, "---\nid: "+task.ID+"\nstatus: done\n---\n\nrenew passport and visa\n")

	out, err := e.run(t, "edit", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated task "+task.ID+"\n", out)

	got, _, err := e.store(t).Get(task.ID)
	require.NoError(t, err)
	assert.Equal(t, "renew passport and visa", got.Description)
	assert.Equal(t, model.StatusDone, got.Status)
}

func TestEdit_NoChanges(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "renew passport", model.StatusNotStarted)
	fakeEditor(t, e.dir, "---\nid: "+task.ID+"\nstatus: NOT_STARTED\n---\n\nrenew passport\n")

	out, err := e.run(t, "edit", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "No changes to task "+task.ID+"\n", out)
}

func TestEdit_ChangedIDRejected(t *testing.T) {
	e := setupEnv(t)
	task := e.seed(t, "renew passport", model.StatusNotStarted)
	fakeEditor(t, e.dir, "---\nid: other123\nstatus: DONE\n---\n\nrenew passport\n")

	_, err := e.run(t, "edit", task.ID)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	got, _, _ := e.store(t).Get(task.ID)
	assert.Equal(t, model.StatusNotStarted, got.Status)
}

// --- config ---

func TestConfigSetAndShow(t *testing.T) {
	e := setupEnv(t)
	other := filepath.Join(e.dir, "other.json")

	_, err := e.run(t, "config", "set", "tasks_file", other)
	require.NoError(t, err)
	_, err = e.run(t, "config", "set", "search_limit", "3")
	require.NoError(t, err)

	c, err := config.Load(e.configDir)
	require.NoError(t, err)
	assert.Equal(t, other, c.TasksFile)
	assert.Equal(t, 3, c.SearchLimit)

	out, _, code := execute(t, "--config-dir", e.configDir, "config", "show")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Tasks file: "+other)
	assert.Contains(t, out, "Search limit: 3")
	assert.NoFileExists(t, e.tasksPath)
}

func TestConfig_TasksFileUsedWithoutFlag(t *testing.T) {
	e := setupEnv(t)
	other := filepath.Join(e.dir, "other.json")
	require.NoError(t, config.Save(e.configDir, &config.Config{TasksFile: other}))

	_, _, code := execute(t, "--config-dir", e.configDir, "add", "configured")
	assert.Equal(t, 0, code)

	s, err := store.NewLocal(other, store.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	tasks := s.List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "configured", tasks[0].Description)
}

func TestConfigSet_UnknownKey(t *testing.T) {
	e := setupEnv(t)
	_, err := e.run(t, "config", "set", "color", "blue")
	assert.Error(t, err)
}

func TestNonTaskCommandsDoNotCreateFile(t *testing.T) {
	e := setupEnv(t)
	chdir(t, e.dir)

	for _, args := range [][]string{
		{"help"},
		{"help", "add"},
		{},
		{"completion", "bash"},
		{"config", "show"},
	} {
		_, _, code := execute(t, append([]string{"--config-dir", e.configDir}, args...)...)
		assert.Equal(t, 0, code, "args %v", args)
		assert.NoFileExists(t, filepath.Join(e.dir, store.DefaultFile), "args %v", args)
	}

	_, _, code := execute(t, "--config-dir", e.configDir, "list")
	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(e.dir, store.DefaultFile))
}

// --- exit codes ---

func TestExecute_ValidationErrorExitsZero(t *testing.T) {
	e := setupEnv(t)
	_, stderr, code := execute(t, "--file", e.tasksPath, "--config-dir", e.configDir, "add", "x", "-s", "bogus")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Error: invalid status")
}

func TestExecute_NotFoundExitsZero(t *testing.T) {
	e := setupEnv(t)
	out, _, code := execute(t, "--file", e.tasksPath, "--config-dir", e.configDir, "mark-done", "zzzz9999")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "not found")
}

func TestExecute_InitFailureExitsNonZero(t *testing.T) {
	e := setupEnv(t)
	blocker := filepath.Join(e.dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, stderr, code := execute(t, "--file", filepath.Join(blocker, "tasks.json"), "--config-dir", e.configDir, "list")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")
}

func TestExecute_BadConfigExitsNonZero(t *testing.T) {
	e := setupEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("{{bad"), 0644))

	_, _, code := execute(t, "--file", e.tasksPath, "--config-dir", e.configDir, "list")
	assert.Equal(t, 1, code)
}

func TestE2EWorkflow(t *testing.T) {
	e := setupEnv(t)

	// 1. Add tasks
	_, err := e.run(t, "add", "buy milk")
	require.NoError(t, err)
	_, err = e.run(t, "add", "walk dog", "-s", "in_progress")
	require.NoError(t, err)

	tasks := e.store(t).List()
	require.Len(t, tasks, 2)
	milk, dog := tasks[0], tasks[1]

	// 2. Progress and finish
	_, err = e.run(t, "mark-done", milk.ID)
	require.NoError(t, err)
	_, err = e.run(t, "update", dog.ID, "-d", "walk the dog")
	require.NoError(t, err)

	// 3. Filter
	out, err := e.run(t, "list", "-s", "done")
	require.NoError(t, err)
	assert.Contains(t, out, milk.ID)
	assert.NotContains(t, out, dog.ID)

	// 4. Search
	out, err = e.run(t, "search", "dog", "-k", "1")
	require.NoError(t, err)
	assert.Contains(t, out, dog.ID)

	// 5. Delete
	_, err = e.run(t, "delete", milk.ID, "--force")
	require.NoError(t, err)
	tasks = e.store(t).List()
	require.Len(t, tasks, 1)
	assert.Equal(t, "walk the dog", tasks[0].Description)
	assert.Equal(t, model.StatusInProgress, tasks[0].Status)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
