package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	forced  int
	version uint
	dirty   bool
	err     error
}

func (f *fakeMigrator) Up() error   { f.calls = append(f.calls, "up"); return f.err }
func (f *fakeMigrator) Down() error { f.calls = append(f.calls, "down"); return f.err }

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return f.err
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	f.calls = append(f.calls, "version")
	return f.version, f.dirty, f.err
}

func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.forced = v
	return f.err
}

func runArgs(t *testing.T, m migrator, args ...string) (string, error) {
	t.Helper()
	cmd, err := lookup(args)
	require.NoError(t, err)
	return cmd.run(m, args[1:])
}

func TestLookup_RejectsBadArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown command", []string{"sideways"}, `unknown command "sideways"`},
		{"missing argument", []string{"force"}, "usage: force <version>"},
		{"extra argument", []string{"up", "2"}, "usage: up"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lookup(tt.args)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestCommands_NoChangeIsSuccess(t *testing.T) {
	m := &fakeMigrator{err: migrate.ErrNoChange}

	msg, err := runArgs(t, m, "up")
	require.NoError(t, err)
	require.Equal(t, "Migrated up", msg)

	_, err = runArgs(t, m, "down")
	require.NoError(t, err)
	require.Equal(t, []string{"up", "down"}, m.calls)
}

func TestCommands_Steps(t *testing.T) {
	m := &fakeMigrator{}

	msg, err := runArgs(t, m, "steps", "-1")
	require.NoError(t, err)
	require.Equal(t, -1, m.steps)
	require.Equal(t, "Applied -1 step(s)", msg)

	_, err = runArgs(t, m, "steps", "many")
	require.ErrorContains(t, err, "invalid step count")
}

func TestCommands_Version(t *testing.T) {
	msg, err := runArgs(t, &fakeMigrator{version: 1, dirty: true}, "version")
	require.NoError(t, err)
	require.Equal(t, "Version: 1, Dirty: true", msg)

	msg, err = runArgs(t, &fakeMigrator{err: migrate.ErrNilVersion}, "version")
	require.NoError(t, err)
	require.Equal(t, "No migrations applied", msg)
}

func TestCommands_ForcePropagatesErrors(t *testing.T) {
	m := &fakeMigrator{}
	_, err := runArgs(t, m, "force", "1")
	require.NoError(t, err)
	require.Equal(t, 1, m.forced)

	failing := &fakeMigrator{err: errors.New("connection refused")}
	_, err = runArgs(t, failing, "force", "1")
	require.ErrorContains(t, err, "connection refused")
}
