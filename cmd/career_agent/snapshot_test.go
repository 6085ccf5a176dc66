package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotCommand_RequiresDatabaseURL(t *testing.T) {
	isolateConfig(t)
	snapshotDatabaseURL = ""
	snapshotOutput = filepath.Join(t.TempDir(), "out.db")

	cmd, _ := newTestCommand()
	assert.ErrorContains(t, runSnapshot(cmd, nil), "DATABASE_URL")
	assert.NoFileExists(t, snapshotOutput)
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"rank-transitions", "match-courses", "recommend", "embed-courses", "snapshot", "serve"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
}
