package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfirmInput feeds s to the purge prompt for the duration of the test.
func withConfirmInput(t *testing.T, s string) {
	t.Helper()
	old := confirmInput
	confirmInput = strings.NewReader(s)
	t.Cleanup(func() { confirmInput = old })
}

func TestPurge_WithoutAllFlag_Errors(t *testing.T) {
	cmd := &PurgeCommand{globals: testGlobals(t, openTestDB(t)), Force: true}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge requires --all flag for safety")
}

func TestPurge_WithAllAndForce_Succeeds(t *testing.T) {
	db := openTestDB(t)
	globals := testGlobals(t, db)
	importSample(t, globals)

	cmd := &PurgeCommand{All: true, Force: true, globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, "Purged all data")
	assert.Equal(t, 0, countRecords(t, globals))

	var imports int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM imports").Scan(&imports))
	assert.Equal(t, 0, imports)
}

func TestPurge_JSONOutput(t *testing.T) {
	globals := testGlobals(t, openTestDB(t))
	globals.JSON = true

	cmd := &PurgeCommand{All: true, Force: true, globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(output), &out))
	assert.Equal(t, true, out["purged"])
	assert.Equal(t, "all data deleted", out["message"])
}

func TestPurge_ConfirmationAccepted(t *testing.T) {
	globals := testGlobals(t, openTestDB(t))
	importSample(t, globals)
	withConfirmInput(t, "PURGE\n")

	cmd := &PurgeCommand{All: true, globals: globals}
	output := captureOutput(t, func() {
		require.NoError(t, cmd.Execute(nil))
	})

	assert.Contains(t, output, `Type "PURGE" to confirm`)
	assert.Contains(t, output, "Purged all data")
	assert.Equal(t, 0, countRecords(t, globals))
}

func TestPurge_ConfirmationMismatch(t *testing.T) {
	globals := testGlobals(t, openTestDB(t))
	importSample(t, globals)
	withConfirmInput(t, "purge\n")

	cmd := &PurgeCommand{All: true, globals: globals}
	var err error
	captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not match")
	assert.Equal(t, 4, countRecords(t, globals))
}

func TestPurge_NoInput(t *testing.T) {
	globals := testGlobals(t, openTestDB(t))
	withConfirmInput(t, "")

	cmd := &PurgeCommand{All: true, globals: globals}
	var err error
	captureOutput(t, func() {
		err = cmd.Execute(nil)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input received")
}
