package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFlags(t *testing.T) {
	t.Run("accepts plain text", func(t *testing.T) {
		globals, _, _ := testGlobals("text")
		assert.NoError(t, validateFlags(globals, false, false))
	})

	t.Run("accepts quiet ndjson", func(t *testing.T) {
		globals, _, _ := testGlobals("ndjson")
		globals.Quiet = true
		assert.NoError(t, validateFlags(globals, true, false))
	})

	t.Run("rejects quiet text", func(t *testing.T) {
		globals, _, stderr := testGlobals("text")
		globals.Quiet = true

		err := validateFlags(globals, false, false)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "INVALID_FLAGS")
	})

	t.Run("rejects once with on-change", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		err := validateFlags(globals, true, true)
		require.Error(t, err)

		var result map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &result))
		assert.Equal(t, "error", result["type"])
		assert.Equal(t, "INVALID_FLAGS", result["code"])
	})
}
