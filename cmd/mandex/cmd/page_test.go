package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mandexerrors "github.com/mandex/mandex/internal/errors"
)

func TestPageCmd_TextOutput(t *testing.T) {
	setupProject(t,
		manualPage("4.1", "ADD"),
		manualPage("4.2", "NOP"),
	)

	out, err := execute(t, "page", "ADD")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	out, err = execute(t, "page", "NOP")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}

func TestPageCmd_CaseInsensitiveLookup(t *testing.T) {
	setupProject(t, manualPage("4.1", "ADD"))

	out, err := execute(t, "page", "add")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)
}

func TestPageCmd_JSONOutput(t *testing.T) {
	setupProject(t, manualPage("4.1", "ADD"))

	out, err := execute(t, "page", "ADD", "--format", "json")
	require.NoError(t, err)

	var result pageResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "ADD", result.Mnemonic)
	assert.Equal(t, 4, result.Page)
}

func TestPageCmd_NotFound(t *testing.T) {
	setupProject(t, manualPage("4.1", "ADD"))

	_, err := execute(t, "page", "XYZZY")
	require.Error(t, err)
	assert.Equal(t, mandexerrors.ErrCodeMnemonicNotFound, mandexerrors.GetCode(err))
}

func TestPageCmd_UnknownFormat(t *testing.T) {
	setupProject(t, manualPage("4.1", "ADD"))

	_, err := execute(t, "page", "ADD", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestPageCmd_ConditionCodeExpansion(t *testing.T) {
	setupProject(t,
		fillerPage,
		manualPage("4.3", "Bcc"),
	)

	out, err := execute(t, "page", "bne")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)

	out, err = execute(t, "page", "BEQ")
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}
