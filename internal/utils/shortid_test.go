package utils_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/useprospera/prospera_backend/internal/utils"
)

func TestGenerateShortID_LengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := utils.GenerateShortID()
		require.NoError(t, err)
		assert.Len(t, id, utils.ShortIDLength)
		for _, r := range id {
			assert.NotContains(t, "0O1I", string(r), "ambiguous character in id %s", id)
			assert.Contains(t, "ABCDEFGHJKLMNPQRSTUVWXYZ23456789", string(r))
		}
	}
}

func TestIsValidShortID(t *testing.T) {
	id, err := utils.GenerateShortID()
	require.NoError(t, err)

	assert.True(t, utils.IsValidShortID(id))
	assert.True(t, utils.IsValidShortID(strings.ToLower(id)), "ids are case-insensitive")
	assert.False(t, utils.IsValidShortID("ABC"))
	assert.False(t, utils.IsValidShortID("ABCDE0"), "0 is not in the alphabet")
	assert.False(t, utils.IsValidShortID("ABCDEFG"))
}
