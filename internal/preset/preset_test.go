package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	seen := map[string]bool{}
	for _, p := range all {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.False(t, seen[p.ID], "duplicate preset id %s", p.ID)
		seen[p.ID] = true
		assert.GreaterOrEqual(t, p.MinPlayers, 2)
		assert.LessOrEqual(t, p.MaxPlayers, 20)
		assert.LessOrEqual(t, p.MinPlayers, p.MaxPlayers)
	}
}

func TestByID(t *testing.T) {
	p := ByID("mafia")
	require.NotNil(t, p)
	assert.Equal(t, "Classic Mafia", p.Name)

	assert.Nil(t, ByID("poker"))
}

func TestGenerateRoles_Cycles(t *testing.T) {
	p := ByID("mafia")
	require.NotNil(t, p)

	roles := GenerateRoles(p, 7)
	require.Len(t, roles, 7)
	// 5 base roles cycle: position 5 repeats position 0.
	assert.Equal(t, p.Roles[0], roles[5])
	assert.Equal(t, p.Roles[1], roles[6])
}

func TestGenerateRoles_EmptyPreset(t *testing.T) {
	p := ByID("custom")
	require.NotNil(t, p)
	assert.Nil(t, GenerateRoles(p, 4))
}
