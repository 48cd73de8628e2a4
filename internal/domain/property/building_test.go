package property

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilding(t *testing.T) {
	t.Run("creates building successfully", func(t *testing.T) {
		building, err := NewBuilding("Edifício Aurora")

		require.NoError(t, err)
		assert.Equal(t, "Edifício Aurora", building.Name)
		assert.NotEqual(t, "", building.ID.String())
		assert.Len(t, building.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		building, err := NewBuilding("")

		assert.Error(t, err)
		assert.Nil(t, building)
	})

	t.Run("fails with oversized name", func(t *testing.T) {
		building, err := NewBuilding(strings.Repeat("a", 101))

		assert.Error(t, err)
		assert.Nil(t, building)
	})
}

func TestBuildingRename(t *testing.T) {
	building, err := NewBuilding("Edifício Aurora")
	require.NoError(t, err)
	version := building.Version

	require.NoError(t, building.Rename("Edifício Bela Vista"))
	assert.Equal(t, "Edifício Bela Vista", building.Name)
	assert.Equal(t, version+1, building.Version)

	assert.Error(t, building.Rename(""))
}

func TestBuildingSetAddress(t *testing.T) {
	building, err := NewBuilding("Edifício Aurora")
	require.NoError(t, err)

	t.Run("sets all address fields", func(t *testing.T) {
		err := building.SetAddress("Rua das Flores 120", "Centro", "Curitiba", "PR", "80010-000", "Brasil")

		require.NoError(t, err)
		assert.Equal(t, "Curitiba", building.City)
		assert.Equal(t, "80010-000", building.ZipCode)
	})

	t.Run("rejects oversized field", func(t *testing.T) {
		err := building.SetAddress(strings.Repeat("r", 101), "", "", "", "", "")
		assert.Error(t, err)
	})
}

func TestBuildingSetVideoURL(t *testing.T) {
	building, err := NewBuilding("Edifício Aurora")
	require.NoError(t, err)

	require.NoError(t, building.SetVideoURL("https://videos.example.com/aurora-tour"))
	assert.Error(t, building.SetVideoURL(strings.Repeat("u", 501)))
}
