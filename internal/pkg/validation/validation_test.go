package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAssetID(t *testing.T) {
	assert.True(t, IsValidAssetID("CR-02/GNT/2023"))
	assert.True(t, IsValidAssetID("FL-07"))
	assert.True(t, IsValidAssetID("pump_01.rev2"))

	assert.False(t, IsValidAssetID(""))
	assert.False(t, IsValidAssetID("CR 02"))
	assert.False(t, IsValidAssetID("/leading-slash"))
	assert.False(t, IsValidAssetID("id;drop"))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-07-15"))
	assert.False(t, IsValidDate("15/07/2024"))
	assert.False(t, IsValidDate("2024-7-15"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("Active"))
	assert.True(t, IsValidStatus("Inactive"))
	assert.False(t, IsValidStatus("active"))
	assert.False(t, IsValidStatus("Broken"))
}

func TestIsValidEventType(t *testing.T) {
	assert.True(t, IsValidEventType("location"))
	assert.True(t, IsValidEventType("maintenance"))
	assert.True(t, IsValidEventType("repair"))
	assert.False(t, IsValidEventType("demolition"))
	assert.False(t, IsValidEventType(""))
}
