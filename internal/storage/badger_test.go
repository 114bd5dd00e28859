package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_StringRoundTrip(t *testing.T) {
	s := openMemory(t)

	_, ok, err := s.GetString(KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetString(KeyAuthToken, "tok-1"))
	v, ok, err := s.GetString(KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	require.NoError(t, s.Delete(KeyAuthToken))
	_, ok, err = s.GetString(KeyAuthToken)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DeleteMissingKey(t *testing.T) {
	s := openMemory(t)
	assert.NoError(t, s.Delete("never-written"))
}

func TestStore_JSON(t *testing.T) {
	s := openMemory(t)

	type selection struct {
		Rooms []string `json:"rooms"`
	}
	require.NoError(t, s.SetJSON(KeyPackageSelection, selection{Rooms: []string{"Bedroom", "Garden"}}))

	var got selection
	ok, err := s.GetJSON(KeyPackageSelection, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Bedroom", "Garden"}, got.Rooms)
}

func TestStore_GetJSONCorrupt(t *testing.T) {
	s := openMemory(t)
	require.NoError(t, s.SetString(KeyPackageSelection, "{not json"))

	var got map[string]interface{}
	ok, err := s.GetJSON(KeyPackageSelection, &got)
	assert.Error(t, err)
	assert.False(t, ok)
}
