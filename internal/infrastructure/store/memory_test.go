package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreTokens(t *testing.T) {
	st := NewMemory()

	tokens, err := st.Tokens()
	require.NoError(t, err)
	assert.Empty(t, tokens.Access)

	require.NoError(t, st.SaveTokens(TokenPair{Access: "a", Refresh: "r"}))
	tokens, err = st.Tokens()
	require.NoError(t, err)
	assert.Equal(t, "a", tokens.Access)
	assert.Equal(t, "r", tokens.Refresh)

	require.NoError(t, st.ClearTokens())
	tokens, err = st.Tokens()
	require.NoError(t, err)
	assert.Empty(t, tokens.Access)
}

func TestMemoryStoreKeyValue(t *testing.T) {
	st := NewMemory()

	value, err := st.Get("missing")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, st.Set("k", "v"))
	value, err = st.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	require.NoError(t, st.Delete("k"))
	value, err = st.Get("k")
	require.NoError(t, err)
	assert.Empty(t, value)

	assert.NoError(t, st.Close())
}
