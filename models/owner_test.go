package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwner_Variants(t *testing.T) {
	var zero Owner
	assert.True(t, zero.IsSystem())
	assert.Equal(t, OwnerSystem, zero.Kind())

	assert.True(t, UserOwner("").IsSystem())

	u := UserOwner("alice")
	assert.Equal(t, OwnerUser, u.Kind())
	id, ok := u.UserID()
	assert.True(t, ok)
	assert.Equal(t, "alice", id)

	_, ok = SystemOwner().UserID()
	assert.False(t, ok)
}

func TestOwner_ValueScan(t *testing.T) {
	v, err := SystemOwner().Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = UserOwner("alice").Value()
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	var o Owner
	require.NoError(t, o.Scan(nil))
	assert.True(t, o.IsSystem())
	require.NoError(t, o.Scan([]byte("bob")))
	assert.Equal(t, UserOwner("bob"), o)
	require.NoError(t, o.Scan("carol"))
	assert.Equal(t, UserOwner("carol"), o)
	assert.Error(t, o.Scan(42))
}

func TestOwner_JSON(t *testing.T) {
	m := AIModel{ID: "1", Name: "GPT-4"}
	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"createdBy":null`)

	m.CreatedBy = UserOwner("alice")
	b, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"createdBy":"alice"`)

	var back AIModel
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, UserOwner("alice"), back.CreatedBy)

	require.NoError(t, json.Unmarshal([]byte(`{"createdBy":null}`), &back))
	assert.True(t, back.IsSystem())
}
