package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type testObject struct {
	VoteCount uint32 `json:"vote_count"`
}

func TestValue(t *testing.T) {
	testValues := []interface{}{
		nil,
		true,
		false,
		"minidao",
		"",
		^uint(0),
		uint8(0),
		^uint16(0),
		^uint32(0),
		uint32(0),
		^uint64(0),
		testObject{VoteCount: 3},
	}

	for _, testValue := range testValues {
		v1, err := ToValue(testValue)
		require.NoError(t, err)

		encoded, err := v1.Serialize()
		require.NoError(t, err)

		v2, err := ToValue(encoded)
		require.NoError(t, err)
		require.True(t, v1.Equal(v2), "%v", testValue)
		require.True(t, v2.EqualNative(testValue), "%v", testValue)

		b, err := json.Marshal(v1)
		require.NoError(t, err)

		var v3 Value
		require.NoError(t, json.Unmarshal(b, &v3))
		require.True(t, v1.Equal(&v3), "%s", string(b))
	}

	{
		v1, _ := ToValue(true)
		v2, _ := ToValue(false)
		require.False(t, v1.Equal(v2))
	}
}

func TestValueTypes(t *testing.T) {
	v, _ := ToValue(uint32(7))
	require.Equal(t, UInt, v.Type)
	require.Equal(t, "7", v.String())
	require.Equal(t, uint64(7), v.Interface())

	v, _ = ToValue(testObject{VoteCount: 1})
	require.Equal(t, Object, v.Type)
	require.Equal(t, `{"vote_count":1}`, v.String())

	var o testObject
	require.NoError(t, v.Unmarshal(&o))
	require.Equal(t, uint32(1), o.VoteCount)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"type":"object","value":{"vote_count":1}}`, string(b))

	v, _ = ToValue(nil)
	require.Equal(t, Nil, v.Type)
	require.Error(t, v.Unmarshal(&o))
}

func TestValueBadInput(t *testing.T) {
	_, err := ToValue([]byte{})
	require.Error(t, err)

	_, err = ToValue([]byte{byte(UInt), 0x01})
	require.Error(t, err)

	_, err = ToValue([]byte{0xff})
	require.Error(t, err)

	_, err = ToValue(func() {})
	require.Error(t, err)
}
