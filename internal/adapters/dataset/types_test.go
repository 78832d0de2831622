package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt(t *testing.T) {
	cases := []struct {
		in    string
		value int
		extra int
		set   bool
	}{
		{`12`, 12, 0, true},
		{`"12"`, 12, 0, true},
		{`"90+4"`, 90, 4, true},
		{`45.0`, 45, 0, true},
		{`null`, 0, 0, false},
		{`"HT"`, 0, 0, false},
		{`{}`, 0, 0, false},
	}
	for _, c := range cases {
		var f flexInt
		require.NoError(t, json.Unmarshal([]byte(c.in), &f), c.in)
		assert.Equal(t, c.set, f.Set, c.in)
		assert.Equal(t, c.value, f.Value, c.in)
		assert.Equal(t, c.extra, f.Extra, c.in)
	}
}

func TestFlexFloat(t *testing.T) {
	var f flexFloat
	require.NoError(t, json.Unmarshal([]byte(`"61%"`), &f))
	assert.True(t, f.Set)
	assert.Equal(t, 61.0, f.Value)

	require.NoError(t, json.Unmarshal([]byte(`"-"`), &f))
	assert.False(t, f.Set)
}

func TestParseDecimal(t *testing.T) {
	d, ok := parseDecimal(json.RawMessage(`"2.50"`))
	require.True(t, ok)
	assert.Equal(t, "2.5", d.String())

	d, ok = parseDecimal(json.RawMessage(`1.727`))
	require.True(t, ok)
	assert.Equal(t, "1.727", d.String())

	_, ok = parseDecimal(json.RawMessage(`null`))
	assert.False(t, ok)
	_, ok = parseDecimal(json.RawMessage(`"suspended"`))
	assert.False(t, ok)
	_, ok = parseDecimal(nil)
	assert.False(t, ok)
}

func TestMapState(t *testing.T) {
	assert.Equal(t, "finished", string(mapState("FT")))
	assert.Equal(t, "finished", string(mapState("ft_pen")))
	assert.Equal(t, "live", string(mapState("HT")))
	assert.Equal(t, "live", string(mapState("INPLAY_2ND_HALF")))
	assert.Equal(t, "not_started", string(mapState("NS")))
	assert.Equal(t, "not_started", string(mapState("")))
}
