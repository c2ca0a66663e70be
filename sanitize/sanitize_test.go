package sanitize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}

func TestValue_Disabled(t *testing.T) {
	v := payload{Status: "pending", Body: strings.Repeat("x", 10_000)}
	assert.Equal(t, v, Value(v, false, 10))
}

func TestValue_NilPassesThrough(t *testing.T) {
	assert.Nil(t, Value(nil, true, DefaultThreshold))

	var p *payload
	assert.Equal(t, p, Value(p, true, DefaultThreshold))
}

func TestValue_ScalarsPassThrough(t *testing.T) {
	big := strings.Repeat("x", 10_000)

	assert.Equal(t, 42, Value(42, true, 1))
	assert.Equal(t, true, Value(true, true, 1))
	assert.Equal(t, 1.5, Value(1.5, true, 1))
	// Strings are not record types; size bounding does not apply to them.
	assert.Equal(t, big, Value(big, true, 1))
}

func TestValue_UnderThresholdRoundTrips(t *testing.T) {
	v := payload{Status: "pending"}
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.LessOrEqual(t, len(data), DefaultThreshold)

	assert.Equal(t, v, Value(v, true, DefaultThreshold))
}

func TestValue_AtExactThresholdRoundTrips(t *testing.T) {
	v := payload{Status: "pending"}
	data, err := json.Marshal(v)
	require.NoError(t, err)

	assert.Equal(t, v, Value(v, true, len(data)))
	assert.IsType(t, "", Value(v, true, len(data)-1))
}

func TestValue_OverThresholdNamedType(t *testing.T) {
	v := payload{Status: "pending", Body: strings.Repeat("x", 1000)}
	data, err := json.Marshal(v)
	require.NoError(t, err)

	got := Value(v, true, DefaultThreshold)
	assert.Equal(t, fmt.Sprintf("Large payload: %d chars", len(data)), got)
}

func TestValue_OverThresholdPointerUsesElemName(t *testing.T) {
	v := &payload{Body: strings.Repeat("x", 1000)}
	data, err := json.Marshal(v)
	require.NoError(t, err)

	got := Value(v, true, DefaultThreshold)
	assert.Equal(t, fmt.Sprintf("Large payload: %d chars", len(data)), got)
}

func TestValue_OverThresholdUnnamedTypeFallsBack(t *testing.T) {
	v := map[string]string{"body": strings.Repeat("x", 1000)}
	data, err := json.Marshal(v)
	require.NoError(t, err)

	got := Value(v, true, DefaultThreshold)
	assert.Equal(t, fmt.Sprintf("Large Object: %d chars", len(data)), got)
}

func TestValue_CycleSanitizesToPlaceholder(t *testing.T) {
	cyclic := map[string]any{}
	cyclic["self"] = cyclic

	assert.Equal(t, Unstringifiable, Value(cyclic, true, DefaultThreshold))
}

func TestValue_UnmarshalableFieldSanitizesToPlaceholder(t *testing.T) {
	v := struct{ F func() }{F: func() {}}
	assert.Equal(t, Unstringifiable, Value(v, true, DefaultThreshold))
}

func TestValue_SmallErrorRoundTrips(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, err, Value(err, true, DefaultThreshold))
}

func FuzzValue(f *testing.F) {
	f.Add("pending", 0)
	f.Add(strings.Repeat("x", 2000), 500)
	f.Add("", -1)

	f.Fuzz(func(t *testing.T, body string, threshold int) {
		v := payload{Status: "fuzz", Body: body}
		got := Value(v, true, threshold)

		switch g := got.(type) {
		case payload:
			if g != v {
				t.Fatalf("pass-through value mutated: %+v", g)
			}
		case string:
			if !strings.HasPrefix(g, "Large payload: ") || !strings.HasSuffix(g, " chars") {
				t.Fatalf("unexpected placeholder: %q", g)
			}
		default:
			t.Fatalf("unexpected type %T", got)
		}
	})
}
