package optional_test

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/detached-state-go/optional"
)

func Test_ZeroValue_IsAbsent(t *testing.T) {
	var v optional.Value[int]

	got, ok := v.Get()

	assert.False(t, v.IsPresent())
	assert.False(t, ok)
	assert.Equal(t, 0, got)
	assert.Equal(t, optional.None[int](), v)
}

func Test_Some_HoldsZeroValueAsPresent(t *testing.T) {
	v := optional.Some(0)

	got, ok := v.Get()

	assert.True(t, v.IsPresent())
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func Test_Of(t *testing.T) {
	assert.Equal(t, optional.Some("x"), optional.Of("x", true))
	assert.Equal(t, optional.None[string](), optional.Of("x", false))
}

func Test_FromPointer(t *testing.T) {
	s := "label"

	assert.Equal(t, optional.Some("label"), optional.FromPointer(&s))
	assert.Equal(t, optional.None[string](), optional.FromPointer[string](nil))
}

func Test_OrElse(t *testing.T) {
	assert.Equal(t, 7, optional.Some(7).OrElse(3))
	assert.Equal(t, 3, optional.None[int]().OrElse(3))
}

func Test_JSON(t *testing.T) {
	type doc struct {
		X optional.Value[int]    `json:"x"`
		Y optional.Value[string] `json:"y"`
	}

	tests := []struct {
		name     string
		jsonData string
		expected doc
	}{
		{
			name:     "both present",
			jsonData: `{"x":5,"y":"a"}`,
			expected: doc{X: optional.Some(5), Y: optional.Some("a")},
		},
		{
			name:     "explicit null is absent",
			jsonData: `{"x":null,"y":"a"}`,
			expected: doc{X: optional.None[int](), Y: optional.Some("a")},
		},
		{
			name:     "missing key is absent",
			jsonData: `{"y":"a"}`,
			expected: doc{Y: optional.Some("a")},
		},
		{
			name:     "present zero value survives",
			jsonData: `{"x":0,"y":""}`,
			expected: doc{X: optional.Some(0), Y: optional.Some("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got doc
			err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(tt.jsonData), &got)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func Test_JSON_AbsentEncodesAsNull(t *testing.T) {
	type doc struct {
		X optional.Value[int] `json:"x"`
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(doc{})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"x":null}`, string(data))
}

func Test_JSON_RejectsWrongType(t *testing.T) {
	var v optional.Value[int]

	err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(`"five"`), &v)

	assert.Error(t, err)
	assert.False(t, v.IsPresent())
}
