package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueVariants(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		v := ScalarValue("hello")
		assert.False(t, v.IsMulti())
		assert.False(t, v.Empty())
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `"hello"`, string(data))
	})

	t.Run("multi", func(t *testing.T) {
		v := MultiValue([]string{"A", "B"})
		assert.True(t, v.IsMulti())
		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.JSONEq(t, `["A","B"]`, string(data))
	})

	t.Run("empty multi marshals as an empty array", func(t *testing.T) {
		data, err := json.Marshal(MultiValue(nil))
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})
}

func TestDecodeValue(t *testing.T) {
	t.Run("decoding dispatches on question type, not value shape", func(t *testing.T) {
		v, err := DecodeValue(Checkbox, []byte(`["A","B"]`))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, v.Selections())

		v, err = DecodeValue(Dropdown, []byte(`"A"`))
		require.NoError(t, err)
		assert.Equal(t, "A", v.Scalar())
	})

	t.Run("mismatched shape is an error", func(t *testing.T) {
		_, err := DecodeValue(ShortAnswer, []byte(`["A"]`))
		assert.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		orig := MultiValue([]string{"C", "A"})
		data, err := json.Marshal(orig)
		require.NoError(t, err)
		back, err := DecodeValue(Checkbox, data)
		require.NoError(t, err)
		assert.Equal(t, orig, back)
	})
}

func TestQuestionType(t *testing.T) {
	assert.True(t, ShortAnswer.Known())
	assert.False(t, QuestionType("rating").Known())
	assert.False(t, ShortAnswer.RequiresOptions())
	assert.True(t, MultipleChoice.RequiresOptions())
	assert.True(t, Dropdown.RequiresOptions())
	assert.True(t, Checkbox.RequiresOptions())
	assert.True(t, Checkbox.MultiValued())
	assert.False(t, MultipleChoice.MultiValued())
}
