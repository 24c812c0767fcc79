package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaretti/quick-forms/model"
)

func TestAnswerShortAnswer(t *testing.T) {
	q := model.Question{ID: 1, Type: model.ShortAnswer, Title: "Feedback"}

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		v, p := Answer(q, "  hello world  ")
		require.Nil(t, p)
		assert.Equal(t, "hello world", v.Scalar())
	})

	t.Run("rejects non-string values", func(t *testing.T) {
		_, p := Answer(q, 42.0)
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("rejects text over the length limit", func(t *testing.T) {
		_, p := Answer(q, strings.Repeat("x", maxTextLength+1))
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("accepts text at the length limit", func(t *testing.T) {
		_, p := Answer(q, strings.Repeat("x", maxTextLength))
		assert.Nil(t, p)
	})

	t.Run("normalization is a fixed point", func(t *testing.T) {
		v, p := Answer(q, "  some text  ")
		require.Nil(t, p)
		again, p := Answer(q, v.Scalar())
		require.Nil(t, p)
		assert.Equal(t, v, again)
	})
}

func TestAnswerChoice(t *testing.T) {
	q := model.Question{
		ID:       1,
		Type:     model.MultipleChoice,
		Title:    "Attending?",
		Options:  []string{"Yes", "No"},
		Required: true,
	}

	t.Run("accepts a declared option", func(t *testing.T) {
		v, p := Answer(q, "Yes")
		require.Nil(t, p)
		assert.Equal(t, "Yes", v.Scalar())
	})

	t.Run("rejects a value outside the options", func(t *testing.T) {
		_, p := Answer(q, "Maybe")
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
		assert.Contains(t, p.Message, "Maybe")
	})

	t.Run("option match is case-sensitive", func(t *testing.T) {
		_, p := Answer(q, "yes")
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("rejects a list where a single choice is expected", func(t *testing.T) {
		_, p := Answer(q, []any{"Yes"})
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("dropdown behaves the same", func(t *testing.T) {
		dd := q
		dd.Type = model.Dropdown
		_, p := Answer(dd, "Maybe")
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})
}

func TestAnswerCheckbox(t *testing.T) {
	q := model.Question{
		ID:      2,
		Type:    model.Checkbox,
		Title:   "Toppings",
		Options: []string{"A", "B", "C"},
	}

	t.Run("accepts declared selections preserving order", func(t *testing.T) {
		v, p := Answer(q, []any{"C", "A"})
		require.Nil(t, p)
		assert.True(t, v.IsMulti())
		assert.Equal(t, []string{"C", "A"}, v.Selections())
	})

	t.Run("duplicate selection is a hard error, not a silent dedup", func(t *testing.T) {
		_, p := Answer(q, []any{"A", "A"})
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
		assert.Contains(t, p.Message, "duplicate")
	})

	t.Run("rejects a selection outside the options", func(t *testing.T) {
		_, p := Answer(q, []any{"A", "D"})
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("rejects non-string elements", func(t *testing.T) {
		_, p := Answer(q, []any{"A", 1.0})
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})

	t.Run("rejects a scalar where a list is expected", func(t *testing.T) {
		_, p := Answer(q, "A")
		require.NotNil(t, p)
		assert.Equal(t, Value, p.Kind)
	})
}

func TestAnswerEmptyValues(t *testing.T) {
	t.Run("required question rejects empty values", func(t *testing.T) {
		q := model.Question{ID: 1, Type: model.ShortAnswer, Required: true}
		for _, raw := range []any{nil, "", "   ", []any{}} {
			_, p := Answer(q, raw)
			require.NotNil(t, p, "raw=%v", raw)
			assert.Equal(t, Required, p.Kind)
		}
	})

	t.Run("optional scalar question passes through a normalized empty value", func(t *testing.T) {
		q := model.Question{ID: 1, Type: model.ShortAnswer}
		v, p := Answer(q, nil)
		require.Nil(t, p)
		assert.True(t, v.Empty())
		assert.False(t, v.IsMulti())
	})

	t.Run("optional checkbox question passes through an empty selection", func(t *testing.T) {
		q := model.Question{ID: 2, Type: model.Checkbox, Options: []string{"A"}}
		v, p := Answer(q, []any{})
		require.Nil(t, p)
		assert.True(t, v.Empty())
		assert.True(t, v.IsMulti())
	})
}

func TestAnswerUnknownType(t *testing.T) {
	q := model.Question{ID: 9, Type: "file_upload", Title: "CV"}
	_, p := Answer(q, "whatever")
	require.NotNil(t, p)
	assert.Equal(t, Value, p.Kind)
	assert.Contains(t, p.Message, "unknown question type")
}
