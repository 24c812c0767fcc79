package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaretti/quick-forms/model"
)

func TestQuestions(t *testing.T) {
	t.Run("valid definitions pass", func(t *testing.T) {
		verr := Questions([]model.Question{
			{Type: model.ShortAnswer, Title: "Comments"},
			{Type: model.Dropdown, Title: "Country", Options: []string{"IT", "FR"}},
		})
		assert.Nil(t, verr)
	})

	t.Run("unknown type", func(t *testing.T) {
		verr := Questions([]model.Question{{Type: "rating", Title: "Score"}})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "unknown question type")
	})

	t.Run("choice types need options", func(t *testing.T) {
		verr := Questions([]model.Question{{Type: model.Checkbox, Title: "Toppings"}})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "at least one option")
	})

	t.Run("short answer takes no options", func(t *testing.T) {
		verr := Questions([]model.Question{
			{Type: model.ShortAnswer, Title: "Comments", Options: []string{"A"}},
		})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "do not take options")
	})

	t.Run("options unique case-insensitively", func(t *testing.T) {
		verr := Questions([]model.Question{
			{Type: model.Dropdown, Title: "Pick", Options: []string{"Yes", "yes"}},
		})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "duplicate option")
	})

	t.Run("blank options rejected", func(t *testing.T) {
		verr := Questions([]model.Question{
			{Type: model.Dropdown, Title: "Pick", Options: []string{"Yes", "  "}},
		})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "blank")
	})
}

func TestQuestionEdits(t *testing.T) {
	existing := []model.Question{
		{ID: 1, Type: model.MultipleChoice, Title: "Attending?", Options: []string{"Yes", "No"}},
		{ID: 2, Type: model.ShortAnswer, Title: "Comments"},
	}

	t.Run("title and required flag stay editable", func(t *testing.T) {
		verr := QuestionEdits(existing, []model.Question{
			{ID: 1, Type: model.MultipleChoice, Title: "Will you attend?", Options: []string{"Yes", "No"}, Required: true},
			{ID: 2, Type: model.ShortAnswer, Title: "Comments"},
		})
		assert.Nil(t, verr)
	})

	t.Run("options may be appended", func(t *testing.T) {
		verr := QuestionEdits(existing, []model.Question{
			{ID: 1, Type: model.MultipleChoice, Title: "Attending?", Options: []string{"Yes", "No", "Maybe"}},
			{ID: 2, Type: model.ShortAnswer, Title: "Comments"},
		})
		assert.Nil(t, verr)
	})

	t.Run("new questions may be added", func(t *testing.T) {
		verr := QuestionEdits(existing, append([]model.Question{
			{Type: model.ShortAnswer, Title: "Anything else?"},
		}, existing...))
		assert.Nil(t, verr)
	})

	t.Run("options may not be removed or reordered", func(t *testing.T) {
		verr := QuestionEdits(existing, []model.Question{
			{ID: 1, Type: model.MultipleChoice, Title: "Attending?", Options: []string{"No", "Yes"}},
			{ID: 2, Type: model.ShortAnswer, Title: "Comments"},
		})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "appended")
	})

	t.Run("type may not change", func(t *testing.T) {
		verr := QuestionEdits(existing, []model.Question{
			{ID: 1, Type: model.Dropdown, Title: "Attending?", Options: []string{"Yes", "No"}},
			{ID: 2, Type: model.ShortAnswer, Title: "Comments"},
		})
		require.NotNil(t, verr)
		assert.Contains(t, verr.Problems[0].Message, "cannot change")
	})

	t.Run("questions may not be removed", func(t *testing.T) {
		verr := QuestionEdits(existing, existing[:1])
		require.NotNil(t, verr)
		assert.Equal(t, 2, verr.Problems[0].QuestionID)
		assert.Contains(t, verr.Problems[0].Message, "cannot be removed")
	})
}
