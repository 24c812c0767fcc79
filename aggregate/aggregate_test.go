package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmaretti/quick-forms/model"
)

func response(answers ...model.Answer) model.Response {
	return model.Response{Answers: answers}
}

func TestAggregateChoice(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Type: model.MultipleChoice, Title: "Attending?", Options: []string{"Yes", "No", "Maybe"}},
	}

	t.Run("distribution is seeded with every option", func(t *testing.T) {
		stats := Aggregate(questions, nil)
		require.Contains(t, stats, 1)
		assert.Equal(t, map[string]int{"Yes": 0, "No": 0, "Maybe": 0}, stats[1].Distribution)
		assert.Zero(t, stats[1].TotalResponses)
	})

	t.Run("counts land on the chosen option", func(t *testing.T) {
		stats := Aggregate(questions, []model.Response{
			response(model.Answer{QuestionID: 1, Value: model.ScalarValue("Yes")}),
			response(model.Answer{QuestionID: 1, Value: model.ScalarValue("Yes")}),
			response(model.Answer{QuestionID: 1, Value: model.ScalarValue("No")}),
		})
		s := stats[1]
		assert.Equal(t, map[string]int{"Yes": 2, "No": 1, "Maybe": 0}, s.Distribution)
		assert.Equal(t, 3, s.TotalResponses)
	})

	t.Run("distribution counts sum to the answering submissions", func(t *testing.T) {
		responses := []model.Response{
			response(model.Answer{QuestionID: 1, Value: model.ScalarValue("Yes")}),
			response(model.Answer{QuestionID: 1, Value: model.ScalarValue("Maybe")}),
			response(), // skipped the question entirely
		}
		s := Aggregate(questions, responses)[1]
		sum := 0
		for _, n := range s.Distribution {
			sum += n
		}
		assert.Equal(t, s.TotalResponses, sum)
	})
}

func TestAggregateCheckbox(t *testing.T) {
	questions := []model.Question{
		{ID: 2, Type: model.Checkbox, Title: "Toppings", Options: []string{"A", "B", "C"}},
	}

	stats := Aggregate(questions, []model.Response{
		response(model.Answer{QuestionID: 2, Value: model.MultiValue([]string{"A", "B"})}),
		response(model.Answer{QuestionID: 2, Value: model.MultiValue([]string{"A"})}),
	})
	s := stats[2]

	// each selection increments its option, but a submission counts once
	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 0}, s.Distribution)
	assert.Equal(t, 2, s.TotalResponses)
}

func TestAggregateShortAnswer(t *testing.T) {
	questions := []model.Question{
		{ID: 3, Type: model.ShortAnswer, Title: "Comments"},
	}

	t.Run("collects texts and word frequencies", func(t *testing.T) {
		stats := Aggregate(questions, []model.Response{
			response(model.Answer{QuestionID: 3, Value: model.ScalarValue("cat dog cat")}),
			response(model.Answer{QuestionID: 3, Value: model.ScalarValue("dog bird")}),
		})
		s := stats[3]
		assert.Equal(t, []string{"cat dog cat", "dog bird"}, s.Texts)
		assert.Equal(t, map[string]int{"cat": 2, "dog": 2, "bird": 1}, s.WordFrequency)
		assert.Equal(t, 2, s.TotalResponses)
	})

	t.Run("short tokens are dropped and case folded", func(t *testing.T) {
		stats := Aggregate(questions, []model.Response{
			response(model.Answer{QuestionID: 3, Value: model.ScalarValue("OK so it IS Fine")}),
		})
		s := stats[3]
		assert.Equal(t, map[string]int{"fine": 1}, s.WordFrequency)
	})

	t.Run("empty answers do not count", func(t *testing.T) {
		stats := Aggregate(questions, []model.Response{
			response(model.Answer{QuestionID: 3, Value: model.ScalarValue("")}),
		})
		assert.Zero(t, stats[3].TotalResponses)
		assert.Empty(t, stats[3].Texts)
	})
}

func TestTopWords(t *testing.T) {
	questions := []model.Question{
		{ID: 3, Type: model.ShortAnswer, Title: "Comments"},
	}
	stats := Aggregate(questions, []model.Response{
		response(model.Answer{QuestionID: 3, Value: model.ScalarValue("cat dog cat")}),
		response(model.Answer{QuestionID: 3, Value: model.ScalarValue("dog bird")}),
	})
	s := stats[3]

	t.Run("descending by count, ties by first occurrence", func(t *testing.T) {
		assert.Equal(t, []WordCount{
			{Word: "cat", Count: 2},
			{Word: "dog", Count: 2},
			{Word: "bird", Count: 1},
		}, s.TopWords(-1))
	})

	t.Run("truncates to n", func(t *testing.T) {
		assert.Len(t, s.TopWords(2), 2)
		assert.Empty(t, s.TopWords(0))
	})
}

func TestAggregateSkipsStrayAnswers(t *testing.T) {
	questions := []model.Question{
		{ID: 1, Type: model.Dropdown, Title: "Pick", Options: []string{"X"}},
	}
	stats := Aggregate(questions, []model.Response{
		response(model.Answer{QuestionID: 42, Value: model.ScalarValue("X")}),
	})
	assert.Zero(t, stats[1].TotalResponses)
}
