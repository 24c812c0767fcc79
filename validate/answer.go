package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmaretti/quick-forms/model"
)

// maxTextLength bounds short_answer values, in characters.
const maxTextLength = 5000

// Answer normalizes and validates one raw value against its question.
// Validation dispatches on the question's declared type, never on the shape
// of the incoming value. On success the returned problem is nil; an empty
// value for an optional question succeeds with a normalized empty value,
// which callers may choose not to persist.
//
// The Index and Question fields of a returned Problem are left for the
// caller to fill in.
func Answer(q model.Question, raw any) (model.AnswerValue, *Problem) {
	if isEmpty(raw) {
		if q.Required {
			return model.AnswerValue{}, problem(q, Required, "answer is required")
		}
		if q.Type.MultiValued() {
			return model.MultiValue(nil), nil
		}
		return model.ScalarValue(""), nil
	}

	switch q.Type {
	case model.ShortAnswer:
		text, ok := raw.(string)
		if !ok {
			return model.AnswerValue{}, problem(q, Value, "expected a text value")
		}
		text = strings.TrimSpace(text)
		if utf8.RuneCountInString(text) > maxTextLength {
			return model.AnswerValue{}, problem(q, Value,
				fmt.Sprintf("text exceeds %d characters", maxTextLength))
		}
		return model.ScalarValue(text), nil

	case model.MultipleChoice, model.Dropdown:
		choice, ok := raw.(string)
		if !ok {
			return model.AnswerValue{}, problem(q, Value, "expected a single choice")
		}
		if !q.HasOption(choice) {
			return model.AnswerValue{}, problem(q, Value,
				fmt.Sprintf("%q is not one of the options", choice))
		}
		return model.ScalarValue(choice), nil

	case model.Checkbox:
		selections, ok := toStringSlice(raw)
		if !ok {
			return model.AnswerValue{}, problem(q, Value, "expected a list of selections")
		}
		seen := make(map[string]struct{}, len(selections))
		for _, sel := range selections {
			if !q.HasOption(sel) {
				return model.AnswerValue{}, problem(q, Value,
					fmt.Sprintf("%q is not one of the options", sel))
			}
			if _, dup := seen[sel]; dup {
				return model.AnswerValue{}, problem(q, Value,
					fmt.Sprintf("duplicate selection %q", sel))
			}
			seen[sel] = struct{}{}
		}
		return model.MultiValue(selections), nil

	default:
		// should not happen: the schema provider only hands out known types
		return model.AnswerValue{}, problem(q, Value, "unknown question type")
	}
}

func problem(q model.Question, kind Kind, msg string) *Problem {
	return &Problem{Index: -1, QuestionID: q.ID, Question: q.Title, Kind: kind, Message: msg}
}

// isEmpty reports whether a raw value counts as "no answer": null, a blank
// string, or an empty selection list.
func isEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}
	return false
}

// toStringSlice accepts the two encodings a selection list shows up as:
// []any out of a decoded JSON body, or []string when already typed.
func toStringSlice(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
