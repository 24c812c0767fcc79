package model

import "encoding/json"

// AnswerValue is the normalized value of one answer: either a single scalar
// string (short_answer, multiple_choice, dropdown) or an ordered list of
// selections (checkbox). Which variant applies is decided by the question's
// declared type, never by inspecting the value itself.
type AnswerValue struct {
	multi      bool
	scalar     string
	selections []string
}

func ScalarValue(s string) AnswerValue {
	return AnswerValue{scalar: s}
}

func MultiValue(selections []string) AnswerValue {
	return AnswerValue{multi: true, selections: selections}
}

func (v AnswerValue) IsMulti() bool {
	return v.multi
}

func (v AnswerValue) Scalar() string {
	return v.scalar
}

func (v AnswerValue) Selections() []string {
	return v.selections
}

func (v AnswerValue) Empty() bool {
	if v.multi {
		return len(v.selections) == 0
	}
	return v.scalar == ""
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	if v.multi {
		if v.selections == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.selections)
	}
	return json.Marshal(v.scalar)
}

// DecodeValue reads a stored answer value back into its variant. The shape
// is dictated by the owning question's type, matching how it was written.
func DecodeValue(t QuestionType, data []byte) (AnswerValue, error) {
	if t.MultiValued() {
		var selections []string
		if err := json.Unmarshal(data, &selections); err != nil {
			return AnswerValue{}, err
		}
		return MultiValue(selections), nil
	}

	var scalar string
	if err := json.Unmarshal(data, &scalar); err != nil {
		return AnswerValue{}, err
	}
	return ScalarValue(scalar), nil
}
