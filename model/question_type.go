package model

type QuestionType string

const (
	ShortAnswer    QuestionType = "short_answer"
	MultipleChoice QuestionType = "multiple_choice"
	Checkbox       QuestionType = "checkbox"
	Dropdown       QuestionType = "dropdown"
)

// questionTypes is the single source of truth for known question types and
// whether each one carries a declared option set.
var questionTypes = map[QuestionType]struct{ requiresOptions bool }{
	ShortAnswer:    {requiresOptions: false},
	MultipleChoice: {requiresOptions: true},
	Checkbox:       {requiresOptions: true},
	Dropdown:       {requiresOptions: true},
}

func (t QuestionType) Known() bool {
	_, ok := questionTypes[t]
	return ok
}

func (t QuestionType) RequiresOptions() bool {
	return questionTypes[t].requiresOptions
}

// MultiValued reports whether answers to this type hold a list of selections
// rather than a single scalar.
func (t QuestionType) MultiValued() bool {
	return t == Checkbox
}
