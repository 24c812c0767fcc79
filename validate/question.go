package validate

import (
	"fmt"
	"strings"

	"github.com/dmaretti/quick-forms/model"
)

// Questions checks a form's question definitions as supplied by the builder:
// known type, title present, and an option set exactly when the type calls
// for one, with non-blank options unique case-insensitively.
func Questions(questions []model.Question) *ValidationError {
	c := &collector{}
	for i, q := range questions {
		if !q.Type.Known() {
			c.add(Problem{Index: i, Question: q.Title, Kind: Value,
				Message: fmt.Sprintf("unknown question type %q", q.Type)})
			continue
		}
		if strings.TrimSpace(q.Title) == "" {
			c.add(Problem{Index: i, Kind: Value, Message: "question title is required"})
		}

		if !q.Type.RequiresOptions() {
			if len(q.Options) > 0 {
				c.add(Problem{Index: i, Question: q.Title, Kind: Value,
					Message: fmt.Sprintf("%s questions do not take options", q.Type)})
			}
			continue
		}

		if len(q.Options) == 0 {
			c.add(Problem{Index: i, Question: q.Title, Kind: Value,
				Message: fmt.Sprintf("%s questions need at least one option", q.Type)})
			continue
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				c.add(Problem{Index: i, Question: q.Title, Kind: Value,
					Message: "options must not be blank"})
				continue
			}
			folded := strings.ToLower(opt)
			if _, dup := seen[folded]; dup {
				c.add(Problem{Index: i, Question: q.Title, Kind: Value,
					Message: fmt.Sprintf("duplicate option %q", opt)})
			}
			seen[folded] = struct{}{}
		}
	}
	return c.result()
}

// QuestionEdits enforces the freeze rules that apply once a form has
// collected submissions: no question may be removed, no type may change, and
// options may only be appended. Titles and required flags stay editable.
func QuestionEdits(existing, incoming []model.Question) *ValidationError {
	c := &collector{}

	byID := make(map[int]model.Question, len(incoming))
	for _, q := range incoming {
		if q.ID != 0 {
			byID[q.ID] = q
		}
	}

	for _, prev := range existing {
		next, ok := byID[prev.ID]
		if !ok {
			c.add(Problem{Index: -1, QuestionID: prev.ID, Question: prev.Title, Kind: Structural,
				Message: "question cannot be removed once the form has submissions"})
			continue
		}
		if next.Type != prev.Type {
			c.add(Problem{Index: -1, QuestionID: prev.ID, Question: prev.Title, Kind: Value,
				Message: fmt.Sprintf("question type cannot change from %s to %s", prev.Type, next.Type)})
		}
		if !optionsAppendOnly(prev.Options, next.Options) {
			c.add(Problem{Index: -1, QuestionID: prev.ID, Question: prev.Title, Kind: Value,
				Message: "options may only be appended once the form has submissions"})
		}
	}

	return c.result()
}

func optionsAppendOnly(prev, next []string) bool {
	if len(next) < len(prev) {
		return false
	}
	for i, opt := range prev {
		if next[i] != opt {
			return false
		}
	}
	return true
}
