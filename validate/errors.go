package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a validation problem.
//
// Structural problems mean the submission does not even line up with the
// form (unknown question, duplicate answer). Value problems mean a single
// answer has the wrong shape or an undeclared option. Required problems mean
// a required question went unanswered.
type Kind string

const (
	Structural Kind = "structural"
	Value      Kind = "value"
	Required   Kind = "required"
)

// Problem is one validation failure, tagged with enough context for the
// client to highlight the offending form field.
type Problem struct {
	// Index is the position of the offending entry in the submitted answer
	// array, or -1 when the problem is not tied to a submitted entry
	// (missing required question, malformed form).
	Index      int    `json:"index"`
	QuestionID int    `json:"question_id,omitempty"`
	Question   string `json:"question,omitempty"`
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
}

func (p Problem) String() string {
	if p.Question != "" {
		return fmt.Sprintf("%s: %s", p.Question, p.Message)
	}
	return p.Message
}

// ValidationError reports every problem found in one submission attempt.
type ValidationError struct {
	Problems []Problem `json:"errors"`
}

func (err *ValidationError) Error() string {
	if err == nil || len(err.Problems) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Problems))
	for _, p := range err.Problems {
		parts = append(parts, p.String())
	}
	return "submission validation failed: " + strings.Join(parts, "; ")
}

type collector struct {
	problems []Problem
}

func (c *collector) add(p Problem) {
	c.problems = append(c.problems, p)
}

func (c *collector) result() *ValidationError {
	if len(c.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: c.problems}
}
