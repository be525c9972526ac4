package domain

import "fmt"

// Question represents a single DNS query entry: name, type, and class.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question with the IN class, the default for
// resolver-issued queries.
func NewQuestion(name string, rrtype RRType) Question {
	return Question{
		Name:  name,
		Type:  rrtype,
		Class: RRClassIN,
	}
}

// Validate checks whether the Question fields are structurally valid.
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("query name must not be empty")
	}
	if !q.Class.IsValid() {
		return fmt.Errorf("unsupported RRClass: %d", q.Class)
	}
	return nil
}
