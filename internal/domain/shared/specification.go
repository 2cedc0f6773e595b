package shared

// Condition is a single field comparison inside a Specification.
type Condition struct {
	Field string
	Value any
}

// Specification describes a boolean predicate over an entity type
// without leaking storage details. Repositories translate conditions
// into queries; multiple conditions are combined with AND. A
// Specification is a value: And returns a new one, the receiver is
// never mutated.
type Specification struct {
	conditions []Condition
}

// Where starts a specification with a single condition
func Where(field string, value any) Specification {
	return Specification{conditions: []Condition{{Field: field, Value: value}}}
}

// And returns a new specification with an additional condition
func (s Specification) And(field string, value any) Specification {
	conditions := make([]Condition, 0, len(s.conditions)+1)
	conditions = append(conditions, s.conditions...)
	conditions = append(conditions, Condition{Field: field, Value: value})
	return Specification{conditions: conditions}
}

// Conditions returns the conditions in declaration order
func (s Specification) Conditions() []Condition {
	return s.conditions
}

// IsEmpty reports whether the specification has no conditions
func (s Specification) IsEmpty() bool {
	return len(s.conditions) == 0
}
