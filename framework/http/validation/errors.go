package validation

// Errors holds validation errors — mirrors Laravel's MessageBag.
// Both the scalar Validator and the FileValidator write into one.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

func (e *Errors) add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// All returns every message across all fields.
func (e *Errors) All() []string {
	var out []string
	for _, msgs := range e.Bag {
		out = append(out, msgs...)
	}
	return out
}

// Merge copies every message from other into e.
func (e *Errors) Merge(other *Errors) {
	if other == nil {
		return
	}
	for field, msgs := range other.Bag {
		for _, msg := range msgs {
			e.add(field, msg)
		}
	}
}
