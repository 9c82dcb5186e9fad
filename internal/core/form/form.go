// Package form keeps the values and field errors of a form and validates them
// against per-field rules.
package form

import "sort"

// Values maps field names to their raw text.
type Values map[string]string

// Rule returns an error message for the value, or "" when it is valid. all
// gives access to other fields for cross-field checks.
type Rule func(value string, all Values) string

// Rules maps field names to their rule.
type Rules map[string]Rule

// Form holds field values and the errors of the last validation.
type Form struct {
	initial Values
	values  Values
	errors  map[string]string
}

// New creates a form starting from the given values.
func New(initial Values) *Form {
	f := &Form{initial: copyValues(initial)}
	f.Reset()
	return f
}

func copyValues(v Values) Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// Get returns the current value of a field.
func (f *Form) Get(field string) string { return f.values[field] }

// Values returns a copy of all values.
func (f *Form) Values() Values { return copyValues(f.values) }

// Set updates a field and clears its error.
func (f *Form) Set(field, value string) {
	f.values[field] = value
	delete(f.errors, field)
}

// Error returns the message recorded for a field.
func (f *Form) Error(field string) string { return f.errors[field] }

// Errors returns the field names that currently have an error, sorted.
func (f *Form) Errors() []string {
	out := make([]string, 0, len(f.errors))
	for k := range f.errors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Reset restores the initial values and clears all errors.
func (f *Form) Reset() {
	f.values = copyValues(f.initial)
	f.errors = map[string]string{}
}

// Validate runs every rule, records the non-empty messages and reports whether
// the form is valid.
func (f *Form) Validate(rules Rules) bool {
	ok := true
	for field, rule := range rules {
		if rule == nil {
			continue
		}
		if msg := rule(f.values[field], f.values); msg != "" {
			f.errors[field] = msg
			ok = false
		} else {
			delete(f.errors, field)
		}
	}
	return ok
}

// All chains rules; the first message wins.
func All(rules ...Rule) Rule {
	return func(v string, all Values) string {
		for _, r := range rules {
			if msg := r(v, all); msg != "" {
				return msg
			}
		}
		return ""
	}
}
