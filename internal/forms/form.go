// Package forms holds editable drafts of entities and the rule tables that
// validate them before anything is sent to the backend.
package forms

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is returned when a draft fails validation
var ErrInvalid = errors.New("form has validation errors")

// Kind tells the UI how to edit a field
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindChoice
	KindBool
)

// Choice is one allowed value of a choice field
type Choice struct {
	Value string
	Label string
}

// Rule is a validator tag and the message shown when it fails. Numeric rules
// run against the value parsed as a number; a value that does not parse fails.
type Rule struct {
	Tag     string
	Message string
	Numeric bool
}

// Field describes one draft entry
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Default  string
	Choices  []Choice
	Rules    []Rule
	Restrict string // when set, a value outside the loaded choices fails with this message
}

// CrossRule inspects the whole draft and returns field errors. It only sees
// fields whose own rules passed.
type CrossRule func(values map[string]string) map[string]string

// Schema is a per-entity rule table
type Schema struct {
	Fields []Field
	Cross  []CrossRule
}

var looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	return v
}

// Form is a flat draft of field values plus their validation errors
type Form struct {
	schema  Schema
	values  map[string]string
	initial map[string]string
	errors  map[string]string
	choices map[string][]Choice
	v       *validator.Validate
}

// New creates a draft holding the schema defaults
func New(schema Schema) *Form {
	f := &Form{
		schema:  schema,
		initial: make(map[string]string, len(schema.Fields)),
		errors:  map[string]string{},
		choices: map[string][]Choice{},
		v:       newValidator(),
	}
	for _, field := range schema.Fields {
		f.initial[field.Name] = field.Default
		if len(field.Choices) > 0 {
			f.choices[field.Name] = field.Choices
		}
	}
	f.values = copyMap(f.initial)
	return f
}

// Fields lists the schema fields in display order
func (f *Form) Fields() []Field { return f.schema.Fields }

// Field looks up a field by name
func (f *Form) Field(name string) (Field, bool) {
	for _, field := range f.schema.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Value returns the raw draft value
func (f *Form) Value(name string) string { return f.values[name] }

// Values returns a copy of the draft
func (f *Form) Values() map[string]string { return copyMap(f.values) }

// Set updates one value and clears that field's error
func (f *Form) Set(name, value string) {
	f.values[name] = value
	delete(f.errors, name)
}

// Error returns the stored error for a field
func (f *Form) Error(name string) string { return f.errors[name] }

// Errors returns a copy of all field errors
func (f *Form) Errors() map[string]string { return copyMap(f.errors) }

// Valid reports whether no errors are stored
func (f *Form) Valid() bool { return len(f.errors) == 0 }

// Choices returns the options of a choice field
func (f *Form) Choices(name string) []Choice { return f.choices[name] }

// SetChoices replaces the options of a choice field, e.g. once vehicles load
func (f *Form) SetChoices(name string, choices []Choice) {
	f.choices[name] = choices
}

// Load fills the draft from an existing record for editing
func (f *Form) Load(values map[string]string) {
	f.values = copyMap(f.initial)
	for k, v := range values {
		f.values[k] = v
	}
	f.errors = map[string]string{}
}

// Reset restores the defaults and drops all errors
func (f *Form) Reset() {
	f.values = copyMap(f.initial)
	f.errors = map[string]string{}
}

// Validate runs every rule and stores the first failure per field.
// It returns true iff no field failed.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}

	for _, field := range f.schema.Fields {
		if msg := f.check(field); msg != "" {
			f.errors[field.Name] = msg
		}
	}

	passed := map[string]string{}
	for k, v := range f.values {
		if _, failed := f.errors[k]; !failed {
			passed[k] = strings.TrimSpace(v)
		}
	}
	for _, rule := range f.schema.Cross {
		for name, msg := range rule(passed) {
			if _, failed := f.errors[name]; !failed {
				f.errors[name] = msg
			}
		}
	}

	return len(f.errors) == 0
}

func (f *Form) check(field Field) string {
	value := strings.TrimSpace(f.values[field.Name])

	for _, rule := range field.Rules {
		var target any = value
		if rule.Numeric {
			n, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return rule.Message
			}
			target = n
		}
		if err := f.v.Var(target, rule.Tag); err != nil {
			return rule.Message
		}
	}

	if field.Restrict != "" && value != "" {
		if choices := f.choices[field.Name]; len(choices) > 0 && !hasChoice(choices, value) {
			return field.Restrict
		}
	}
	return ""
}

func hasChoice(choices []Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func required(msg string) Rule { return Rule{Tag: "required", Message: msg} }
