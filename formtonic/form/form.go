package form

import (
	"html/template"
	"net/url"
	"strings"
)

// Form is an ordered collection of fields and buttons.  Element order is
// rendering and validation order.  A Form is built per request: data is
// applied once with SetFormData, after which validity and values can be
// queried.
type Form struct {
	elements    []Element
	dataApplied bool
}

// New returns a form holding the given elements.
func New(elements ...Element) *Form {
	f := new(Form)
	f.Add(elements...)
	return f
}

// Add appends elements to the form.  Keys are not checked for uniqueness;
// duplicate keys receive the same submitted value.
func (f *Form) Add(elements ...Element) {
	f.elements = append(f.elements, elements...)
}

// Elements returns the form elements in order.
func (f *Form) Elements() []Element {
	elements := make([]Element, len(f.elements))
	copy(elements, f.elements)
	return elements
}

// Fields returns the fields of the form in order, skipping buttons.
func (f *Form) Fields() []*Field {
	fields := make([]*Field, 0, len(f.elements))
	for _, e := range f.elements {
		if field, ok := e.(*Field); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// Field returns the first field with the given key, or nil.
func (f *Form) Field(key string) *Field {
	for _, field := range f.Fields() {
		if field.Key() == key {
			return field
		}
	}
	return nil
}

// Buttons returns the buttons of the form in order.
func (f *Form) Buttons() []*Button {
	buttons := make([]*Button, 0)
	for _, e := range f.elements {
		if b, ok := e.(*Button); ok {
			buttons = append(buttons, b)
		}
	}
	return buttons
}

// SetFormData applies submitted data to every element.  Buttons and
// checkboxes are set from the presence of their key; other fields are set
// only when their key is present.  Data can be applied once.  If any element
// rejects its value, every element is put back the way it was and the error
// is returned.
func (f *Form) SetFormData(values url.Values) error {
	if f.dataApplied {
		return ErrDataAlreadyApplied
	}
	restore := make([]func(), 0, len(f.elements))
	for _, e := range f.elements {
		restore = append(restore, e.snapshot())
		if err := e.applySubmitted(values); err != nil {
			for _, undo := range restore {
				undo()
			}
			return err
		}
	}
	f.dataApplied = true
	return nil
}

// DataApplied reports whether SetFormData has completed.
func (f *Form) DataApplied() bool {
	return f.dataApplied
}

// AButtonWasClicked reports whether values contain the key of any button in
// this form.  Pages hosting several forms use it to find out which one was
// submitted.
func (f *Form) AButtonWasClicked(values url.Values) bool {
	for _, b := range f.Buttons() {
		if b.ClickedIn(values) {
			return true
		}
	}
	return false
}

// IsValid reports whether every field is valid.  All fields are checked;
// the first error (a field whose value was never set) is returned.
func (f *Form) IsValid() (bool, error) {
	valid := true
	var firstErr error
	for _, field := range f.Fields() {
		ok, err := field.IsValid()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		valid = valid && ok
	}
	if firstErr != nil {
		return false, firstErr
	}
	return valid, nil
}

// ExplainWhyNotValid joins the reasons of all invalid fields with ", ".  It
// returns the empty string when the form is valid.
func (f *Form) ExplainWhyNotValid() (string, error) {
	reasons := make([]string, 0)
	for _, field := range f.Fields() {
		reason, err := field.ExplainWhyNotValid()
		if err != nil {
			return "", err
		}
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}
	return strings.Join(reasons, ", "), nil
}

// ToDict maps every field key to its value, or default if no data was
// applied.
func (f *Form) ToDict() map[string]interface{} {
	dict := make(map[string]interface{})
	for _, field := range f.Fields() {
		dict[field.Key()] = field.ValueOrDefault()
	}
	return dict
}

// ToQueryString URL-encodes ToDict.  Null values encode as empty strings.
func (f *Form) ToQueryString() string {
	values := make(url.Values)
	for k, v := range f.ToDict() {
		values.Set(k, stringify(v))
	}
	return values.Encode()
}

// AsHTML renders every element in order, one per line.
func (f *Form) AsHTML() template.HTML {
	parts := make([]string, len(f.elements))
	for idx, e := range f.elements {
		parts[idx] = string(e.AsHTML())
	}
	return template.HTML(strings.Join(parts, "\n"))
}

// AsCSV returns one CSV cell per element, in order.
func (f *Form) AsCSV() ([]string, error) {
	row := make([]string, len(f.elements))
	for idx, e := range f.elements {
		cell, err := e.AsCSV()
		if err != nil {
			return nil, err
		}
		row[idx] = cell
	}
	return row, nil
}
