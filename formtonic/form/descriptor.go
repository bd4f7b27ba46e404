package form

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Model field types understood by DefaultWidget.
const (
	ModelDate    ModelType = "date"
	ModelFloat   ModelType = "float"
	ModelInteger ModelType = "integer"
	// long form text
	ModelText ModelType = "text"
	// short text
	ModelChar    ModelType = "char"
	ModelBoolean ModelType = "boolean"
)

// ModelType is the type tag of a stored model field.
type ModelType string

// FieldDescriptor describes a stored model field: the input needed to pick
// a widget for it.
type FieldDescriptor struct {
	Name     string    `yaml:"name"`
	Required bool      `yaml:"required"`
	Type     ModelType `yaml:"type"`
	// Label is optional; when set the field is rendered inside a <label>.
	Label string `yaml:"label,omitempty"`
}

type widgetFactory func(d *FieldDescriptor, opts ...FieldOption) (*Field, error)

var defaultWidgets = map[ModelType]widgetFactory{
	ModelDate: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewDateField(d.Name, append(opts, WithRequired(d.Required))...)
	},
	ModelFloat: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewPositiveFloatField(d.Name, append(opts, WithRequired(d.Required))...)
	},
	ModelInteger: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewPositiveIntField(d.Name, append(opts, WithRequired(d.Required))...)
	},
	ModelText: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewTextAreaField(d.Name, append(opts, WithRequired(d.Required))...)
	},
	ModelChar: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewTextField(d.Name, append(opts, WithRequired(d.Required))...)
	},
	// required is not carried over: an unchecked box is a valid false
	ModelBoolean: func(d *FieldDescriptor, opts ...FieldOption) (*Field, error) {
		return NewTrueFalseField(d.Name, opts...)
	},
}

// DefaultWidget returns a new field suited to the described model field.
func DefaultWidget(d *FieldDescriptor) (*Field, error) {
	if d == nil {
		return nil, &ConfigError{Reason: "DefaultWidget needs a field descriptor, got nil"}
	}
	factory, ok := defaultWidgets[d.Type]
	if !ok {
		return nil, &ConfigError{Key: d.Name, Reason: fmt.Sprintf("no widget for a %q field", d.Type)}
	}
	var opts []FieldOption
	if d.Label != "" {
		opts = append(opts, WithLabel(d.Label))
	}
	return factory(d, opts...)
}

// LoadDescriptors reads a YAML list of field descriptors.
func LoadDescriptors(r io.Reader) ([]FieldDescriptor, error) {
	descs := make([]FieldDescriptor, 0)
	if err := yaml.NewDecoder(r).Decode(&descs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading field descriptors: %w", err)
	}
	return descs, nil
}

// FromDescriptors builds a form with the default widget for each
// descriptor.  Extra elements (usually buttons) are appended after the
// fields.
func FromDescriptors(descs []FieldDescriptor, extra ...Element) (*Form, error) {
	f := New()
	for idx := range descs {
		field, err := DefaultWidget(&descs[idx])
		if err != nil {
			return nil, err
		}
		f.Add(field)
	}
	f.Add(extra...)
	return f, nil
}
