package form

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultWidget(t *testing.T) {
	cases := map[ModelType]FieldType{
		ModelDate:    DateField,
		ModelFloat:   PositiveFloatField,
		ModelInteger: PositiveIntField,
		ModelText:    TextAreaField,
		ModelChar:    TextField,
		ModelBoolean: TrueFalseField,
	}
	for mt, expected := range cases {
		f, err := DefaultWidget(&FieldDescriptor{Name: "thing", Required: true, Type: mt})
		if err != nil {
			t.Fatalf("No widget for %s: %s", mt, err.Error())
		}
		if f.Type() != expected {
			t.Fatalf("Widget for %s is %s, expected %s", mt, f.Type(), expected)
		}
		if f.Key() != "thing" {
			t.Fatalf("Widget for %s has key %q", mt, f.Key())
		}
		if f.Required() != (mt != ModelBoolean) {
			t.Fatalf("Widget for %s has required=%v", mt, f.Required())
		}
	}

	optional, _ := DefaultWidget(&FieldDescriptor{Name: "note", Type: ModelChar, Label: "Note"})
	if optional.Required() || optional.Label() != "Note" {
		t.Fatalf("Descriptor settings not carried over: required=%v label=%q", optional.Required(), optional.Label())
	}
}

func TestDefaultWidgetErrors(t *testing.T) {
	var cfgErr *ConfigError
	if _, err := DefaultWidget(nil); !errors.As(err, &cfgErr) {
		t.Fatalf("nil descriptor should fail with a ConfigError, got %v", err)
	}
	if _, err := DefaultWidget(&FieldDescriptor{Name: "blob", Type: "binary"}); !errors.As(err, &cfgErr) {
		t.Fatalf("Unknown model type should fail with a ConfigError, got %v", err)
	} else if !strings.Contains(err.Error(), "binary") {
		t.Fatalf("Error does not name the model type: %s", err.Error())
	}
}

const timesheetYAML = `
- name: day
  type: date
  required: true
- name: hours
  type: float
  required: true
  label: Hours worked
- name: billable
  type: boolean
- name: notes
  type: text
`

func TestLoadDescriptors(t *testing.T) {
	descs, err := LoadDescriptors(strings.NewReader(timesheetYAML))
	if err != nil {
		t.Fatalf("Failed to load descriptors: %s", err.Error())
	}
	expected := []FieldDescriptor{
		{Name: "day", Type: ModelDate, Required: true},
		{Name: "hours", Type: ModelFloat, Required: true, Label: "Hours worked"},
		{Name: "billable", Type: ModelBoolean},
		{Name: "notes", Type: ModelText},
	}
	if diff := cmp.Diff(expected, descs); diff != "" {
		t.Fatalf("Descriptor mismatch (-want +got):\n%s", diff)
	}

	f, err := FromDescriptors(descs, NewButton("Save"))
	if err != nil {
		t.Fatalf("Failed to build form: %s", err.Error())
	}
	if n := len(f.Elements()); n != 5 {
		t.Fatalf("Unexpected number of elements: %d", n)
	}
	if n := len(f.Fields()); n != 4 {
		t.Fatalf("Unexpected number of fields: %d", n)
	}

	if empty, err := LoadDescriptors(strings.NewReader("")); err != nil || len(empty) != 0 {
		t.Fatalf("Empty document should give no descriptors (%v, %v)", empty, err)
	}
	if _, err := LoadDescriptors(strings.NewReader("name: [")); err == nil {
		t.Fatal("Malformed YAML loaded without error")
	}
	if _, err := FromDescriptors([]FieldDescriptor{{Name: "x", Type: "nope"}}); err == nil {
		t.Fatal("Unknown model type accepted when building a form")
	}
}
