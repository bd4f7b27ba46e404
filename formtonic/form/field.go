package form

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// Field is an input placed in a form.  It holds a value with three states:
// never set, set to null (the submission carried an empty value) and set to
// a concrete value.  How the value is coerced, validated and rendered is
// decided by the field's FieldType.
type Field struct {
	element
	typ       FieldType
	w         *widget
	required  bool
	def       interface{}
	label     string
	autofocus bool
	options   []Option

	// nil until data is applied
	value         *Value
	invalidReason string
}

// FieldOption configures a Field on construction.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	required   *bool
	def        interface{}
	hasDefault bool
	pk         interface{}
	initial    interface{}
	label      string
	autofocus  bool
	options    []Option
	attrs      []Attr
}

// WithRequired sets whether the field must hold a non-empty value.  Fields
// are required unless configured otherwise, except checkboxes which are
// optional by default.
func WithRequired(required bool) FieldOption {
	return func(c *fieldConfig) {
		c.required = &required
	}
}

// WithDefault sets the value rendered and reported while no data has been
// applied.
func WithDefault(def interface{}) FieldOption {
	return func(c *fieldConfig) {
		c.def = def
		c.hasDefault = true
	}
}

// WithPK appends an instance ID to the field key, for forms that contain
// one field per object.
func WithPK(pk interface{}) FieldOption {
	return func(c *fieldConfig) {
		c.pk = pk
	}
}

// WithValue sets the initial value.  nil and "" leave the field unset.
func WithValue(v interface{}) FieldOption {
	return func(c *fieldConfig) {
		c.initial = v
	}
}

// WithLabel wraps the rendered field in a <label> element.
func WithLabel(label string) FieldOption {
	return func(c *fieldConfig) {
		c.label = label
	}
}

// WithAutofocus adds the autofocus attribute.
func WithAutofocus() FieldOption {
	return func(c *fieldConfig) {
		c.autofocus = true
	}
}

// WithOptions sets the entries of a select field.
func WithOptions(options ...Option) FieldOption {
	return func(c *fieldConfig) {
		c.options = append(c.options, options...)
	}
}

// WithAttr adds an extra HTML attribute to the rendered widget.
func WithAttr(name, value string) FieldOption {
	return func(c *fieldConfig) {
		c.attrs = append(c.attrs, Attr{Name: name, Value: value})
	}
}

// NewField creates a field of the given type.  An initial value that can
// not be coerced, an unknown type, or a default on a checkbox are errors.
func NewField(typ FieldType, keyPrefix string, opts ...FieldOption) (*Field, error) {
	w, ok := widgets[typ]
	if !ok {
		return nil, &ConfigError{Key: keyPrefix, Reason: fmt.Sprintf("unknown field type %q", typ)}
	}
	conf := new(fieldConfig)
	for _, opt := range opts {
		opt(conf)
	}

	f := &Field{
		element:   newElement(keyPrefix, conf.pk, conf.attrs),
		typ:       typ,
		w:         w,
		required:  !w.checkbox,
		def:       conf.def,
		label:     conf.label,
		autofocus: conf.autofocus,
		options:   conf.options,
	}
	if conf.required != nil {
		f.required = *conf.required
	}
	if w.checkbox {
		if conf.hasDefault {
			// posted data can not tell unchecked from never rendered
			return nil, &ConfigError{Key: keyPrefix, Reason: "checkbox fields can not have a default"}
		}
		f.def = false
	}
	if s, isStr := conf.initial.(string); conf.initial != nil && !(isStr && s == "") {
		if err := f.SetValue(conf.initial); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Must panics if err is non-nil.  It is intended for package level form
// definitions, like template.Must.
func Must(f *Field, err error) *Field {
	if err != nil {
		panic(err)
	}
	return f
}

// Type returns the field type.
func (f *Field) Type() FieldType {
	return f.typ
}

// Required reports whether the field must hold a non-empty value.
func (f *Field) Required() bool {
	return f.required
}

// Default returns the configured default value.
func (f *Field) Default() interface{} {
	return f.def
}

// Label returns the label text, if any.
func (f *Field) Label() string {
	return f.label
}

// Options returns the entries of a select field.
func (f *Field) Options() []Option {
	return f.options
}

// IsCheckbox reports whether the field's value comes from the presence of
// its key in submitted data rather than from the submitted value.
func (f *Field) IsCheckbox() bool {
	return f.w.checkbox
}

// SetValue stores raw after coercion.  The empty string clears the field
// (null), except for checkboxes where it means false.
func (f *Field) SetValue(raw interface{}) error {
	if s, ok := raw.(string); ok && s == "" && !f.w.checkbox {
		f.value = new(Value)
		return nil
	}
	v, err := f.w.coerce(f, raw)
	if err != nil {
		return err
	}
	f.value = &v
	return nil
}

// Value returns the stored value, or ErrValueNotSet if no data was ever
// applied to the field.
func (f *Field) Value() (Value, error) {
	if f.value == nil {
		return Value{}, fmt.Errorf("field %q: %w", f.Key(), ErrValueNotSet)
	}
	return *f.value, nil
}

// ValueWasSet reports whether the field holds a non-null value.
func (f *Field) ValueWasSet() bool {
	return f.value != nil && !f.value.IsNull()
}

// ValueOrDefault returns the stored value (nil when null) if data was
// applied, else the default.
func (f *Field) ValueOrDefault() interface{} {
	if f.value != nil {
		return f.value.Interface()
	}
	return f.def
}

// ValueString is the text written into the widget markup.  A field cleared
// by submitted data renders empty rather than falling back to its default.
func (f *Field) ValueString() string {
	if f.value != nil {
		return f.value.String()
	}
	if truthy(f.def) {
		return stringify(f.def)
	}
	return ""
}

// SetInvalidReason attaches a reason found outside the field, for example a
// uniqueness check against the database.  It is reported once the required
// check has passed and takes priority over the field type's own rule.
func (f *Field) SetInvalidReason(reason string) {
	f.invalidReason = reason
}

// ExplainWhyNotValid returns a user facing reason the field is invalid, or
// the empty string when it is valid.
func (f *Field) ExplainWhyNotValid() (string, error) {
	if f.w.checkbox {
		return "", nil
	}
	v, err := f.Value()
	if err != nil {
		return "", err
	}
	return f.explain(v), nil
}

func (f *Field) explain(v Value) string {
	// unchecked and never submitted look the same, so checkboxes are always
	// valid (a required checkbox is therefore not enforced)
	if f.w.checkbox {
		return ""
	}
	if f.required && !truthy(v.Interface()) {
		return "Required"
	}
	if f.invalidReason != "" {
		return f.invalidReason
	}
	if f.w.check != nil {
		return f.w.check(f, v)
	}
	return ""
}

// IsValid reports whether the field's value passes validation.  Asking
// before data was applied is an error, except for checkboxes.
func (f *Field) IsValid() (bool, error) {
	if f.w.checkbox {
		return true, nil
	}
	reason, err := f.ExplainWhyNotValid()
	if err != nil {
		return false, err
	}
	return reason == "", nil
}

// AsCSV returns the value as a CSV cell, "" when null.
func (f *Field) AsCSV() (string, error) {
	v, err := f.Value()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// AsHTML renders the widget followed by the validation problem, if data was
// applied and is invalid.
func (f *Field) AsHTML() template.HTML {
	var b strings.Builder
	b.WriteString(f.w.render(f))
	b.WriteString("\n")
	if f.value != nil {
		if reason := f.explain(*f.value); reason != "" {
			b.WriteString(problemHTML(reason))
		}
	}
	out := b.String()
	if f.label != "" {
		out = fmt.Sprintf("<label>%s %s</label>", sanitize(f.label), out)
	}
	return template.HTML(out)
}

func (f *Field) autofocusString() string {
	if f.autofocus {
		return " autofocus"
	}
	return ""
}

func (f *Field) applySubmitted(values url.Values) error {
	key := f.Key()
	if f.w.checkbox {
		_, checked := values[key]
		return f.SetValue(checked)
	}
	if raw, ok := values[key]; ok {
		// a repeated key counts with its last value
		var last string
		if len(raw) > 0 {
			last = raw[len(raw)-1]
		}
		return f.SetValue(last)
	}
	return nil
}

func (f *Field) snapshot() func() {
	value := f.value
	return func() { f.value = value }
}

func problemHTML(reason string) string {
	return fmt.Sprintf(`<span class="problem">%s</span>`, template.HTMLEscapeString(reason))
}
