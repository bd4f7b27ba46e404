package form

import (
	"fmt"
	"html"
	"html/template"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// widget is the behaviour behind a FieldType.
type widget struct {
	// HTML input type; empty for widgets that render their own markup.
	inputType string
	// checkbox widgets take their value from key presence and are always
	// valid.
	checkbox bool
	coerce   func(f *Field, raw interface{}) (Value, error)
	// check runs after the required and custom reason checks.
	check func(f *Field, v Value) string
	// attrs returns widget specific attributes for <input> markup.
	attrs func(f *Field) string
	// markup replaces the default <input> rendering.
	markup func(f *Field) string
}

func (w *widget) render(f *Field) string {
	if w.markup != nil {
		return w.markup(f)
	}
	return inputHTML(f)
}

var widgets = map[FieldType]*widget{
	TextField:     {inputType: "text", coerce: keepValue},
	HiddenField:   {inputType: "hidden", coerce: keepValue},
	TextAreaField: {coerce: keepValue, markup: textAreaHTML},
	SlugField:     {inputType: "text", coerce: keepValue, check: checkSlug},
	URLField:      {inputType: "text", coerce: keepValue, check: checkURL},
	DateField:     {inputType: "date", coerce: coerceDate},
	TrueFalseField: {
		inputType: "checkbox",
		checkbox:  true,
		coerce:    coerceBool,
	},
	SelectField: {coerce: keepValue, check: checkSelect, markup: selectHTML},
	FloatField: {
		inputType: "number",
		coerce:    coerceFloat,
		attrs:     stepAttrs("0.01", false),
	},
	MoneyField: {
		inputType: "number",
		coerce:    coerceFloat,
		attrs:     stepAttrs("0.01", false),
		markup:    func(f *Field) string { return "$" + inputHTML(f) },
	},
	IntField: {
		inputType: "number",
		coerce:    coerceInt,
		attrs:     stepAttrs("1", false),
	},
	PositiveFloatField: {
		inputType: "number",
		coerce:    coerceFloat,
		check:     checkNotNegative,
		attrs:     stepAttrs("0.01", true),
	},
	PositiveIntField: {
		inputType: "number",
		coerce:    coerceInt,
		check:     checkNotNegative,
		attrs:     stepAttrs("1", true),
	},
}

// Constructors for each field type.  See NewField.

func NewTextField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(TextField, key, opts...)
}

func NewTextAreaField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(TextAreaField, key, opts...)
}

func NewHiddenField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(HiddenField, key, opts...)
}

func NewDateField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(DateField, key, opts...)
}

func NewTrueFalseField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(TrueFalseField, key, opts...)
}

func NewSelectField(key string, options []Option, opts ...FieldOption) (*Field, error) {
	return NewField(SelectField, key, append([]FieldOption{WithOptions(options...)}, opts...)...)
}

func NewFloatField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(FloatField, key, opts...)
}

func NewIntField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(IntField, key, opts...)
}

func NewPositiveFloatField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(PositiveFloatField, key, opts...)
}

func NewPositiveIntField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(PositiveIntField, key, opts...)
}

func NewMoneyField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(MoneyField, key, opts...)
}

func NewSlugField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(SlugField, key, opts...)
}

func NewURLField(key string, opts ...FieldOption) (*Field, error) {
	return NewField(URLField, key, opts...)
}

// Coercion

func keepValue(_ *Field, raw interface{}) (Value, error) {
	return ValueOf(raw), nil
}

func coerceBool(_ *Field, raw interface{}) (Value, error) {
	return ValueOf(truthy(raw)), nil
}

func coerceDate(f *Field, raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case time.Time:
		return ValueOf(v), nil
	case string:
		day, err := time.Parse(DateLayout, v)
		if err != nil {
			return Value{}, &CoercionError{Key: f.Key(), Input: html.EscapeString(v), Target: "date"}
		}
		return ValueOf(day), nil
	default:
		return Value{}, &CoercionError{Key: f.Key(), GoType: fmt.Sprintf("%T", raw), Target: "date"}
	}
}

func coerceFloat(f *Field, raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case float64:
		if !finite(v) {
			return Value{}, &CoercionError{Key: f.Key(), Input: fmt.Sprint(v), Target: "float"}
		}
		return ValueOf(v), nil
	case float32:
		return coerceFloat(f, float64(v))
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || !finite(parsed) {
			return Value{}, &CoercionError{Key: f.Key(), Input: html.EscapeString(v), Target: "float"}
		}
		return ValueOf(parsed), nil
	default:
		return Value{}, &CoercionError{Key: f.Key(), GoType: fmt.Sprintf("%T", raw), Target: "float"}
	}
}

// finite rejects NaN and the infinities, which ParseFloat accepts.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func coerceInt(f *Field, raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case int:
		return ValueOf(int64(v)), nil
	case int32:
		return ValueOf(int64(v)), nil
	case int64:
		return ValueOf(v), nil
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return Value{}, &CoercionError{Key: f.Key(), Input: html.EscapeString(v), Target: "int"}
		}
		return ValueOf(parsed), nil
	default:
		return Value{}, &CoercionError{Key: f.Key(), GoType: fmt.Sprintf("%T", raw), Target: "int"}
	}
}

// Validation rules

var slugPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]*$`)

func checkSlug(_ *Field, v Value) string {
	if !slugPattern.MatchString(v.String()) {
		return "You can only use letters, numbers, _ and -"
	}
	return ""
}

func checkURL(_ *Field, v Value) string {
	if s := v.String(); s != "" && !strings.HasPrefix(s, "http") {
		return "This should be a URL, like, https://whatever"
	}
	return ""
}

func checkNotNegative(_ *Field, v Value) string {
	var negative bool
	switch n := v.Interface().(type) {
	case float64:
		negative = n < 0
	case int64:
		negative = n < 0
	}
	if negative {
		return fmt.Sprintf("%s is less than 0", v)
	}
	return ""
}

func checkSelect(f *Field, v Value) string {
	if !truthy(v.Interface()) {
		return ""
	}
	if len(f.options) == 0 {
		return "This select has no options"
	}
	for _, o := range f.options {
		if f.isSelected(o) {
			return ""
		}
	}
	return fmt.Sprintf("%s is not in the list of options", v)
}

// Markup

func stepAttrs(step string, positive bool) func(*Field) string {
	return func(*Field) string {
		if positive {
			return fmt.Sprintf(` step="%s" min="0"`, step)
		}
		return fmt.Sprintf(` step="%s"`, step)
	}
}

func inputHTML(f *Field) string {
	var attrs string
	if f.w.attrs != nil {
		attrs = f.w.attrs(f)
	}
	attrs += f.attrString()

	var valueAttr string
	if f.w.checkbox {
		if truthy(f.ValueOrDefault()) {
			valueAttr = " checked"
		}
	} else {
		valueAttr = fmt.Sprintf(` value="%s"`, template.HTMLEscapeString(f.ValueString()))
	}
	return fmt.Sprintf(`<input type="%s"%s name="%s" class="%s"%s%s>`,
		f.w.inputType, attrs, f.escapedKey(), template.HTMLEscapeString(f.keyPrefix), valueAttr, f.autofocusString())
}

func textAreaHTML(f *Field) string {
	return fmt.Sprintf(`<textarea name="%s" class="%s"%s%s>%s</textarea>`,
		f.escapedKey(), template.HTMLEscapeString(f.keyPrefix), f.attrString(), f.autofocusString(),
		template.HTMLEscapeString(f.ValueString()))
}

func selectHTML(f *Field) string {
	render := []string{fmt.Sprintf(`<select name="%s"%s%s>`, f.escapedKey(), f.attrString(), f.autofocusString())}
	if !f.required {
		render = append(render, "<option></option>")
	}
	for _, o := range f.options {
		var selected string
		if f.isSelected(o) || (f.value == nil && f.isDefault(o)) {
			selected = ` selected="selected"`
		}
		render = append(render, fmt.Sprintf(`<option value="%s"%s>%s</option>`,
			template.HTMLEscapeString(stringify(o.ID)), selected, sanitize(o.Display)))
	}
	render = append(render, "</select>")
	return strings.Join(render, "\n")
}

// Option IDs are usually typed (integer primary keys) while submitted values
// are strings, so options are compared by their string form.
func (f *Field) isSelected(o Option) bool {
	return f.ValueWasSet() && stringify(o.ID) == f.value.String()
}

func (f *Field) isDefault(o Option) bool {
	if f.def == nil {
		return false
	}
	if id, ok := f.def.(Identifier); ok {
		return stringify(o.ID) == stringify(id.Identity())
	}
	return stringify(o.ID) == stringify(f.def)
}
