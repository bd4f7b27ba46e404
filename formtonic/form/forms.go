package form

const (
	TextField          FieldType = "text"
	TextAreaField      FieldType = "textarea"
	HiddenField        FieldType = "hidden"
	DateField          FieldType = "date"
	TrueFalseField     FieldType = "checkbox"
	SelectField        FieldType = "select"
	FloatField         FieldType = "float"
	IntField           FieldType = "int"
	PositiveFloatField FieldType = "positive-float"
	PositiveIntField   FieldType = "positive-int"
	MoneyField         FieldType = "money"
	SlugField          FieldType = "slug"
	URLField           FieldType = "url"
)

// FieldType selects the widget used to coerce, validate and render a Field.
// Several field types share the same HTML input type (for instance every
// number field renders as <input type="number">) and differ only in
// coercion and validation.
type FieldType string

// Option is a single entry of a select field.
type Option struct {
	// ID is written to the value attribute of the <option> element and
	// compared, as a string, against submitted values.  It is usually the
	// primary key of the object the option stands for.
	ID interface{}
	// Display is the text shown for the option.  Inline markup is allowed
	// and sanitised.
	Display string
}

// Identifier is implemented by objects that can be used as the default of a
// select field.  The option whose ID matches Identity() is preselected.
type Identifier interface {
	Identity() interface{}
}

// Attr is an additional HTML attribute rendered on an element.
type Attr struct {
	Name  string
	Value string
}
