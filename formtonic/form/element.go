package form

import (
	"fmt"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Element is anything placed in a form: a *Field or a *Button.  When the
// form is submitted, the element is represented in the posted data under
// its Key.
type Element interface {
	// Key is the name attribute used for the element's markup, and the key
	// of its value in submitted data.
	Key() string
	AsHTML() template.HTML
	AsCSV() (string, error)

	// applySubmitted takes the element's value from submitted form data.
	applySubmitted(values url.Values) error
	// snapshot returns a function that puts back the element's current
	// submitted state.
	snapshot() func()
}

// Renderer is implemented by forms and form elements.
type Renderer interface {
	AsHTML() template.HTML
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// KeyFromLabel derives a key prefix from a label by dropping everything that
// is not a letter, digit or underscore and lowercasing the rest.
func KeyFromLabel(label string) string {
	return strings.ToLower(nonWord.ReplaceAllString(label, ""))
}

// attrNameUnsafe matches the characters that would end an attribute name.
var attrNameUnsafe = regexp.MustCompile(`[\s"'<>/=\x00-\x1f]`)

// attrName strips from name whatever cannot appear in an attribute name.
func attrName(name string) string {
	return attrNameUnsafe.ReplaceAllString(name, "")
}

// escapedKey is Key ready to be placed in an attribute value.
func (e *element) escapedKey() string {
	return template.HTMLEscapeString(e.Key())
}

// markupPolicy is applied to author supplied text that may carry inline
// markup (labels, button text, option display text).
var markupPolicy = bluemonday.UGCPolicy()

func sanitize(s string) string {
	return markupPolicy.Sanitize(s)
}

// element holds the identity shared by fields and buttons.
type element struct {
	keyPrefix string
	pk        string
	attrs     []Attr
}

func newElement(keyPrefix string, pk interface{}, attrs []Attr) element {
	e := element{keyPrefix: keyPrefix, attrs: attrs}
	if truthy(pk) {
		e.pk = stringify(pk)
	}
	return e
}

// Key returns the key prefix, with the instance ID appended when there is
// one.  Elements without a key prefix have an empty key.
func (e *element) Key() string {
	if e.keyPrefix == "" {
		return ""
	}
	if e.pk != "" {
		return fmt.Sprintf("%s_%s", e.keyPrefix, e.pk)
	}
	return e.keyPrefix
}

// KeyPrefix returns the key without the instance ID.
func (e *element) KeyPrefix() string {
	return e.keyPrefix
}

// PK returns the instance ID, if any.
func (e *element) PK() string {
	return e.pk
}

func (e *element) attrString() string {
	if len(e.attrs) == 0 {
		return ""
	}
	linear := make([]string, 0, len(e.attrs))
	for _, a := range e.attrs {
		name := attrName(a.Name)
		if name == "" {
			continue
		}
		linear = append(linear, fmt.Sprintf(`%s="%s"`, name, template.HTMLEscapeString(a.Value)))
	}
	if len(linear) == 0 {
		return ""
	}
	return " " + strings.Join(linear, " ")
}
