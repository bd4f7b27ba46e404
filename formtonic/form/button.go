package form

import (
	"fmt"
	"html/template"
	"net/url"
)

// Button is a form control that carries no data of its own.  When it has a
// key, its name and value are set to the key so its presence in submitted
// data tells which button submitted the form.
type Button struct {
	element
	text       string
	buttonType string
	class      string

	// nil until determined
	clicked *bool
}

// ButtonOption configures a Button on construction.
type ButtonOption func(*buttonConfig)

type buttonConfig struct {
	keyPrefix  string
	pk         interface{}
	buttonType string
	class      string
	attrs      []Attr
}

// WithButtonKey sets the key prefix instead of deriving it from the text.
func WithButtonKey(keyPrefix string) ButtonOption {
	return func(c *buttonConfig) {
		c.keyPrefix = keyPrefix
	}
}

// WithButtonPK appends an instance ID to the button key.
func WithButtonPK(pk interface{}) ButtonOption {
	return func(c *buttonConfig) {
		c.pk = pk
	}
}

// WithButtonType sets the type attribute (button, submit, reset).  The
// default is "button".
func WithButtonType(buttonType string) ButtonOption {
	return func(c *buttonConfig) {
		c.buttonType = buttonType
	}
}

// WithButtonClass sets the CSS class.  The default is the key prefix.
func WithButtonClass(class string) ButtonOption {
	return func(c *buttonConfig) {
		c.class = class
	}
}

// WithButtonAttr adds an extra HTML attribute.
func WithButtonAttr(name, value string) ButtonOption {
	return func(c *buttonConfig) {
		c.attrs = append(c.attrs, Attr{Name: name, Value: value})
	}
}

// NewButton creates a button showing text.  Unless a key prefix is given,
// it is derived from the text with KeyFromLabel.
func NewButton(text string, opts ...ButtonOption) *Button {
	conf := &buttonConfig{buttonType: "button"}
	for _, opt := range opts {
		opt(conf)
	}
	keyPrefix := conf.keyPrefix
	if keyPrefix == "" {
		keyPrefix = KeyFromLabel(text)
	}
	class := conf.class
	if class == "" {
		class = keyPrefix
	}
	return &Button{
		element:    newElement(keyPrefix, conf.pk, conf.attrs),
		text:       text,
		buttonType: conf.buttonType,
		class:      class,
	}
}

// Text returns the button text.
func (b *Button) Text() string {
	return b.text
}

// SetWasClicked records whether this button submitted the form.
func (b *Button) SetWasClicked(clicked bool) {
	b.clicked = &clicked
}

// WasClicked returns the recorded clicked state.  It is an error to ask
// before the state was set, directly or by applying form data.
func (b *Button) WasClicked() (bool, error) {
	if b.clicked == nil {
		return false, fmt.Errorf("button %q: %w", b.Key(), ErrClickedNotSet)
	}
	return *b.clicked, nil
}

// ClickedIn reports whether the button's key is present in values.
func (b *Button) ClickedIn(values url.Values) bool {
	_, ok := values[b.Key()]
	return ok
}

// AsCSV is always empty; buttons carry no persisted data.
func (b *Button) AsCSV() (string, error) {
	return "", nil
}

// AsHTML renders the <button> element.
func (b *Button) AsHTML() template.HTML {
	var classAttr, nameAttr string
	if b.class != "" {
		classAttr = fmt.Sprintf(` class="%s"`, template.HTMLEscapeString(b.class))
	}
	if key := b.escapedKey(); key != "" {
		nameAttr = fmt.Sprintf(` name="%s" value="%s"`, key, key)
	}
	return template.HTML(fmt.Sprintf(`<button type="%s"%s%s%s>%s</button>`,
		template.HTMLEscapeString(b.buttonType), classAttr, nameAttr, b.attrString(), sanitize(b.text)))
}

func (b *Button) applySubmitted(values url.Values) error {
	b.SetWasClicked(b.ClickedIn(values))
	return nil
}

func (b *Button) snapshot() func() {
	clicked := b.clicked
	return func() { b.clicked = clicked }
}
