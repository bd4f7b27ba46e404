package form

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestButton(t *testing.T) {
	b := NewButton("Save")
	if b.Key() != "save" {
		t.Fatalf("Unexpected key: %q", b.Key())
	}
	expected := `<button type="button" class="save" name="save" value="save">Save</button>`
	if out := string(b.AsHTML()); out != expected {
		t.Fatalf("Unexpected markup: %s", out)
	}
	if csv, err := b.AsCSV(); err != nil || csv != "" {
		t.Fatalf("Button CSV should be empty, got %q (%v)", csv, err)
	}

	if _, err := b.WasClicked(); !errors.Is(err, ErrClickedNotSet) {
		t.Fatalf("WasClicked before it was set should fail with ErrClickedNotSet, got %v", err)
	}
	b.SetWasClicked(false)
	if clicked, err := b.WasClicked(); err != nil || clicked {
		t.Fatalf("Unexpected clicked state (%v, %v)", clicked, err)
	}
	if !b.ClickedIn(url.Values{"save": {"save"}}) {
		t.Fatal("Button key in values not detected")
	}
}

func TestButtonOptions(t *testing.T) {
	b := NewButton("Remove <i>row</i>", WithButtonKey("remove"), WithButtonPK(12), WithButtonType("submit"), WithButtonClass("ui red button"), WithButtonAttr("data-confirm", "Sure?"))
	expected := `<button type="submit" class="ui red button" name="remove_12" value="remove_12" data-confirm="Sure?">Remove <i>row</i></button>`
	if out := string(b.AsHTML()); out != expected {
		t.Fatalf("Unexpected markup:\n%s\nexpected:\n%s", out, expected)
	}

	nameless := NewButton("!!")
	if nameless.Key() != "" {
		t.Fatalf("Unexpected key: %q", nameless.Key())
	}
	if out := string(nameless.AsHTML()); strings.Contains(out, "name=") || strings.Contains(out, "class=") {
		t.Fatalf("Button without key should have no name or class: %s", out)
	}
}

func TestButtonKeyEscaped(t *testing.T) {
	b := NewButton("Go", WithButtonPK(`1"><b>`), WithButtonAttr(`data x"=`, "y"))
	expected := `<button type="button" class="go" name="go_1&#34;&gt;&lt;b&gt;" value="go_1&#34;&gt;&lt;b&gt;" datax="y">Go</button>`
	if out := string(b.AsHTML()); out != expected {
		t.Fatalf("Unexpected markup:\n%s\nexpected:\n%s", out, expected)
	}
}
