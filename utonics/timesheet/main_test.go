package main

import (
	"os"
	"testing"
)

func TestLoadForm(t *testing.T) {
	newForm, err := loadForm("timesheet.yaml")
	if err != nil {
		t.Fatalf("Failed to load form: %s", err.Error())
	}
	f, err := newForm()
	if err != nil {
		t.Fatalf("Failed to build form: %s", err.Error())
	}
	if n := len(f.Fields()); n != 4 {
		t.Fatalf("Unexpected number of fields: %d", n)
	}
	if hours := f.Field("hours"); hours == nil || !hours.Required() {
		t.Fatalf("Hours field missing or optional: %+v", hours)
	}
	if _, err := loadForm("missing.yaml"); !os.IsNotExist(err) {
		t.Fatalf("Expected a not-exist error, got %v", err)
	}
}

func TestRecordHours(t *testing.T) {
	msgs, err := recordHours(map[string]string{"hours": "7.5", "day": "2021-05-03", "billable": "true"})
	if err != nil {
		t.Fatalf("Failed to record hours: %s", err.Error())
	}
	if len(msgs) != 2 || msgs[0] != "Recorded 7.50 hours for 2021-05-03" {
		t.Fatalf("Unexpected messages: %v", msgs)
	}
	if _, err := recordHours(map[string]string{"hours": ""}); err == nil {
		t.Fatal("Recorded empty hours without error")
	}
}
