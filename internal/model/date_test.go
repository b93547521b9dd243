package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	if err != nil {
		t.Fatalf("ParseDate should succeed: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Errorf("round trip changed the date: %s", d)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "10-01-2024", "2024-13-01", "2024-01-10T00:00:00Z"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(2024, time.January, 10)

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal should succeed: %v", err)
	}
	if string(raw) != `"2024-01-10"` {
		t.Errorf("expected quoted date string, got %s", raw)
	}

	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal should succeed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("JSON round trip changed the date: %s vs %s", back, d)
	}
}

func TestDate_NoTimezoneShift(t *testing.T) {
	// A UTC-midnight instant viewed from a positive-offset zone is still
	// the same calendar day once reduced through Scan.
	var d Date
	utc := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	if err := d.Scan(utc); err != nil {
		t.Fatalf("Scan should succeed: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Errorf("scanning a DATE column shifted the day: %s", d)
	}
}

func TestDate_ScanString(t *testing.T) {
	var d Date
	if err := d.Scan("2024-01-10"); err != nil {
		t.Fatalf("Scan should succeed: %v", err)
	}
	if d.String() != "2024-01-10" {
		t.Errorf("expected 2024-01-10, got %s", d)
	}
}

func TestDate_Value(t *testing.T) {
	d := NewDate(2024, time.January, 10)
	v, err := d.Value()
	if err != nil {
		t.Fatalf("Value should succeed: %v", err)
	}
	if v != "2024-01-10" {
		t.Errorf("expected text date, got %v", v)
	}

	var zero Date
	v, err = zero.Value()
	if err != nil {
		t.Fatalf("Value should succeed: %v", err)
	}
	if v != nil {
		t.Errorf("zero date should store NULL, got %v", v)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.January, 9)
	b := NewDate(2024, time.January, 10)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before should order calendar days")
	}
	if !b.After(a) {
		t.Error("After should order calendar days")
	}
	if !a.AddDays(1).Equal(b) {
		t.Error("AddDays(1) should advance one day")
	}
	if !b.AddDays(-1).Equal(a) {
		t.Error("AddDays(-1) should step back one day")
	}
}
