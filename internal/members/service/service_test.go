package service

import (
	"reflect"
	"testing"
	"time"
)

func strptr(s string) *string { return &s }

func TestCompleteness(t *testing.T) {
	if got := completeness(profileFacts{}); got != 0 {
		t.Errorf("empty profile = %d, want 0", got)
	}

	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	full := profileFacts{
		phoneNumber:   strptr("+233201234567"),
		email:         strptr("a@b.com"),
		sex:           strptr("FEMALE"),
		maritalStatus: strptr("MARRIED"),
		dateOfBirth:   &dob,
		memberSince:   &dob,
		city:          strptr("Accra"),
		region:        strptr("Greater Accra"),
		country:       strptr("Ghana"),
		tags:          []string{"choir"},
	}
	if got := completeness(full); got != 100 {
		t.Errorf("full profile = %d, want 100", got)
	}

	half := profileFacts{
		phoneNumber: strptr("+233201234567"),
		email:       strptr("a@b.com"),
		city:        strptr("Accra"),
		country:     strptr("Ghana"),
		tags:        []string{"choir"},
	}
	if got := completeness(half); got != 50 {
		t.Errorf("half profile = %d, want 50", got)
	}
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{" Choir ", "USHER", "choir", "", "usher"})
	want := []string{"choir", "usher"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeTags = %v, want %v", got, want)
	}

	if normalizeTags(nil) != nil {
		t.Error("nil input should stay nil")
	}
}

func TestMergeTags(t *testing.T) {
	got := mergeTags(
		[]string{"choir", "usher"},
		[]string{"media", "choir"},
		[]string{"usher"},
	)
	want := []string{"choir", "media"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeTags = %v, want %v", got, want)
	}
}
