package model

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeLegacyLayout(t *testing.T) {
	raw, format, err := Decode([]byte(`{"1": "Hello", "3": "Closing words"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != FormatLegacy {
		t.Fatalf("expected legacy format, got %q", format)
	}
	s, err := Load(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Get(1); got != (Record{Script: "Hello", Title: ""}) {
		t.Fatalf("unexpected slide 1: %#v", got)
	}
	if got := s.Get(3).Script; got != "Closing words" {
		t.Fatalf("unexpected slide 3 script: %q", got)
	}
}

func TestDecodeRecordLayoutUnchanged(t *testing.T) {
	raw, format, err := Decode([]byte(`{"2": {"script": "body", "title": "Agenda"}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != FormatRecords {
		t.Fatalf("expected records format, got %q", format)
	}
	if raw["2"] != (Record{Script: "body", Title: "Agenda"}) {
		t.Fatalf("unexpected record: %#v", raw["2"])
	}
}

func TestDecodeEmptyInputs(t *testing.T) {
	for _, in := range []string{"", "  \n", "{}"} {
		raw, format, err := Decode([]byte(in))
		if err != nil {
			t.Fatalf("decode %q: %v", in, err)
		}
		if len(raw) != 0 || format != FormatEmpty {
			t.Fatalf("decode %q: expected empty, got %#v (%s)", in, raw, format)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewStore()
	s.SetScript(1, "line one\nline two")
	s.SetTitle(9, "Q&A")

	data, err := Encode(s.Serialize())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(data), `"version": 2`) {
		t.Fatalf("expected version tag in output: %s", data)
	}
	raw, format, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != FormatVersioned {
		t.Fatalf("expected versioned format, got %q", format)
	}
	loaded, err := Load(raw)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !loaded.Equal(s) {
		t.Fatalf("round trip mismatch: %#v", raw)
	}
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"number entry", `{"1": 42}`, ErrInvalidEntry},
		{"bad key", `{"first": "hi"}`, ErrInvalidSlideNumber},
		{"future version", `{"version": 3, "slides": {}}`, ErrUnsupportedVersion},
		{"bad versioned key", `{"version": 2, "slides": {"x": {"script": "a"}}}`, ErrInvalidSlideNumber},
	}
	for _, tc := range cases {
		_, _, err := Decode([]byte(tc.in))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
