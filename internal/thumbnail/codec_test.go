package thumbnail

import (
	"errors"
	"testing"
)

func TestParseParamString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "100px", expected: "100", ok: true},
		{input: "007px", expected: "007", ok: true},
		{input: "100", ok: false},
		{input: "-5px", ok: false},
		{input: "+5px", ok: false},
		{input: "1.5px", ok: false},
		{input: "100em", ok: false},
		{input: "px", ok: false},
		{input: "100px ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			params, ok := ParseParamString(tt.input)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				if params != nil {
					t.Errorf("Expected nil params on mismatch, got %v", params)
				}
				return
			}
			width, isString := params[ParamWidth].(string)
			if !isString {
				t.Fatalf("Expected width to stay a string, got %T", params[ParamWidth])
			}
			if width != tt.expected {
				t.Errorf("Expected width %q, got %q", tt.expected, width)
			}
		})
	}
}

func TestMakeParamString(t *testing.T) {
	token, err := MakeParamString(Params{ParamWidth: 200, ParamPhysicalWidth: 120})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token != "120px" {
		t.Errorf("Expected physical width to win, got %q", token)
	}

	token, err = MakeParamString(Params{ParamWidth: 200})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if token != "200px" {
		t.Errorf("Expected '200px', got %q", token)
	}
}

func TestMakeParamString_NoWidth(t *testing.T) {
	_, err := MakeParamString(Params{ParamHeight: 100})
	if err == nil {
		t.Fatal("Expected error when no width is present")
	}
	if !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("Expected ErrInvalidParameters, got %v", err)
	}
	if !IsContractViolation(err) || IsRecoverable(err) {
		t.Errorf("Expected a contract violation, got %v", err)
	}
}

func TestParamString_RoundTripKeepsDigits(t *testing.T) {
	for _, w := range []any{1, 640, "0042"} {
		token, err := MakeParamString(Params{ParamWidth: w})
		if err != nil {
			t.Fatalf("MakeParamString(%v) failed: %v", w, err)
		}
		params, ok := ParseParamString(token)
		if !ok {
			t.Fatalf("ParseParamString(%q) did not match", token)
		}
		if got := params[ParamWidth]; got != token[:len(token)-2] {
			t.Errorf("Expected digits %q, got %v", token[:len(token)-2], got)
		}
	}
}

func TestExternalNameOf(t *testing.T) {
	name, ok := ExternalNameOf(ParamWidth)
	if !ok || name != "img_width" {
		t.Errorf("Expected img_width, got %q (ok=%v)", name, ok)
	}
	for _, logical := range []string{ParamHeight, ParamPage, ParamPhysicalWidth} {
		if _, ok := ExternalNameOf(logical); ok {
			t.Errorf("Expected no external name for %s", logical)
		}
	}

	m := ParamMap()
	if len(m) != 1 || m["img_width"] != ParamWidth {
		t.Errorf("Unexpected param map %v", m)
	}
	m["img_height"] = ParamHeight
	if _, ok := ParamMap()["img_height"]; ok {
		t.Error("Expected ParamMap to return a copy")
	}
}

func TestValidateParam(t *testing.T) {
	if !ValidateParam(ParamWidth, 10) || !ValidateParam(ParamHeight, 1) {
		t.Error("Expected positive width and height to be valid")
	}
	if ValidateParam(ParamWidth, 0) || ValidateParam(ParamHeight, -1) {
		t.Error("Expected non-positive values to be rejected")
	}
	if ValidateParam(ParamPage, 3) {
		t.Error("Expected unknown parameter names to be rejected")
	}
}
