package scrollscene

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		input   string
		want    Length
		wantErr bool
	}{
		{input: "120px", want: Px(120)},
		{input: "  -8px ", want: Px(-8)},
		{input: "42", want: Px(42)},
		{input: "0.5", want: Px(0.5)},
		{input: "35%", want: Percent(35)},
		{input: " 100% ", want: Percent(100)},
		{input: "element.size / 2", want: Expr("element.size / 2")},
		{input: "min(100, container.size)", want: Expr("min(100, container.size)")},
		{input: "", wantErr: true},
		{input: "  ", wantErr: true},
		{input: "abc%", wantErr: true},
		{input: "abcpx", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseLength(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseLength(%q) expected error, got %v", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLength(%q): %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLength(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestLengthString(t *testing.T) {
	cases := []struct {
		length Length
		want   string
	}{
		{Px(120), "120px"},
		{Px(0), "0px"},
		{Percent(35), "35%"},
		{Expr("element.size / 2"), "element.size / 2"},
	}
	for _, tc := range cases {
		if got := tc.length.String(); got != tc.want {
			t.Errorf("String(%#v) = %q, want %q", tc.length, got, tc.want)
		}
	}
}

func TestLengthResolve(t *testing.T) {
	if v, err := Px(24).resolve(100, nil); err != nil || v != 24 {
		t.Fatalf("Px resolve = %v, %v", v, err)
	}
	if v, err := Percent(50).resolve(320, nil); err != nil || v != 160 {
		t.Fatalf("Percent resolve = %v, %v", v, err)
	}
	if _, err := Expr("x").resolve(100, nil); err != ErrNoEvaluator {
		t.Fatalf("Expr resolve without resolver = %v, want ErrNoEvaluator", err)
	}
}

func TestLengthClassification(t *testing.T) {
	if !Px(0).IsZero() || Px(1).IsZero() {
		t.Fatal("pixel zero classification")
	}
	if !Percent(0).IsZero() {
		t.Fatal("percent zero classification")
	}
	if Expr("0").IsZero() {
		t.Fatal("expressions are never statically zero")
	}
	if !Percent(100).IsFullElement() || Percent(99).IsFullElement() || Px(100).IsFullElement() {
		t.Fatal("full-element classification")
	}
}

func TestLengthValidate(t *testing.T) {
	if reason := Px(10).validate(); reason != "" {
		t.Fatalf("Px(10) reason = %q", reason)
	}
	nan := Length{Value: math.NaN(), Unit: UnitPixel}
	if reason := nan.validate(); reason == "" {
		t.Fatal("NaN pixel length must not validate")
	}
	if reason := Expr("   ").validate(); reason == "" {
		t.Fatal("blank expression must not validate")
	}
}

func TestLengthJSON(t *testing.T) {
	var l Length
	if err := json.Unmarshal([]byte("240"), &l); err != nil || l != Px(240) {
		t.Fatalf("number payload = %v, %v", l, err)
	}
	if err := json.Unmarshal([]byte(`"35%"`), &l); err != nil || l != Percent(35) {
		t.Fatalf("percent payload = %v, %v", l, err)
	}
	if err := json.Unmarshal([]byte(`"element.size / 2"`), &l); err != nil || l != Expr("element.size / 2") {
		t.Fatalf("expression payload = %v, %v", l, err)
	}
	if err := json.Unmarshal([]byte("true"), &l); err == nil {
		t.Fatal("boolean payload must fail")
	}

	out, err := json.Marshal(Percent(35))
	if err != nil || string(out) != `"35%"` {
		t.Fatalf("marshal = %s, %v", out, err)
	}
}
