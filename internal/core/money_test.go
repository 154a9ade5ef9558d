package core

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 1200 ", "1200", true},
		{"0", "0", true},
		{"-5", "-5", true}, // positivity is Validate's job
		{"", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseMoney(%q) unexpected error: %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseMoney(%q) expected error", tc.in)
			}
			continue
		}
		if got.String() != tc.want {
			t.Fatalf("ParseMoney(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := mustMoney(t, "0.01").Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := MoneyZero().Validate(); err == nil {
		t.Fatal("expected error for zero")
	}
	if err := mustMoney(t, "-1").Validate(); err == nil {
		t.Fatal("expected error for negative")
	}
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	a := mustMoney(t, "0.1")
	b := mustMoney(t, "0.2")
	if got := a.Add(b); got.String() != "0.3" {
		t.Fatalf("0.1 + 0.2 = %s, want 0.3", got)
	}
	if got := mustMoney(t, "3000").Sub(mustMoney(t, "1000")); got.String() != "2000" {
		t.Fatalf("3000 - 1000 = %s", got)
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := mustMoney(t, "1234.5")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "1234.5" {
		t.Fatalf("marshal = %s, want bare number", data)
	}

	var fromNumber Money
	if err := json.Unmarshal([]byte("99.95"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if !fromNumber.Equal(mustMoney(t, "99.95")) {
		t.Fatalf("unmarshal number = %s", fromNumber)
	}

	var fromString Money
	if err := json.Unmarshal([]byte(`"42"`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if !fromString.Equal(mustMoney(t, "42")) {
		t.Fatalf("unmarshal string = %s", fromString)
	}
}
