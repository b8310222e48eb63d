package forms

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		kind    Kind
		raw     string
		want    string
		wantErr bool
	}{
		{"text", KindText, "FD100", "FD100", false},
		{"blank is empty", KindNumber, "  ", "", false},
		{"number", KindNumber, "42.5", "42.5", false},
		{"bad number", KindNumber, "many", "", true},
		{"date", KindDate, "2026-03-01", "2026-03-01T00:00:00Z", false},
		{"bad date", KindDate, "01/03/2026", "", true},
		{"datetime-local", KindDatetimeLocal, "2026-03-01T14:30", "2026-03-01T14:30:00Z", false},
		{"datetime rfc3339 fallback", KindDatetimeLocal, "2026-03-01T14:30:00Z", "2026-03-01T14:30:00Z", false},
		{"select as text", KindSelect, "7", "7", false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v, err := ParseValue(tc.kind, tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected parse error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue: %v", err)
			}
			if v.String() != tc.want {
				t.Fatalf("got %q, want %q", v.String(), tc.want)
			}
		})
	}
}

func TestValueZeroness(t *testing.T) {
	t.Parallel()

	if !(Value{}).IsZero() {
		t.Fatal("unset value must be empty")
	}
	if !Text("   ").IsZero() {
		t.Fatal("blank text must be empty")
	}
	if Number(0).IsZero() {
		t.Fatal("zero numbers are set values, not empty")
	}
	if Bool(false).IsZero() {
		t.Fatal("false is a set value, not empty")
	}
}

func TestValuesFields(t *testing.T) {
	t.Parallel()

	departure := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	vs := Values{
		"flightNumber":  Text("FD100"),
		"basePrice":     Number(199.99),
		"active":        Bool(true),
		"departureTime": Time(departure),
		"notes":         {},
	}
	fields := vs.Fields()
	if _, ok := fields["notes"]; ok {
		t.Fatal("unset values must be omitted from the payload")
	}
	if fields["basePrice"] != 199.99 {
		t.Fatalf("number lost typing: %v", fields["basePrice"])
	}
	if fields["departureTime"] != "2026-03-01T14:30:00Z" {
		t.Fatalf("time serialization: %v", fields["departureTime"])
	}

	raw, err := json.Marshal(vs["flightNumber"])
	if err != nil || string(raw) != `"FD100"` {
		t.Fatalf("marshal: %s, %v", raw, err)
	}
}
