package ir

import "testing"

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		in   string
		kind DatetimeKind
		out  string
	}{
		{"1979-05-27T07:32:00Z", OffsetDatetime, "1979-05-27T07:32:00Z"},
		{"1979-05-27T00:32:00-07:00", OffsetDatetime, "1979-05-27T00:32:00-07:00"},
		{"1979-05-27T00:32:00.999999-07:00", OffsetDatetime, "1979-05-27T00:32:00.999999-07:00"},
		{"1979-05-27 07:32:00z", OffsetDatetime, "1979-05-27T07:32:00Z"},
		{"1979-05-27T07:32:00", LocalDatetime, "1979-05-27T07:32:00"},
		{"1979-05-27t07:32:00.5", LocalDatetime, "1979-05-27T07:32:00.5"},
		{"1979-05-27 07:32:00", LocalDatetime, "1979-05-27T07:32:00"},
		{"1979-05-27", LocalDate, "1979-05-27"},
		{"07:32:00", LocalTime, "07:32:00"},
		{"00:32:00.999999", LocalTime, "00:32:00.999999"},
	}
	for _, tt := range tests {
		d, ok := ParseDatetime(tt.in)
		if !ok {
			t.Errorf("%q: not parsed", tt.in)
			continue
		}
		if d.Kind != tt.kind {
			t.Errorf("%q: kind %s, want %s", tt.in, d.Kind, tt.kind)
		}
		if got := d.String(); got != tt.out {
			t.Errorf("%q: formatted %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestParseDatetimeInvalid(t *testing.T) {
	for _, in := range []string{"1979-13-27", "1979-05-27T25:00:00", "07:32", "x", "1979-05-27T07:32:00+"} {
		if _, ok := ParseDatetime(in); ok {
			t.Errorf("%q parsed", in)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42, "42"},
		{-0.5, "-0.5"},
		{1234567.5, "1234567.5"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-07"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
