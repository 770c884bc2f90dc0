package money

import "testing"

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"15.00", 1500, true},
		{"15", 1500, true},
		{"15.5", 1550, true},
		{"0.01", 1, true},
		{"2500.00", 250000, true},
		{" 10.50 ", 1050, true},
		{"", 0, false},
		{".50", 0, false},
		{"10.001", 0, false},
		{"abc", 0, false},
		{"10.ab", 0, false},
		{"-5.00", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseCents(%q) = %d; want error", tc.in, got)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1500, "15.00"},
		{1, "0.01"},
		{1050, "10.50"},
		{0, "0.00"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
