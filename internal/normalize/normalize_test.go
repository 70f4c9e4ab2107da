package normalize

import "testing"

func TestID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"12345", "12345"},
		{"12345.0", "12345"},
		{"  12345.0  ", "12345"},
		{" 987 ", "987"},
	}
	for _, c := range cases {
		if got := ID(c.in); got != c.want {
			t.Errorf("ID(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestLocaleFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},
		{"-95,00", -95},
		{"1.234", 1234},
		{"2.500.000,10", 2500000.10},
		{"42", 42},
		{"", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := LocaleFloat(c.in); got != c.want {
			t.Errorf("LocaleFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFloat(t *testing.T) {
	if got := Float("", 1.5); got != 1.5 {
		t.Errorf("Float(empty) = %v, want default", got)
	}
	if got := Float("nan", 0); got != 0 {
		t.Errorf("Float(nan) = %v, want 0", got)
	}
	if got := Float("-5.25", 0); got != -5.25 {
		t.Errorf("Float(-5.25) = %v", got)
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "15/03/2024"},
		{"2024-03-15 10:22:01", "15/03/2024"},
		{"15/03/2024", "15/03/2024"},
		{"", ""},
		{"nan", ""},
		{"not-a-date", "not-a-date"},
	}
	for _, c := range cases {
		if got := Date(c.in); got != c.want {
			t.Errorf("Date(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(10.006); got != 10.01 {
		t.Errorf("Round2(10.006) = %v", got)
	}
	if got := Round2(-3.014); got != -3.01 {
		t.Errorf("Round2(-3.014) = %v", got)
	}
}
