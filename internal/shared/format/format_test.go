package format

import "testing"

func TestFloatRU(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,0"},
		{1, "1,0"},
		{1234.5, "1.234,5"},
		{100000000, "100.000.000,0"},
		{0.12345, "0,12345"},
		{1e18, "1.000e+18"},
	}
	for _, c := range cases {
		if got := FloatRU(c.in); got != c.want {
			t.Errorf("FloatRU(%v) = %q, ожидалось %q", c.in, got, c.want)
		}
	}
}

func TestPct(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{-0.10, "-10%"},
		{-0.02, "-2%"},
		{0.05, "+5%"},
	}
	for _, c := range cases {
		if got := Pct(c.in); got != c.want {
			t.Errorf("Pct(%v) = %q, ожидалось %q", c.in, got, c.want)
		}
	}
}
