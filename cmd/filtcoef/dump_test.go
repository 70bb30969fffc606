package main

import "testing"

func TestFormatVec(t *testing.T) {
	cases := []struct {
		in   []float64
		want string
	}{
		{nil, "[]"},
		{[]float64{1}, "[1]"},
		{[]float64{1, 0.5, -0.125}, "[1 0.5 -0.125]"},
	}
	for _, tc := range cases {
		if got := formatVec(tc.in); got != tc.want {
			t.Errorf("formatVec(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{3 * 1024 * 1024, "3.00 MiB"},
		{5 * 1024 * 1024 * 1024, "5.00 GiB"},
	}
	for _, tc := range cases {
		if got := formatBytes(tc.in); got != tc.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatComplex(t *testing.T) {
	if got := formatComplex(complex(0.25, -0.5)); got != "0.2500-0.5000i" {
		t.Errorf("formatComplex = %q", got)
	}
	if got := formatComplex(complex(-1, 0.433)); got != "-1.0000+0.4330i" {
		t.Errorf("formatComplex = %q", got)
	}
}
