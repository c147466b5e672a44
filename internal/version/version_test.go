package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Version
		wantErr bool
	}{
		{name: "three components", input: "1.2.3", want: Version{1, 2, 3}},
		{name: "zeros", input: "0.0.0", want: Version{0, 0, 0}},
		{name: "leading zeros", input: "0.04.01", want: Version{0, 4, 1}},
		{name: "large", input: "10.200.3000", want: Version{10, 200, 3000}},
		{name: "two components", input: "1.2", wantErr: true},
		{name: "four components", input: "1.2.3.4", wantErr: true},
		{name: "non integer", input: "1.2.x", wantErr: true},
		{name: "prerelease suffix", input: "1.2.3-beta", wantErr: true},
		{name: "empty component", input: "1..3", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "negative", input: "1.-2.3", wantErr: true},
		{name: "plus sign", input: "+1.2.3", wantErr: true},
		{name: "whitespace", input: "1.2. 3", wantErr: true},
		{name: "dev build", input: "dev", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrUnparsable) {
					t.Errorf("Parse(%q) error = %v, want ErrUnparsable", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"0.3.9", "0.4.0", -1},
		{"0.4.0", "0.4.0", 0},
		{"0.4.1", "0.4.0", 1},
		{"0.10.0", "0.4.0", 1},
		{"1.0.0", "0.99.99", 1},
		{"0.4.0", "0.4.10", -1},
	}

	for _, tt := range tests {
		got := Compare(MustParse(tt.a), MustParse(tt.b))
		if got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLess(t *testing.T) {
	threshold := MustParse("0.4.0")
	if !MustParse("0.3.9").Less(threshold) {
		t.Error("0.3.9 should be less than 0.4.0")
	}
	if threshold.Less(threshold) {
		t.Error("0.4.0 should not be less than itself")
	}
}

func TestString(t *testing.T) {
	if got := (Version{0, 14, 2}).String(); got != "0.14.2" {
		t.Errorf("String() = %q, want 0.14.2", got)
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("1.2")
}
