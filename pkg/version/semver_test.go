package version

import "testing"

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  SemVer
		str   string
	}{
		{input: "1.2.3", want: SemVer{Major: 1, Minor: 2, Patch: 3}, str: "1.2.3"},
		{input: " v17.3.1 ", want: SemVer{Major: 17, Minor: 3, Patch: 1}, str: "17.3.1"},
		{input: "1.0.0-rc.1+exp.sha", want: SemVer{Major: 1, PreRelease: "rc.1", Build: "exp.sha"}, str: "1.0.0-rc.1+exp.sha"},
		{input: "2.0.0-next.0", want: SemVer{Major: 2, PreRelease: "next.0"}, str: "2.0.0-next.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
			if got.String() != tt.str {
				t.Fatalf("expected %q, got %q", tt.str, got.String())
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"dev",
		"1.0",
		"1.0.0.0",
		"01.0.0",
		"1.0.0-01",
		"1.0.0-rc..1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Fatalf("expected parse error for %q", input)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("v17.3.1") {
		t.Fatalf("expected v17.3.1 to be valid")
	}
	if IsValid("dev") {
		t.Fatalf("expected dev to be invalid")
	}
}
