package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asiloisad/pulsar-fast-publish/internal/model"
)

// TestParse verifies parsing of well-formed version strings, including
// tolerance for a leading "v" and surrounding whitespace.
func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Version
	}{
		{"1.2.3", Version{1, 2, 3}},
		{"0.0.0", Version{0, 0, 0}},
		{"10.20.30", Version{10, 20, 30}},
		{"v1.2.3", Version{1, 2, 3}},
		{" 1.2.3 ", Version{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

// TestParseCoercion documents the lenient-parse policy: missing, empty,
// non-numeric, and negative components all coerce to zero instead of
// producing an error. A subsequent bump therefore always yields a fully
// numeric three-part version.
func TestParseCoercion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Version
	}{
		{"two components", "1.2", Version{1, 2, 0}},
		{"one component", "7", Version{7, 0, 0}},
		{"empty string", "", Version{0, 0, 0}},
		{"non-numeric patch", "1.2.x", Version{1, 2, 0}},
		{"fully non-numeric", "abc", Version{0, 0, 0}},
		{"negative component", "1.-2.3", Version{1, 0, 3}},
		{"extra components ignored", "1.2.3.4", Version{1, 2, 3}},
		{"empty middle component", "1..3", Version{1, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

// TestBump verifies the three bump modes against representative versions:
// major resets minor and patch, minor resets patch, patch touches nothing
// but itself.
func TestBump(t *testing.T) {
	tests := []struct {
		name     string
		input    Version
		mode     model.BumpMode
		expected Version
	}{
		{"major", Version{1, 2, 3}, model.BumpMajor, Version{2, 0, 0}},
		{"major from zero", Version{0, 0, 0}, model.BumpMajor, Version{1, 0, 0}},
		{"minor", Version{1, 2, 3}, model.BumpMinor, Version{1, 3, 0}},
		{"minor from zero", Version{0, 0, 0}, model.BumpMinor, Version{0, 1, 0}},
		{"patch", Version{1, 2, 3}, model.BumpPatch, Version{1, 2, 4}},
		{"patch from zero", Version{0, 0, 0}, model.BumpPatch, Version{0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.input.Bump(tt.mode))
		})
	}
}

// TestBump_DoesNotMutateReceiver confirms Bump is a pure function.
func TestBump_DoesNotMutateReceiver(t *testing.T) {
	v := Version{1, 2, 3}
	_ = v.Bump(model.BumpMajor)
	assert.Equal(t, Version{1, 2, 3}, v)
}

// TestString verifies serialization back to "major.minor.patch".
func TestString(t *testing.T) {
	assert.Equal(t, "1.2.3", Version{1, 2, 3}.String())
	assert.Equal(t, "0.0.0", Version{}.String())
}

// TestTag verifies release tag formatting with a prefix.
func TestTag(t *testing.T) {
	assert.Equal(t, "v1.1.0", Version{1, 1, 0}.Tag("v"))
	assert.Equal(t, "2.0.0", Version{2, 0, 0}.Tag(""))
}

// TestParseBumpRoundTrip exercises the coercion policy end to end: a short
// version string parses with zeroed trailing components and then bumps to a
// fully numeric triple.
func TestParseBumpRoundTrip(t *testing.T) {
	next := Parse("2.3").Bump(model.BumpPatch)
	assert.Equal(t, "2.3.1", next.String())

	next = Parse("1").Bump(model.BumpMinor)
	assert.Equal(t, "1.1.0", next.String())
}
