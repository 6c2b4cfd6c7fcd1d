package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFull_Identity(t *testing.T) {
	for _, s := range []string{"", "24", "1 2\n3 4\n", "surprise!"} {
		require.Equal(t, Same, Full{}.Compare(s, s))
	}
}

func TestLine_Identity(t *testing.T) {
	for _, s := range []string{"", "24", "1 2\n3 4\n"} {
		require.Equal(t, Same, Line{}.Compare(s, s))
	}
}

func TestValue_Identity(t *testing.T) {
	for _, s := range []string{"", "24", "1 2\n3 4\n"} {
		require.Equal(t, Same, Value{}.Compare(s, s))
	}
}

func TestValue_StripsSpaceAndNewline(t *testing.T) {
	assert.Equal(t, Same, Value{}.Compare("1 2\n", " 1  2 "))
}

func TestValueDifferentImpliesFullAndLineNotSame(t *testing.T) {
	cases := []struct{ a, b string }{
		{"1 2", "1 3"},
		{"abc", "abd"},
		{"24", "surprise!"},
	}
	for _, tc := range cases {
		if Value{}.Compare(tc.a, tc.b) != Different {
			continue
		}
		assert.NotEqual(t, Same, Full{}.Compare(tc.a, tc.b))
		assert.NotEqual(t, Same, Line{}.Compare(tc.a, tc.b))
	}
}

func TestLine_TrimAndRightTrimYieldsPresentationError(t *testing.T) {
	// "1 2\n" vs " 1  2 " — same after whitespace normalization, not byte-equal.
	got := Line{}.Compare("1 2\n", " 1  2 ")
	assert.Equal(t, PatternDifferent, got)
}

func TestFull_ByteIdenticalIsSame(t *testing.T) {
	assert.Equal(t, Same, Full{}.Compare("24", "24"))
}

func TestFull_WrongAnswer(t *testing.T) {
	assert.Equal(t, Different, Full{}.Compare("24", "surprise!"))
}

func TestStrict_Table(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		actual   string
		want     Result
	}{
		{"byte-equal", "24", "24", Same},
		{"pattern-diff", "1 2\n", " 1  2 ", PatternDifferent},
		{"real-diff", "24", "25", Different},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Strict{}.Compare(tc.expected, tc.actual)
			assert.Equal(t, tc.want, got, fmt.Sprintf("Strict(%q, %q)", tc.expected, tc.actual))
		})
	}
}
