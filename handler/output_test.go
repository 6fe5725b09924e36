package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "trailing newline", input: "title,author\nNana,Emile ZOLA\n", expected: []string{"title,author", "Nana,Emile ZOLA"}},
		{name: "crlf", input: "a\r\nb\r\n", expected: []string{"a", "b"}},
		{name: "blank lines kept", input: "a\n\nb", expected: []string{"a", "", "b"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := require.New(t)

			lines := splitLines([]byte(tc.input))
			got := make([]string, len(lines))
			for i, l := range lines {
				got[i] = string(l)
			}
			r.Equal(tc.expected, got)
		})
	}
}

func TestRegtype(t *testing.T) {
	r := require.New(t)

	r.Equal("c", regtype([]byte("Germinal")))
	r.Equal("c", regtype([]byte("Germinal\n")))
	r.Equal("l", regtype([]byte("title\nGerminal\n")))
}
