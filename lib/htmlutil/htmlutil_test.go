package htmlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{input: "  Jane   Doe ", expected: "Jane Doe"},
		{input: "\n\t  Feb 11, 2024\n  Jun 03, 2019\n", expected: "Feb 11, 2024 Jun 03, 2019"},
		// a bare newline still separates the words around it
		{input: "line1\nline2", expected: "line1 line2"},
		{input: "Pratchett,\tTerry", expected: "Pratchett, Terry"},
		{input: "plain", expected: "plain"},
		{input: "", expected: ""},
	}
	for _, test := range cases {
		require.Equal(t, test.expected, CleanText(test.input), "%q", test.input)
	}
}
