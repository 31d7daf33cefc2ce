package accuracy

import (
	"strings"
	"testing"
	"testing/iotest"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	for _, tt := range []struct {
		name     string
		ref, gen string
		want     Result
	}{
		{"equal", "a\nb\n", "a\nb\n", Result{Equal: true}},
		{"empty", "", "", Result{Equal: true}},
		{"line terminators", "a\nb\nc", "a\r\nb\rc", Result{Equal: true}},
		{"missing final newline", "a\n", "a", Result{Equal: true}},
		{"differ", "a\nb\nc\n", "a\nB\nc\n", Result{Line: 2, RefLine: "b", NewLine: "B"}},
		{"generated shorter", "a\nb\n", "a\n", Result{Line: 2, RefLine: "b", NewLine: EndOfStream}},
		{"generated longer", "a\n", "a\n\n", Result{Line: 2, RefLine: EndOfStream, NewLine: ""}},
		{"reference empty", "", "x", Result{Line: 1, RefLine: EndOfStream, NewLine: "x"}},
		{"trailing spaces", "a \n", "a\n", Result{Line: 1, RefLine: "a ", NewLine: "a"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(strings.NewReader(tt.ref), strings.NewReader(tt.gen))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compare (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareReadError(t *testing.T) {
	_, err := Compare(iotest.ErrReader(iotest.ErrTimeout), strings.NewReader("a"))
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}

func TestEqualIgnoringCR(t *testing.T) {
	for _, tt := range []struct {
		ref, gen string
		want     bool
	}{
		{"a\nb\n", "a\nb\n", true},
		{"a\nb\n", "a\r\nb\r\n", true},
		{"a\r\nb", "a\r\nb", true},
		{"ab", "a\rb\r", true},
		{"a\nb\n", "a\nb", false},
		{"a\nb", "a\nc", false},
		{"a\r\n", "a\n", false},
		{"", "", true},
		{"", "\r", true},
	} {
		got, err := EqualIgnoringCR(strings.NewReader(tt.ref), strings.NewReader(tt.gen))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%q vs %q", tt.ref, tt.gen)
	}

	_, err := EqualIgnoringCR(strings.NewReader("a"), iotest.ErrReader(iotest.ErrTimeout))
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}
