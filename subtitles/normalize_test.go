package subtitles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "two blocks",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n2\n00:00:03,000 --> 00:00:04,000\nSecond line\n\n",
			want: "Hello world\nSecond line",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "only markers",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\n\n\n2\n",
			want: "",
		},
		{
			name: "multi-line cue keeps order",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\nfirst\nsecond\n\n2\n00:00:02,000 --> 00:00:03,000\nthird\n",
			want: "first\nsecond\nthird",
		},
		{
			name: "crlf line endings",
			raw:  "1\r\n00:00:01,000 --> 00:00:02,000\r\nBonjour\r\n\r\n",
			want: "Bonjour",
		},
		{
			name: "text lines are trimmed",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\n   padded text  \t\n",
			want: "padded text",
		},
		{
			name: "numeric cue is dropped",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\n42\n\n2\n00:00:02,000 --> 00:00:03,000\nafter\n",
			want: "after",
		},
		{
			name: "marker anywhere in the line",
			raw:  "an arrow --> inside text\nkept\n",
			want: "kept",
		},
		{
			name: "digits mixed with text are kept",
			raw:  "1\n00:00:01,000 --> 00:00:02,000\n42 apples\n",
			want: "42 apples",
		},
		{
			name: "partial block without timestamp",
			raw:  "7\nstray text",
			want: "stray text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeOutputInvariants(t *testing.T) {
	raw := "1\n00:00:00,000 --> 00:00:01,000\n- Hi.\n\n\n  \n2\n00:00:01,000 --> 00:00:02,000\n123\n<i>styled</i>\n\n3\n"
	out := Normalize(raw)

	for _, line := range strings.Split(out, "\n") {
		assert.NotEmpty(t, line)
		assert.False(t, isSequenceNumber(line), "numeric line %q leaked", line)
		assert.NotContains(t, line, timestampMarker)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := "1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n2\n00:00:03,000 --> 00:00:04,000\nSecond line\n"
	once := Normalize(raw)
	assert.Equal(t, once, Normalize(once))
}
