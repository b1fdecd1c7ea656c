package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergePatch(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		before string
		after  string
		want   string
	}{
		"unchanged": {
			before: `{"title":"a","x":1}`,
			after:  `{"title":"a","x":1}`,
			want:   `{}`,
		},
		"title rewritten": {
			before: `{"title":"a","x":1}`,
			after:  `{"title":"b","x":1}`,
			want:   `{"title":"b"}`,
		},
		"array replaced whole": {
			before: `{"detectedChannels":[{"commandId":"FL"}]}`,
			after:  `{"detectedChannels":[{"commandId":"FL","customCrossover":"80"}]}`,
			want:   `{"detectedChannels":[{"commandId":"FL","customCrossover":"80"}]}`,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := MergePatch([]byte(tt.before), []byte(tt.after))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
			assert.True(t, strings.HasSuffix(string(got), "\n"))
		})
	}
}

func TestMergePatchInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := MergePatch([]byte(`{`), []byte(`{}`))
	assert.Error(t, err)
}

func TestLineDiff(t *testing.T) {
	t.Parallel()

	before := "{\n\t\"a\": 1,\n\t\"b\": 2,\n\t\"c\": 3,\n\t\"d\": 4,\n\t\"e\": 5\n}\n"
	after := "{\n\t\"a\": 1,\n\t\"b\": 2,\n\t\"c\": 30,\n\t\"d\": 4,\n\t\"e\": 5\n}\n"

	want := "...\n" +
		" \t\"a\": 1,\n" +
		" \t\"b\": 2,\n" +
		"-\t\"c\": 3,\n" +
		"+\t\"c\": 30,\n" +
		" \t\"d\": 4,\n" +
		" \t\"e\": 5\n" +
		"...\n"
	assert.Equal(t, want, LineDiff(before, after, false))
}

func TestLineDiffIdentical(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", LineDiff("{\n}\n", "{\n}\n", false))
}

func TestRender(t *testing.T) {
	t.Parallel()

	before := []byte("{\"title\": \"a\"}\n")
	after := []byte("{\"title\": \"b\"}\n")

	patch, err := Render(ModePatch, before, after, false)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"b"}`, patch)

	diff, err := Render(ModeDiff, before, after, false)
	require.NoError(t, err)
	assert.Equal(t, "-{\"title\": \"a\"}\n+{\"title\": \"b\"}\n", diff)

	_, err = Render("xml", before, after, false)
	assert.Error(t, err)
}
