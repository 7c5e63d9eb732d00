package videoid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id with spaces", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ"},
		{"bare id with dash and underscore", "a-b_c-d_e-f", "a-b_c-d_e-f"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abc&t=3", "dQw4w9WgXcQ"},
		{"short link double slash", "https://youtu.be//dQw4w9WgXcQ/", "dQw4w9WgXcQ"},
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10", "dQw4w9WgXcQ"},
		{"watch param order", "https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch first v wins", "https://youtube.com/watch?v=dQw4w9WgXcQ&v=aaaaaaaaaaa", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"music host", "https://music.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"upper case host", "HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"host with port", "https://www.youtube.com:443/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ"},
		{"live", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"nocookie embed", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts trailing slash", "https://youtube.com//shorts//dQw4w9WgXcQ/", "dQw4w9WgXcQ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrMissingInput},
		{"whitespace", "   \t", ErrMissingInput},
		{"short v", "https://youtube.com/watch?v=short", ErrUnrecognizedURL},
		{"long v", "https://youtube.com/watch?v=dQw4w9WgXcQX", ErrUnrecognizedURL},
		{"missing v", "https://youtube.com/watch?t=10", ErrUnrecognizedURL},
		{"watch subpath", "https://youtube.com/watch/dQw4w9WgXcQ", ErrUnrecognizedURL},
		{"unknown prefix", "https://youtube.com/clip/dQw4w9WgXcQ", ErrUnrecognizedURL},
		{"prefix without id", "https://youtube.com/shorts/", ErrUnrecognizedURL},
		{"short link bad id", "https://youtu.be/abc", ErrUnrecognizedURL},
		{"short link empty path", "https://youtu.be/", ErrUnrecognizedURL},
		{"other host", "https://vimeo.com/watch?v=dQw4w9WgXcQ", ErrUnrecognizedURL},
		{"short link path on primary host", "https://youtube.com/dQw4w9WgXcQ", ErrUnrecognizedURL},
		{"bad escape", "https://youtube.com/%zz", ErrInvalidURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, got)
		})
	}
}

func TestResolveNotAURL(t *testing.T) {
	_, err := Resolve("not a url at all")
	require.Error(t, err)
	assert.True(t, err == ErrUnrecognizedURL || err == ErrInvalidURL, "unexpected error %v", err)
}

func TestResolveBareIDsUnchanged(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	for i := 0; i+11 <= len(alphabet); i++ {
		id := alphabet[i : i+11]
		got, err := Resolve(id)
		require.NoError(t, err, id)
		assert.Equal(t, ID(id), got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("dQw4w9WgXcQ"))
	assert.False(t, Valid("dQw4w9WgXc"))
	assert.False(t, Valid("dQw4w9WgXcQ1"))
	assert.False(t, Valid("dQw4w9WgX.Q"))
	assert.False(t, Valid(""))
}
