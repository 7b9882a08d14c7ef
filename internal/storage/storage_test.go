package storage

import (
	"context"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeKey(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		filename string
		pattern  string
	}{
		{
			name:     "receipt jpeg",
			kind:     "receipts",
			filename: "IMG_2041.JPG",
			pattern:  `^receipts/[0-9a-f-]{36}\.jpg$`,
		},
		{
			name:     "avatar png",
			kind:     "avatars",
			filename: "headshot.png",
			pattern:  `^avatars/[0-9a-f-]{36}\.png$`,
		},
		{
			name:     "no extension",
			kind:     "continuity",
			filename: "notes",
			pattern:  `^continuity/[0-9a-f-]{36}$`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := MakeKey(tt.kind, tt.filename)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), key)
		})
	}
}

func TestMakeKeyUnique(t *testing.T) {
	a := MakeKey("receipts", "same.pdf")
	b := MakeKey("receipts", "same.pdf")
	assert.NotEqual(t, a, b)
}

func TestMemoryPutGetDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	url, err := store.Put(ctx, "receipts/abc.txt", strings.NewReader("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "memory://receipts/abc.txt", url)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "text/plain", store.ContentType("receipts/abc.txt"))

	rc, err := store.Get(ctx, "receipts/abc.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "hello", string(data))

	require.NoError(t, store.Delete(ctx, "receipts/abc.txt"))
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(ctx, "receipts/abc.txt")
	assert.Error(t, err)
}

func TestMemoryGetMissing(t *testing.T) {
	store := NewMemory()
	_, err := store.Get(context.Background(), "nope")
	assert.Error(t, err)
}

func TestMemoryOverwrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, err := store.Put(ctx, "k", strings.NewReader("first"), "text/plain")
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", strings.NewReader("second"), "application/pdf")
	require.NoError(t, err)

	rc, err := store.Get(ctx, "k")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()

	assert.Equal(t, "second", string(data))
	assert.Equal(t, "application/pdf", store.ContentType("k"))
	assert.Equal(t, 1, store.Len())
}
