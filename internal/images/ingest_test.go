package images

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"chaton2api-go/internal/storage"
	"github.com/stretchr/testify/require"
)

func newFileIngestor(t *testing.T) (*Ingestor, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(t.TempDir())
	require.NoError(t, store.Initialize(context.Background()))
	return NewIngestor(store, "http://gw.local:8080/", nil), store
}

func TestIngestDataURIRoundTrip(t *testing.T) {
	t.Parallel()
	ing, store := newFileIngestor(t)

	cases := []struct {
		subtype string
		ext     string
	}{
		{"png", ".png"},
		{"jpeg", ".jpg"},
		{"jpg", ".jpg"},
		{"webp", ".jpg"},
		{"gif", ".jpg"},
	}
	for _, tc := range cases {
		payload := []byte("image-bytes-" + tc.subtype + "\x00\xff")
		ref := "data:image/" + tc.subtype + ";base64," + base64.StdEncoding.EncodeToString(payload)

		res, ok := ing.Ingest(context.Background(), ref, nil)
		require.True(t, ok, tc.subtype)
		require.NotNil(t, res.Stored)
		require.True(t, strings.HasSuffix(res.Stored.Filename, tc.ext), res.Stored.Filename)
		require.Equal(t, "http://gw.local:8080/images/"+res.Stored.Filename, res.URL)

		got, err := store.Get(context.Background(), res.Stored.Filename)
		require.NoError(t, err)
		if !bytes.Equal(payload, got) {
			t.Fatalf("%s: stored bytes differ", tc.subtype)
		}
	}
}

func TestIngestPassesThroughExternalURL(t *testing.T) {
	t.Parallel()
	ing, _ := newFileIngestor(t)

	res, ok := ing.Ingest(context.Background(), "https://example.com/cat.png", nil)
	require.True(t, ok)
	require.Nil(t, res.Stored)
	require.Equal(t, "https://example.com/cat.png", res.URL)
}

func TestIngestSkipsBadPayloads(t *testing.T) {
	t.Parallel()
	ing, _ := newFileIngestor(t)

	for _, ref := range []string{
		"",
		"   ",
		"data:image/png;base64,!!!not-base64!!!",
		"data:image/png;base64,",
		"data:image/png,rawbytes",
	} {
		_, ok := ing.Ingest(context.Background(), ref, nil)
		require.False(t, ok, ref)
	}
}

type failingStore struct{ storage.ImageStore }

func (failingStore) Put(context.Context, string, []byte) error { return errors.New("disk full") }

func TestIngestTreatsWriteFailureAsAbsent(t *testing.T) {
	t.Parallel()
	ing := NewIngestor(failingStore{}, "http://gw", nil)
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	_, ok := ing.Ingest(context.Background(), ref, nil)
	require.False(t, ok)
}

type serialStore struct {
	storage.ImageStore
	active  int32
	overlap int32
	count   int32
}

func (s *serialStore) Put(ctx context.Context, name string, data []byte) error {
	if atomic.AddInt32(&s.active, 1) > 1 {
		atomic.StoreInt32(&s.overlap, 1)
	}
	atomic.AddInt32(&s.count, 1)
	atomic.AddInt32(&s.active, -1)
	return nil
}

func TestIngestSerializesWritesAcrossIngestors(t *testing.T) {
	t.Parallel()
	store := &serialStore{}
	lock := &sync.Mutex{}
	a := NewIngestor(store, "http://gw", lock)
	b := NewIngestor(store, "http://gw", lock)

	var wg sync.WaitGroup
	names := sync.Map{}
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ing := a
			if n%2 == 1 {
				ing = b
			}
			ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(fmt.Sprint(n)))
			res, ok := ing.Ingest(context.Background(), ref, nil)
			if ok {
				names.Store(res.Stored.Filename, true)
			}
		}(n)
	}
	wg.Wait()

	require.Equal(t, int32(50), atomic.LoadInt32(&store.count))
	require.Equal(t, int32(0), atomic.LoadInt32(&store.overlap))
	unique := 0
	names.Range(func(any, any) bool { unique++; return true })
	require.Equal(t, 50, unique)
}
