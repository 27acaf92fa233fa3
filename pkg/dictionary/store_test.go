package dictionary_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcunliffe1/tolgee-go/pkg/async"
	"github.com/jcunliffe1/tolgee-go/pkg/dictionary"
)

func TestStore_Transitions(t *testing.T) {
	t.Parallel()

	s := dictionary.NewStore()

	st := s.State("cs")
	assert.Equal(t, dictionary.Unrequested, st.Status)
	assert.False(t, st.Settled())

	f := async.Resolved(dictionary.Bundle{})
	s.MarkPending("cs", f)
	st = s.State("cs")
	assert.Equal(t, dictionary.Pending, st.Status)
	assert.Same(t, f, st.Future)

	bundle := dictionary.NewBundle(map[string]string{"hello_world": "Ahoj světe!"})
	s.Set("cs", bundle)
	st = s.State("cs")
	require.Equal(t, dictionary.Loaded, st.Status)
	assert.True(t, st.Settled())
	assert.Nil(t, st.Future)

	got, ok := s.Bundle("cs")
	require.True(t, ok)
	v, _ := got.Get("hello_world")
	assert.Equal(t, "Ahoj světe!", v)

	boom := errors.New("boom")
	s.MarkFailed("en", boom)
	st = s.State("en")
	assert.Equal(t, dictionary.Failed, st.Status)
	assert.ErrorIs(t, st.Err, boom)
	_, ok = s.Bundle("en")
	assert.False(t, ok)

	assert.Equal(t, []string{"cs"}, s.Languages())

	s.Reset("cs")
	assert.Equal(t, dictionary.Unrequested, s.State("cs").Status)
	assert.Empty(t, s.Languages())
}

func TestStore_PendingKeepsLoadedBundle(t *testing.T) {
	t.Parallel()

	s := dictionary.NewStore()

	_, loaded := s.MarkPending("cs", async.Resolved(dictionary.Bundle{}))
	assert.False(t, loaded)
	assert.Equal(t, 0, s.State("cs").Bundle.Len(), "first load has nothing to keep")

	s.Set("cs", dictionary.NewBundle(map[string]string{"k": "old"}))
	s.Update("cs", func(b dictionary.Bundle) dictionary.Bundle { return b.With("patched", "yes") })
	kept, loaded := s.MarkPending("cs", async.Resolved(dictionary.Bundle{}))
	require.True(t, loaded)
	assert.True(t, kept.Has("patched"), "the kept bundle includes earlier patches")

	st := s.State("cs")
	assert.Equal(t, dictionary.Pending, st.Status)
	v, ok := st.Bundle.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "old", v)

	_, ok = s.Bundle("cs")
	assert.False(t, ok, "Bundle reports Loaded bundles only")
}

func TestStore_Update(t *testing.T) {
	t.Parallel()

	s := dictionary.NewStore()

	_, ok := s.Update("cs", func(b dictionary.Bundle) dictionary.Bundle { return b.With("k", "v") })
	assert.False(t, ok, "unloaded language is not patched")
	assert.Equal(t, dictionary.Unrequested, s.State("cs").Status)

	s.Set("cs", dictionary.NewBundle(map[string]string{"k": "old"}))
	prev, ok := s.Update("cs", func(b dictionary.Bundle) dictionary.Bundle { return b.With("k", "new") })
	require.True(t, ok)

	v, _ := prev.Get("k")
	assert.Equal(t, "old", v)
	cur, _ := s.Bundle("cs")
	v, _ = cur.Get("k")
	assert.Equal(t, "new", v)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "unrequested", dictionary.Unrequested.String())
	assert.Equal(t, "pending", dictionary.Pending.String())
	assert.Equal(t, "loaded", dictionary.Loaded.String())
	assert.Equal(t, "failed", dictionary.Failed.String())
	assert.Equal(t, "unknown", dictionary.Status(42).String())
}
