package realtime

import (
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu   sync.Mutex
	msgs [][]byte
	fail bool
}

func (f *fakeClient) Send(message []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.msgs = append(f.msgs, message)
	return true
}

func (f *fakeClient) Close() {}

func TestHub_PublishReachesAllUsers(t *testing.T) {
	h := NewHub()
	a, b, broken := &fakeClient{}, &fakeClient{}, &fakeClient{fail: true}
	h.Register("admin", a)
	h.Register("admin", broken)
	h.Register("ops", b)
	require.Equal(t, 3, h.Clients())

	n := h.Publish(Event{Type: EventCacheCleared, Data: map[string]any{"removed": 3}})
	require.Equal(t, 2, n)
	require.Len(t, a.msgs, 1)
	require.Len(t, b.msgs, 1)

	var got Event
	require.NoError(t, json.Unmarshal(a.msgs[0], &got))
	require.Equal(t, EventCacheCleared, got.Type)
	require.False(t, got.At.IsZero())
	require.EqualValues(t, 3, got.Data["removed"])
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	c := &fakeClient{}
	h.Register("admin", c)
	h.Unregister("admin", c)
	require.Equal(t, 0, h.Clients())
	require.Equal(t, 0, h.Publish(Event{Type: EventCategoriesUpdated}))
	require.Empty(t, c.msgs)
}
