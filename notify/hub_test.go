package notify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recorder(received *[][]byte, ok bool) *ConnectedClient {
	return &ConnectedClient{fun: func(data []byte) bool {
		*received = append(*received, data)
		return ok
	}}
}

func TestHubSend(t *testing.T) {
	h := NewHub()
	var tab1, tab2, other [][]byte
	c1 := recorder(&tab1, true)
	c2 := recorder(&tab2, true)
	h.Add(1, c1)
	h.Add(1, c2)
	h.Add(2, recorder(&other, true))

	sent := h.Send([]uint64{1, 3}, Event{Type: EventNewPost, PostID: 7, Author: "ivan"})
	assert.Equal(t, 2, sent)
	require.Len(t, tab1, 1)
	assert.Len(t, tab2, 1)
	assert.Empty(t, other)

	var event Event
	require.NoError(t, json.Unmarshal(tab1[0], &event))
	assert.Equal(t, EventNewPost, event.Type)
	assert.Equal(t, uint64(7), event.PostID)
}

func TestHubRemove(t *testing.T) {
	h := NewHub()
	var a, b [][]byte
	c1 := recorder(&a, true)
	c2 := recorder(&b, true)
	h.Add(1, c1)
	h.Add(1, c2)

	h.Remove(1, c1)
	assert.True(t, h.IsConnected(1))
	assert.Equal(t, 1, h.Send([]uint64{1}, Event{Type: EventNewPost}))

	h.Remove(1, c2)
	assert.False(t, h.IsConnected(1))
	assert.Equal(t, 0, h.Send([]uint64{1}, Event{Type: EventNewPost}))
}

func TestHubSendFailedClient(t *testing.T) {
	h := NewHub()
	var a [][]byte
	h.Add(1, recorder(&a, false))
	assert.Equal(t, 0, h.Send([]uint64{1}, Event{Type: EventNewPost}))
	assert.Len(t, a, 1)
}
