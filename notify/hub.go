// Package notify pushes events to the browsers of logged in users over websockets
package notify

import (
	"encoding/json"
	"log"
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a user may be connected more than once (several tabs)
type ConnectedClients []*ConnectedClient

type Hub struct {
	users cmap.ConcurrentMap[string, ConnectedClients]
}

// Event is the JSON message sent to the clients
type Event struct {
	Type    string `json:"type"`
	PostID  uint64 `json:"post_id,omitempty"`
	Author  string `json:"author,omitempty"`
	Text    string `json:"text,omitempty"`
	URL     string `json:"url,omitempty"`
	PubDate int64  `json:"pub_date,omitempty"`
}

const EventNewPost = "new_post"

var Default = NewHub()

func NewHub() *Hub {
	return &Hub{users: cmap.New[ConnectedClients]()}
}

func socketID(userID uint64) string {
	return strconv.FormatUint(userID, 10)
}

func (h *Hub) Add(userID uint64, c *ConnectedClient) {
	h.users.Upsert(socketID(userID), ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func (h *Hub) Remove(userID uint64, c *ConnectedClient) {
	id := socketID(userID)
	h.users.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	h.users.RemoveCb(id, func(key string, v ConnectedClients, exists bool) bool {
		return exists && len(v) == 0
	})
}

func (h *Hub) IsConnected(userID uint64) bool {
	clients, ok := h.users.Get(socketID(userID))
	return ok && len(clients) > 0
}

// Send delivers the event to every connection of the given users, returns how many got it
func (h *Hub) Send(userIDs []uint64, event Event) (sent int) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("notify: cannot encode event: %v", err)
		return
	}
	for _, userID := range userIDs {
		clients, ok := h.users.Get(socketID(userID))
		if !ok {
			continue
		}
		for _, client := range clients {
			if client.fun(data) {
				sent++
			}
		}
	}
	return
}
