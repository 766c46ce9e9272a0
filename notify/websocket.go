package notify

import (
	"log"
	"sync"
	"time"

	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocket keeps the connection of a logged in user open until it breaks
func (h *Hub) WebSocket(c *gin.Context, user *models.User) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client, writes may come from other request goroutines
	var writeMutex sync.Mutex
	isConnected := true
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	h.Add(user.ID, &client)
	defer h.Remove(user.ID, &client)
	// Main read cycle, only pings are expected
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("read err:", err)
			}
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			writeMutex.Lock()
			_ = conn.WriteMessage(mt, []byte("pong"))
			writeMutex.Unlock()
		}
	}
}

// PostPublished tells the followers of the author about a new post
func (h *Hub) PostPublished(post *models.Post, url string) {
	if post.AuthorID == nil {
		return
	}
	followers, err := models.FollowerIDs(*post.AuthorID)
	if err != nil {
		log.Printf("notify: cannot load followers of %d: %v", *post.AuthorID, err)
		return
	}
	text := []rune(post.Text)
	if len(text) > 140 {
		text = text[:140]
	}
	h.Send(followers, Event{
		Type:    EventNewPost,
		PostID:  post.ID,
		Author:  post.AuthorUsername(),
		Text:    string(text),
		URL:     url,
		PubDate: post.PubDate,
	})
}

