package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"blog/db"
	"blog/models"
	"blog/notify"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFollows(t *testing.T) int64 {
	var count int64
	require.NoError(t, db.Instance.Model(&models.Follow{}).Count(&count).Error)
	return count
}

func TestFollowUnfollow(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "ivan1337")
	createUser(t, "oleg1337")
	c := newClient(t, srv)
	c.login("ivan1337")

	_, body := c.get("/oleg1337/")
	assert.Contains(t, body, `class="button follow"`)
	assert.Contains(t, body, "Followers: 0")

	resp, _ := c.get("/oleg1337/follow/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/oleg1337/", resp.Header.Get("Location"))

	_, body = c.get("/oleg1337/")
	assert.Contains(t, body, `class="button unfollow"`)
	assert.Contains(t, body, "Followers: 1")
	_, body = c.get("/ivan1337/")
	assert.Contains(t, body, "Following: 1")

	resp, _ = c.get("/oleg1337/unfollow/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/oleg1337/", resp.Header.Get("Location"))
	assert.Equal(t, int64(0), countFollows(t))
}

func TestFollowAnonymous(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "oleg1337")
	c := newClient(t, srv)

	_, body := c.get("/oleg1337/")
	assert.NotContains(t, body, `class="button follow"`)
	resp, _ := c.get("/oleg1337/follow/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/auth/login/?next="))
	assert.Equal(t, int64(0), countFollows(t))
}

func TestFollowSelfAndTwice(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "ivan1337")
	createUser(t, "oleg1337")
	c := newClient(t, srv)
	c.login("ivan1337")

	_, body := c.get("/ivan1337/")
	assert.NotContains(t, body, `class="button follow"`)
	resp, _ := c.get("/ivan1337/follow/")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, int64(0), countFollows(t))

	c.get("/oleg1337/follow/")
	c.post("/oleg1337/follow/", nil)
	assert.Equal(t, int64(1), countFollows(t))

	resp, _ = c.get("/nobody/follow/")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollowFeed(t *testing.T) {
	srv := setupServer(t)
	createUser(t, "ivan1337")
	oleg := createUser(t, "oleg1337")
	post := createPost(t, &oleg, "Test_text", nil)
	c := newClient(t, srv)
	c.login("ivan1337")

	_, body := c.get("/follow/")
	assert.NotContains(t, body, post.Text)

	c.get("/oleg1337/follow/")
	resp, body := c.get("/follow/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, post.Text)

	c.get("/oleg1337/unfollow/")
	_, body = c.get("/follow/")
	assert.NotContains(t, body, post.Text)
}

func TestUserDeleteCascades(t *testing.T) {
	setupServer(t)
	ivan := createUser(t, "ivan1337")
	oleg := createUser(t, "oleg1337")
	group := createGroup(t)
	post := createPost(t, &oleg, "Test_text", &group)
	_, err := models.FollowCreate(ivan.ID, oleg.ID)
	require.NoError(t, err)
	_, err = models.CommentCreate(&post, &ivan, "comment")
	require.NoError(t, err)

	require.NoError(t, models.GroupDelete(group.ID))
	saved, err := models.PostByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, saved.GroupID)

	require.NoError(t, db.Instance.Delete(&models.User{}, oleg.ID).Error)
	assert.Equal(t, int64(0), countPosts(t))
	assert.Equal(t, int64(0), countFollows(t))
	var comments int64
	require.NoError(t, db.Instance.Model(&models.Comment{}).Count(&comments).Error)
	assert.Equal(t, int64(0), comments)
}

func TestNewPostNotifiesFollowers(t *testing.T) {
	srv := setupServer(t)
	ivan := createUser(t, "ivan1337")
	createUser(t, "oleg1337")
	follower := newClient(t, srv)
	follower.login("ivan1337")
	follower.get("/oleg1337/follow/")

	dialer := websocket.Dialer{Jar: follower.jar}
	conn, _, err := dialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return notify.Default.IsConnected(ivan.ID) }, 2*time.Second, 10*time.Millisecond)

	author := newClient(t, srv)
	author.login("oleg1337")
	resp, _ := author.post("/new/", url.Values{"text": {"Hello followers"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	var event notify.Event
	require.NoError(t, json.Unmarshal(message, &event))
	assert.Equal(t, notify.EventNewPost, event.Type)
	assert.Equal(t, "oleg1337", event.Author)
	assert.Equal(t, "Hello followers", event.Text)
	assert.Equal(t, "/oleg1337/"+strconv.FormatUint(event.PostID, 10)+"/", event.URL)
}

func TestWebSocketAnonymous(t *testing.T) {
	srv := setupServer(t)
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/", nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}
