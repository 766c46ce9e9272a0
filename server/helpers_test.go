package server

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"blog/cache"
	"blog/config"
	"blog/db"
	"blog/models"
	"blog/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testPassword = "13371337"

// setupServer starts the whole application on a fresh in-memory database
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.CACHE_ENABLED = false
	config.DEBUG_MODE = true

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	require.NoError(t, db.Open(sqlite.Open(db.SQLiteDSN(dsn))))
	sqlDB, err := db.Instance.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, models.Migrate())

	storage.SetDefault(storage.NewDiskStorage(t.TempDir(), config.MEDIA_URL))
	cache.Clear()

	srv := httptest.NewServer(NewRouter())
	t.Cleanup(func() {
		srv.Close()
		db.Close()
		config.CACHE_ENABLED = true
	})
	return srv
}

func createUser(t *testing.T, username string) models.User {
	t.Helper()
	u, err := models.UserCreate(username, username+"@ya.ru", testPassword)
	require.NoError(t, err)
	return u
}

func createGroup(t *testing.T) models.Group {
	t.Helper()
	g, err := models.GroupCreate("Test Group", "Testid", "Test description")
	require.NoError(t, err)
	return g
}

func createPost(t *testing.T, author *models.User, text string, group *models.Group) models.Post {
	t.Helper()
	var groupID *uint64
	if group != nil {
		groupID = &group.ID
	}
	p, err := models.PostCreate(author, text, groupID, models.PostImage{})
	require.NoError(t, err)
	return p
}

func countPosts(t *testing.T) int64 {
	var count int64
	require.NoError(t, db.Instance.Model(&models.Post{}).Count(&count).Error)
	return count
}

type testClient struct {
	t    *testing.T
	base string
	jar  http.CookieJar
	http *http.Client
}

// newClient does not follow redirects, so they can be checked
func newClient(t *testing.T, srv *httptest.Server) *testClient {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{
		t:    t,
		base: srv.URL,
		jar:  jar,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (c *testClient) do(req *http.Request) (*http.Response, string) {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, string(body)
}

func (c *testClient) get(path string) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *testClient) post(path string, values url.Values) (*http.Response, string) {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.base+path, strings.NewReader(values.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *testClient) postFile(path string, values map[string]string, field, fileName string, data []byte) (*http.Response, string) {
	c.t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range values {
		require.NoError(c.t, w.WriteField(k, v))
	}
	fw, err := w.CreateFormFile(field, fileName)
	require.NoError(c.t, err)
	_, err = fw.Write(data)
	require.NoError(c.t, err)
	require.NoError(c.t, w.Close())
	req, err := http.NewRequest(http.MethodPost, c.base+path, &body)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

func (c *testClient) login(username string) {
	c.t.Helper()
	resp, _ := c.post("/auth/login/", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(c.t, http.StatusFound, resp.StatusCode)
}

func pngImage(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	for x := 0; x < 200; x++ {
		for y := 0; y < 200; y++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// mediaFiles lists the files stored under dir, relative to it
func mediaFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	require.NoError(t, filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(dir, path)
			files = append(files, rel)
		}
		return nil
	}))
	return files
}
