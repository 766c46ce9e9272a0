package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"blog/auth"
	"blog/cache"
	"blog/config"
	"blog/models"
	"blog/notify"
	"blog/utils"
	"blog/web"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostRequest struct {
	Text  string `form:"text"`
	Group string `form:"group"`
	// Set by the "clear" checkbox of the image field
	ImageClear bool `form:"image-clear"`
}

// Index lists all posts. The rendered list is cached per page number
func Index(c *gin.Context) {
	page, err := models.PostsPaginate(c.Query("page"))
	if err != nil {
		serverError(c, err)
		return
	}
	key := utils.MakeFragmentKey(fragmentIndexCache, page.Number)
	fragment, ok := cache.Get(key)
	if !ok {
		generation := currentIndexGeneration()
		posts, err := models.PostsInPage(page)
		if err != nil {
			serverError(c, err)
			return
		}
		var buf bytes.Buffer
		if err = web.Templates().ExecuteTemplate(&buf, fragmentPostList, gin.H{"page": page, "posts": posts}); err != nil {
			serverError(c, err)
			return
		}
		fragment = buf.String()
		storeIndexFragment(key, generation, fragment)
	}
	render(c, http.StatusOK, templateIndex, gin.H{
		"page":     page,
		"postList": template.HTML(fragment),
	})
}

func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	page, posts, err := models.PostsPage(c.Query("page"), models.PostsByGroup(group.ID))
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, templateGroup, gin.H{
		"title": group.Title,
		"group": group,
		"page":  page,
		"posts": posts,
	})
}

// loadPost resolves the :username/:post_id pair, rendering 404 when it does not match
func loadPost(c *gin.Context) (post models.Post, ok bool) {
	postID, valid := paramID(c, "post_id")
	if !valid {
		notFound(c)
		return
	}
	post, err := models.PostByAuthor(c.Param("username"), postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c)
		return
	} else if err != nil {
		serverError(c, err)
		return
	}
	return post, true
}

// renderPost renders the post page, the comment form may carry errors
func renderPost(c *gin.Context, status int, post *models.Post, form *Form) {
	count, err := models.PostCountByAuthor(*post.AuthorID)
	if err != nil {
		serverError(c, err)
		return
	}
	comments, err := models.CommentsForPost(post.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, status, templatePost, gin.H{
		"title":    post.Text,
		"post":     post,
		"author":   post.Author,
		"count":    count,
		"comments": comments,
		"form":     form,
		"canEdit":  post.IsAuthor(auth.CurrentUser(c)),
	})
}

func PostView(c *gin.Context) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	renderPost(c, http.StatusOK, &post, NewForm())
}

// parsePost validates the post form, the image is only read, not saved
func parsePost(c *gin.Context, form *Form) (r PostRequest, groupID *uint64, img *uploadedImage) {
	form.bindForm(c, &r)
	r.Text = strings.TrimSpace(r.Text)
	form.Set("text", r.Text)
	form.Set("group", r.Group)
	if r.Text == "" {
		form.AddError("text", errRequired)
	}
	if r.Group != "" {
		id, err := strconv.ParseUint(r.Group, 10, 64)
		if err == nil {
			_, err = models.GroupByID(id)
		}
		if err != nil {
			form.AddError("group", errInvalidGroup)
		} else {
			groupID = &id
		}
	}
	img, err := readImage(c, "image")
	if err != nil {
		form.AddError("image", errInvalidImage)
	}
	return
}

func renderPostForm(c *gin.Context, form *Form, post *models.Post) {
	groups, err := models.GroupList()
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, templateNewPost, gin.H{
		"form":   form,
		"groups": groups,
		"post":   post,
	})
}

var (
	// indexGeneration changes whenever the cached index pages become stale
	indexGeneration uint64
	indexMu         sync.Mutex
)

func currentIndexGeneration() uint64 {
	indexMu.Lock()
	defer indexMu.Unlock()
	return indexGeneration
}

// storeIndexFragment caches the fragment unless the index was invalidated
// after generation was read
func storeIndexFragment(key string, generation uint64, fragment string) {
	indexMu.Lock()
	defer indexMu.Unlock()
	if generation != indexGeneration {
		return
	}
	cache.Set(key, fragment, time.Duration(config.CACHE_TIMEOUT)*time.Second)
}

func invalidateIndex() {
	indexMu.Lock()
	defer indexMu.Unlock()
	indexGeneration++
	cache.DeletePrefix(utils.FragmentKeyPrefix(fragmentIndexCache))
}

func NewPost(c *gin.Context, user *models.User) {
	form := NewForm()
	if c.Request.Method != http.MethodPost {
		renderPostForm(c, form, nil)
		return
	}
	r, groupID, img := parsePost(c, form)
	if !form.IsValid() {
		renderPostForm(c, form, nil)
		return
	}
	var postImage models.PostImage
	if img != nil {
		var err error
		if postImage, err = img.save(); err != nil {
			serverError(c, err)
			return
		}
	}
	post, err := models.PostCreate(user, r.Text, groupID, postImage)
	if err != nil {
		deleteImages(postImage.Image, postImage.Thumb)
		serverError(c, err)
		return
	}
	invalidateIndex()
	notify.Default.PostPublished(&post, postURL(user.Username, post.ID))
	redirect(c, "/")
}

// PostEdit is only available to the author, everybody else is sent back to the post
func PostEdit(c *gin.Context) {
	post, ok := loadPost(c)
	if !ok {
		return
	}
	if !post.IsAuthor(auth.CurrentUser(c)) {
		redirect(c, postURL(post.Author.Username, post.ID))
		return
	}
	form := NewForm()
	if c.Request.Method != http.MethodPost {
		form.Set("text", post.Text)
		if post.GroupID != nil {
			form.Set("group", strconv.FormatUint(*post.GroupID, 10))
		}
		renderPostForm(c, form, &post)
		return
	}
	r, groupID, img := parsePost(c, form)
	if !form.IsValid() {
		renderPostForm(c, form, &post)
		return
	}
	oldImage := post.PostImage
	post.Text = r.Text
	post.GroupID = groupID
	if img != nil {
		var err error
		if post.PostImage, err = img.save(); err != nil {
			serverError(c, err)
			return
		}
	} else if r.ImageClear {
		post.PostImage = models.PostImage{}
	}
	if err := post.Save(); err != nil {
		if img != nil {
			deleteImages(post.Image, post.Thumb)
		}
		serverError(c, err)
		return
	}
	if post.Image != oldImage.Image {
		deleteImages(oldImage.Image, oldImage.Thumb)
	}
	invalidateIndex()
	redirect(c, postURL(post.Author.Username, post.ID))
}
