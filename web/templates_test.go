package web

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl := Templates()
	for _, name := range []string{
		"index.tmpl", "group.tmpl", "group_new.tmpl", "profile.tmpl", "post.tmpl",
		"new_post.tmpl", "follow.tmpl", "login.tmpl", "signup.tmpl", "logged_out.tmpl",
		"403.tmpl", "404.tmpl", "500.tmpl", "post_list", "post_item", "paginator",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestLinebreaksbr(t *testing.T) {
	assert.Equal(t, "a<br>&lt;b&gt;<br>c", string(linebreaksbr("a\r\n<b>\nc")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate(5, "abc"))
	assert.Equal(t, "пр…", truncate(2, "привет"))
}

func TestPostListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, "post_list", map[string]any{"posts": nil, "page": nil}))
	assert.Contains(t, buf.String(), "No posts yet")
}
