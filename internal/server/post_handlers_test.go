package server

import (
	"net/http"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)
	user, token := createTestUser(t, s, db, "Jane", "jane@example.com")

	t.Run("create denormalizes the author", func(t *testing.T) {
		var post models.Post
		status := doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"text": "first post"}, &post)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "first post", post.Text)
		assert.Equal(t, user.Name, post.Name)
		assert.Equal(t, user.Avatar, post.Avatar)
		assert.Equal(t, user.ID, post.UserID)
	})

	t.Run("empty text is rejected", func(t *testing.T) {
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"text": "  "}, &resp)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Text is required", resp.Error)
	})

	t.Run("list is newest first", func(t *testing.T) {
		doJSON(t, app, http.MethodPost, "/api/posts", token,
			map[string]string{"text": "second post"}, nil)

		var posts []models.Post
		status := doJSON(t, app, http.MethodGet, "/api/posts", token, nil, &posts)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, posts, 2)
		assert.Equal(t, "second post", posts[0].Text)
	})

	t.Run("missing post answers 404", func(t *testing.T) {
		status := doJSON(t, app, http.MethodGet, "/api/posts/9999", token, nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})

	t.Run("unauthenticated reads are refused", func(t *testing.T) {
		status := doJSON(t, app, http.MethodGet, "/api/posts", "", nil, nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestDeletePost(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)
	_, ownerToken := createTestUser(t, s, db, "Owner", "owner@example.com")
	_, otherToken := createTestUser(t, s, db, "Other", "other@example.com")

	var post models.Post
	doJSON(t, app, http.MethodPost, "/api/posts", ownerToken,
		map[string]string{"text": "mine"}, &post)

	t.Run("non-owner is refused", func(t *testing.T) {
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(post.ID), otherToken, nil, &resp)
		require.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "User not authorized", resp.Error)
	})

	t.Run("owner deletes, likes and comments go too", func(t *testing.T) {
		doJSON(t, app, http.MethodPut, "/api/posts/like/"+itoa(post.ID), otherToken, nil, nil)
		doJSON(t, app, http.MethodPost, "/api/posts/comment/"+itoa(post.ID), otherToken,
			map[string]string{"text": "a comment"}, nil)

		status := doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(post.ID), ownerToken, nil, nil)
		require.Equal(t, http.StatusOK, status)

		var likes, comments int64
		db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
		db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments)
		assert.Zero(t, likes)
		assert.Zero(t, comments)
	})
}

func TestLikeUnlikeFlow(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)
	_, authorToken := createTestUser(t, s, db, "Author", "author@example.com")
	liker, likerToken := createTestUser(t, s, db, "Liker", "liker@example.com")

	var post models.Post
	doJSON(t, app, http.MethodPost, "/api/posts", authorToken,
		map[string]string{"text": "like me"}, &post)
	path := itoa(post.ID)

	t.Run("like returns the updated likes", func(t *testing.T) {
		var likes []models.Like
		status := doJSON(t, app, http.MethodPut, "/api/posts/like/"+path, likerToken, nil, &likes)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, likes, 1)
		assert.Equal(t, liker.ID, likes[0].UserID)
	})

	t.Run("second like is refused", func(t *testing.T) {
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodPut, "/api/posts/like/"+path, likerToken, nil, &resp)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Post already liked", resp.Error)
	})

	t.Run("unlike removes only the caller's like", func(t *testing.T) {
		doJSON(t, app, http.MethodPut, "/api/posts/like/"+path, authorToken, nil, nil)

		var likes []models.Like
		status := doJSON(t, app, http.MethodPut, "/api/posts/unlike/"+path, likerToken, nil, &likes)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, likes, 1, "the author's like must survive")
		assert.NotEqual(t, liker.ID, likes[0].UserID)
	})

	t.Run("unlike without a like is refused", func(t *testing.T) {
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodPut, "/api/posts/unlike/"+path, likerToken, nil, &resp)
		require.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Post has not yet been liked", resp.Error)
	})

	t.Run("liking a missing post answers 404", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPut, "/api/posts/like/9999", likerToken, nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}

func TestCommentFlow(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(t, s)
	_, authorToken := createTestUser(t, s, db, "Author", "author@example.com")
	commenter, commenterToken := createTestUser(t, s, db, "Commenter", "commenter@example.com")

	var post models.Post
	doJSON(t, app, http.MethodPost, "/api/posts", authorToken,
		map[string]string{"text": "discuss"}, &post)
	path := itoa(post.ID)

	var comments []models.Comment
	t.Run("comments prepend newest first", func(t *testing.T) {
		status := doJSON(t, app, http.MethodPost, "/api/posts/comment/"+path, commenterToken,
			map[string]string{"text": "first!"}, &comments)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, comments, 1)

		status = doJSON(t, app, http.MethodPost, "/api/posts/comment/"+path, commenterToken,
			map[string]string{"text": "second!"}, &comments)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, comments, 2)
		assert.Equal(t, "second!", comments[0].Text)
		assert.Equal(t, commenter.Name, comments[0].Name)
	})

	t.Run("only the comment author may delete it", func(t *testing.T) {
		target := itoa(comments[0].ID)
		var resp models.ErrorResponse
		status := doJSON(t, app, http.MethodDelete,
			"/api/posts/comment/"+path+"/"+target, authorToken, nil, &resp)
		require.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "User not authorized", resp.Error)

		var remaining []models.Comment
		status = doJSON(t, app, http.MethodDelete,
			"/api/posts/comment/"+path+"/"+target, commenterToken, nil, &remaining)
		require.Equal(t, http.StatusOK, status)
		require.Len(t, remaining, 1)
		assert.Equal(t, "first!", remaining[0].Text)
	})

	t.Run("missing comment answers 404", func(t *testing.T) {
		status := doJSON(t, app, http.MethodDelete,
			"/api/posts/comment/"+path+"/9999", commenterToken, nil, nil)
		require.Equal(t, http.StatusNotFound, status)
	})
}
