package server

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "essayist", "essayist@example.com")
	article := createArticle(t, app, authorToken, "Discussed Widely")
	slug := article["slug"].(string)

	commenterToken := registerAndLogin(t, app, "commenter", "commenter@example.com")

	// Create a top-level comment.
	status, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", commenterToken, fiber.Map{
		"body": "great read",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	comment := body["comment"].(map[string]any)
	commentID := itoa(uint(comment["id"].(float64)))

	// Reply to it.
	status, body = doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments/"+commentID+"/subcomment", authorToken, fiber.Map{
		"body": "thanks!",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)
	reply := body["comment"].(map[string]any)
	assert.Equal(t, comment["id"], reply["parent_id"])

	// Listing returns the top-level comment with its reply nested.
	status, body = doJSON(t, app, http.MethodGet, "/api/articles/"+slug+"/comments", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["count"])
	comments := body["comments"].([]any)
	replies := comments[0].(map[string]any)["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "thanks!", replies[0].(map[string]any)["body"])

	// The article's comment counter includes the reply.
	status, body = doJSON(t, app, http.MethodGet, "/api/articles/"+slug, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["article"].(map[string]any)["comments_count"])
}

func TestReply_NoDeeperNesting(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "threader", "threader@example.com")
	article := createArticle(t, app, authorToken, "Deep Thread")
	slug := article["slug"].(string)

	_, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", authorToken, fiber.Map{"body": "root"})
	rootID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	status, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments/"+rootID+"/subcomment", authorToken, fiber.Map{"body": "level 1"})
	require.Equal(t, http.StatusCreated, status)
	replyID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	status, body = doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments/"+replyID+"/subcomment", authorToken, fiber.Map{"body": "level 2"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Replies cannot be nested further", body["message"])
}

func TestGetComment_WrongArticle(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "twovols", "twovols@example.com")
	first := createArticle(t, app, authorToken, "Volume One")
	second := createArticle(t, app, authorToken, "Volume Two")
	firstSlug := first["slug"].(string)
	secondSlug := second["slug"].(string)

	_, body := doJSON(t, app, http.MethodPost, "/api/articles/"+firstSlug+"/comments", authorToken, fiber.Map{"body": "belongs to volume one"})
	commentID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	// The comment is reachable only under its own article.
	status, _ := doJSON(t, app, http.MethodGet, "/api/articles/"+firstSlug+"/comments/"+commentID, "", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, app, http.MethodGet, "/api/articles/"+secondSlug+"/comments/"+commentID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Comment not found", body["message"])

	// Replying across articles is rejected the same way.
	status, _ = doJSON(t, app, http.MethodPost, "/api/articles/"+secondSlug+"/comments/"+commentID+"/subcomment", authorToken, fiber.Map{"body": "lost"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateComment_OnlyAuthor(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "host", "host@example.com")
	article := createArticle(t, app, authorToken, "Guestbook")
	slug := article["slug"].(string)

	guestToken := registerAndLogin(t, app, "guest", "guest@example.com")
	_, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", guestToken, fiber.Map{"body": "original"})
	commentID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	status, _ := doJSON(t, app, http.MethodPut, "/api/articles/"+slug+"/comments/"+commentID, authorToken, fiber.Map{"body": "edited by host"})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = doJSON(t, app, http.MethodPut, "/api/articles/"+slug+"/comments/"+commentID, guestToken, fiber.Map{"body": "edited by guest"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "edited by guest", body["comment"].(map[string]any)["body"])
}

func TestDeleteComment(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "sweeper", "sweeper@example.com")
	article := createArticle(t, app, authorToken, "Tidy Thread")
	slug := article["slug"].(string)

	_, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", authorToken, fiber.Map{"body": "fleeting"})
	commentID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	status, _ := doJSON(t, app, http.MethodDelete, "/api/articles/"+slug+"/comments/"+commentID, authorToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/articles/"+slug+"/comments/"+commentID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDeleteComment_ArticleAuthor(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "moderating", "moderating@example.com")
	article := createArticle(t, app, authorToken, "My House My Rules")
	slug := article["slug"].(string)

	guestToken := registerAndLogin(t, app, "loudguest", "loudguest@example.com")
	_, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", guestToken, fiber.Map{"body": "spam"})
	commentID := itoa(uint(body["comment"].(map[string]any)["id"].(float64)))

	// A third user may not delete someone else's comment.
	bystanderToken := registerAndLogin(t, app, "bystander", "bystander@example.com")
	status, _ := doJSON(t, app, http.MethodDelete, "/api/articles/"+slug+"/comments/"+commentID, bystanderToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The article's author may.
	status, _ = doJSON(t, app, http.MethodDelete, "/api/articles/"+slug+"/comments/"+commentID, authorToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/articles/"+slug+"/comments/"+commentID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateComment_EmptyBody(t *testing.T) {
	_, app := newTestServer(t)
	authorToken := registerAndLogin(t, app, "quiet", "quiet@example.com")
	article := createArticle(t, app, authorToken, "Silence")
	slug := article["slug"].(string)

	status, body := doJSON(t, app, http.MethodPost, "/api/articles/"+slug+"/comments", authorToken, fiber.Map{"body": "   "})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Comment body is required", body["message"])
}
