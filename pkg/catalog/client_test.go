package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestLoginDecodesEnvelope(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"userId":"u-1","message":"OTP sent to your phone number"}}`))
	})

	res, err := c.Login(context.Background(), "+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "u-1", res.UserID)
	assert.Equal(t, "OTP sent to your phone number", res.Message)
}

func TestBearerTokenAttached(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"authors":[]}}`))
	})
	c.SetTokenFunc(func() string { return "tok-123" })

	authors, err := c.ListAuthors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, authors)
}

func TestErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"top level message", http.StatusBadRequest, `{"success":false,"message":"Phone number not registered"}`, "Phone number not registered"},
		{"nested message", http.StatusBadRequest, `{"success":false,"data":{"message":"Invalid OTP code"}}`, "Invalid OTP code"},
		{"success false with 200", http.StatusOK, `{"success":false,"message":"OTP expired"}`, "OTP expired"},
		{"unparsable body", http.StatusBadGateway, `<html>nope</html>`, "Failed to send OTP"},
		{"empty body", http.StatusInternalServerError, ``, "Failed to send OTP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Login(context.Background(), "+919876543210")
			require.Error(t, err)
			apiErr := &Error{}
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.expected, apiErr.Message)
		})
	}
}

func TestCreateAuthorMultipart(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "Jane Austen", r.FormValue("name"))
		assert.Equal(t, "English novelist.", r.FormValue("bio"))

		file, header, err := r.FormFile("profileImage")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "profileImage.png", header.Filename)

		_, _ = w.Write([]byte(`{"success":true,"data":{"author":{"_id":"a-1","name":"Jane Austen","bio":"English novelist."}}}`))
	})

	// 1x1 transparent PNG header bytes are enough for sniffing
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	author, err := c.CreateAuthor(context.Background(), AuthorUpload{
		Name:         "Jane Austen",
		Bio:          "English novelist.",
		ProfileImage: models.PendingImage(png, "image/png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a-1", author.ID)
}

func TestUpdateAuthorDecodesDirectData(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/authors/a-1", r.URL.Path)
		// update returns the author directly under data, not wrapped
		_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"a-1","name":"Jane Austen","bio":"Updated."}}`))
	})

	author, err := c.UpdateAuthor(context.Background(), "a-1", AuthorUpload{Name: "Jane Austen", Bio: "Updated."})
	require.NoError(t, err)
	assert.Equal(t, "Updated.", author.Bio)
}

func TestCreateBookMultipartChapters(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(10<<20))
		assert.Equal(t, "Pride and Prejudice", r.FormValue("title"))
		assert.Equal(t, "a-1", r.FormValue("author"))
		assert.Equal(t, "draft", r.FormValue("contentStatus"))
		assert.Equal(t, "c-1", r.FormValue("categories[0]"))
		assert.Equal(t, "c-2", r.FormValue("categories[1]"))
		assert.Equal(t, "Chapter One", r.FormValue("chapters[0][title]"))
		assert.Equal(t, "1", r.FormValue("chapters[0][order]"))
		assert.Equal(t, "Chapter Two", r.FormValue("chapters[1][title]"))
		assert.Equal(t, "2", r.FormValue("chapters[1][order]"))

		// no cover part when the image is a remote URL
		_, _, err := r.FormFile("coverImage")
		assert.Error(t, err)

		_, _ = w.Write([]byte(`{"success":true,"data":{"book":{"_id":"b-1","title":"Pride and Prejudice"}}}`))
	})

	book, err := c.CreateBook(context.Background(), BookUpload{
		Title:         "Pride and Prejudice",
		Description:   "A classic.",
		AuthorID:      "a-1",
		CategoryIDs:   []string{"c-1", "c-2"},
		ContentStatus: models.ContentStatusDraft,
		Chapters: []models.Chapter{
			{Title: "Chapter One", Content: "It is a truth...", Order: 1},
			{Title: "Chapter Two", Content: "Mr. Bennet...", Order: 2},
		},
		CoverImage: models.RemoteImage("https://img.example/cover.jpg"),
	})
	require.NoError(t, err)
	assert.Equal(t, "b-1", book.ID)
}

func TestDeleteBook(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/books/b-9", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
	})

	require.NoError(t, c.DeleteBook(context.Background(), "b-9"))
}

func TestNetworkFailureFallsBackToDefault(t *testing.T) {
	t.Parallel()
	c := New("http://127.0.0.1:1", time.Second)

	_, err := c.ListCategories(context.Background())
	apiErr := &Error{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to fetch categories", apiErr.Message)

	// the transport error stays diagnosable behind the display message
	require.NotNil(t, apiErr.Cause)
	assert.Contains(t, apiErr.Error(), "Failed to fetch categories: ")
	assert.Contains(t, apiErr.Error(), "dial tcp")
}
