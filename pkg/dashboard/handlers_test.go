package dashboard

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/msubham193/buckinn-console/pkg/catalog"
	"github.com/msubham193/buckinn-console/pkg/errcodes"
	"github.com/msubham193/buckinn-console/pkg/models"
	"github.com/msubham193/buckinn-console/pkg/store"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeCatalog(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, body any) {
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		require.NoError(t, json.NewEncoder(w).Encode(body))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(w, map[string]any{
			"success": true,
			"data": map[string]any{
				"books": []map[string]any{
					{
						"_id": "book-1", "title": "Saltwater Years", "contentStatus": "published",
						"chapters": []map[string]any{
							{"title": "Arrival", "content": "...", "order": 1},
							{"title": "Departure", "content": "...", "order": 2},
						},
					},
					{"_id": "book-2", "title": "Ledger of Dust", "contentStatus": "draft"},
					{"_id": "book-3", "title": "Quiet Rooms", "contentStatus": "draft"},
				},
			},
		})
	})
	mux.HandleFunc("GET /authors", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(w, map[string]any{
			"success": true,
			"data": map[string]any{
				"authors": []map[string]any{
					{"_id": "auth-1", "name": "Ursula Vane"},
				},
			},
		})
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		writeJSON(w, map[string]any{
			"success": true,
			"data": map[string]any{
				"categories": []map[string]any{
					{"_id": "cat-1", "name": "Memoir"},
					{"_id": "cat-2", "name": "History"},
				},
			},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandlerOverview_AggregatesTotals(t *testing.T) {
	t.Parallel()

	requests := &atomic.Int64{}
	srv := newFakeCatalog(t, requests)

	h := &handler{
		client:        catalog.New(srv.URL, 5*time.Second),
		ebookStore:    store.New[models.Ebook](),
		authorStore:   store.New[models.Author](),
		categoryStore: store.New[models.Category](),
	}

	e := echo.New()

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rr := httptest.NewRecorder()
		require.NoError(t, h.overview(e.NewContext(req, rr)))
		assert.Equal(t, http.StatusOK, rr.Code)

		res := struct {
			TotalBooks      int            `json:"totalBooks"`
			TotalAuthors    int            `json:"totalAuthors"`
			TotalCategories int            `json:"totalCategories"`
			TotalChapters   int            `json:"totalChapters"`
			BooksByStatus   map[string]int `json:"booksByStatus"`
		}{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, 3, res.TotalBooks)
		assert.Equal(t, 1, res.TotalAuthors)
		assert.Equal(t, 2, res.TotalCategories)
		assert.Equal(t, 2, res.TotalChapters)
		assert.Equal(t, map[string]int{"draft": 2, "published": 1, "archived": 0}, res.BooksByStatus)
	}

	// Three fetches on the first pass, none on the second.
	assert.Equal(t, int64(3), requests.Load())
}

func TestHandlerOverview_UpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	h := &handler{
		client:        catalog.New(srv.URL, 5*time.Second),
		ebookStore:    store.New[models.Ebook](),
		authorStore:   store.New[models.Author](),
		categoryStore: store.New[models.Category](),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rr := httptest.NewRecorder()

	err := h.overview(e.NewContext(req, rr))
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, "upstream_error", codeErr.Code)
}
