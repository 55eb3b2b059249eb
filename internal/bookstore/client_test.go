package bookstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/bookswap-agent/internal/model"
	"github.com/dtroode/bookswap-agent/internal/testutil"
)

var testIdentity = model.Identity{UserID: "u1", CartID: "c1", Bearer: "tok"}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", testutil.MakeNoopLogger(), opts...)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

type callRecord struct {
	operation string
	outcome   string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []callRecord
}

func (f *fakeRecorder) ObserveRemoteCall(operation, outcome string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, callRecord{operation, outcome})
}

func TestClient_AddToCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cartops/addtocart", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
		assert.NoError(t, err)

		assert.Equal(t, map[string]any{
			"usercartid": "c1",
			"userid":     "u1",
			"book_id":    "b1",
			"quantity":   float64(2),
			"price":      float64(300),
		}, decodeBody(t, r))
		w.WriteHeader(http.StatusCreated)
	})

	err := client.AddToCart(context.Background(), testIdentity, model.Item{ID: "b1", Price: 300}, 2)
	assert.NoError(t, err)
}

func TestClient_AddToCart_Conflict(t *testing.T) {
	rec := &fakeRecorder{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"item already in cart"}`))
	}, WithRecorder(rec))

	err := client.AddToCart(context.Background(), testIdentity, model.Item{ID: "b1", Price: 300}, 3)
	require.Error(t, err)
	assert.True(t, model.IsConflict(err))

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusConflict, remoteErr.StatusCode)
	assert.Equal(t, "item already in cart", remoteErr.Message)
	assert.Equal(t, []callRecord{{"add_to_cart", "conflict"}}, rec.calls)
}

func TestClient_IncrementCart_ConflictIsFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cartops/incrementcart", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, float64(1), body["quantity"])
		assert.Equal(t, "c1", body["usercartid"])
		w.WriteHeader(http.StatusConflict)
	})

	err := client.IncrementCart(context.Background(), testIdentity, model.Item{ID: "b1", Price: 10}, 1)
	require.Error(t, err)
	assert.False(t, model.IsConflict(err))
}

func TestClient_DecrementCart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cartops/decrementcart", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, map[string]any{
			"userid":     "u1",
			"usercartid": "c1",
			"book_id":    "b1",
			"quantity":   float64(2),
		}, body)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.DecrementCart(context.Background(), testIdentity, "b1", 2))
}

func TestClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "json message", status: http.StatusBadRequest, body: `{"message":" out of stock "}`, message: "out of stock"},
		{name: "plain text", status: http.StatusInternalServerError, body: "  database is down\n", message: "database is down"},
		{name: "empty body", status: http.StatusBadGateway, body: "", message: model.DefaultRemoteMessage},
		{name: "json without message", status: http.StatusBadRequest, body: `{"error":"x"}`, message: `{"error":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.DecrementCart(context.Background(), testIdentity, "b1", 1)

			var remoteErr *model.RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, model.RemoteMutationFailed, remoteErr.Kind)
			assert.Equal(t, tt.status, remoteErr.StatusCode)
			assert.Equal(t, tt.message, remoteErr.Message)
			assert.Equal(t, "decrement_cart", remoteErr.Operation)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	client := NewClient(srv.URL, testutil.MakeNoopLogger())

	err := client.AddToCart(context.Background(), testIdentity, model.Item{ID: "b1"}, 1)

	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, model.RemoteMutationFailed, remoteErr.Kind)
	assert.Equal(t, 0, remoteErr.StatusCode)
	assert.Equal(t, model.DefaultRemoteMessage, remoteErr.Message)
	assert.NotNil(t, remoteErr.Err)
}

func TestClient_CartLines(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/cartops/getcart/cart 7", r.URL.Path)
		assert.Empty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"book_id":12,"quantity":2,"price":150},{"book_id":"b9","quantity":1,"price":20.5}]`))
	})

	id := testIdentity
	id.CartID = "cart 7"
	lines, err := client.CartLines(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []model.CartLine{
		{ItemID: "12", Quantity: 2, UnitPrice: 150},
		{ItemID: "b9", Quantity: 1, UnitPrice: 20.5},
	}, lines)
}

func TestClient_StringNumbers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cartops/getcart/c1":
			_, _ = w.Write([]byte(`[{"book_id":"b1","quantity":"3","price":"300.00"}]`))
		case "/api/cartops/getallcartofuser":
			_, _ = w.Write([]byte(`[{"cart_id":5,"quantity":"2","price":"99.50","book":{"id":1,"title":"Dune","price":"99.50"}}]`))
		case "/api/booksops/getallbookdata":
			_, _ = w.Write([]byte(`[{"id":1,"title":"Dune","price":"300.00"}]`))
		}
	})
	ctx := context.Background()

	lines, err := client.CartLines(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, []model.CartLine{{ItemID: "b1", Quantity: 3, UnitPrice: 300}}, lines)

	entries, err := client.CartEntries(ctx, testIdentity)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.Decimal(99.5), entries[0].Book.Price)
	assert.InDelta(t, 199.0, model.CartTotal(entries), 1e-9)

	books, err := client.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, model.Decimal(300), books[0].Price)
	assert.Equal(t, model.Item{ID: "1", Price: 300}, books[0].Item())
}

func TestClient_CartLines_BadJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.CartLines(context.Background(), testIdentity)
	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusOK, remoteErr.StatusCode)
}

func TestClient_CartEntries(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cartops/getallcartofuser", r.URL.Path)
		assert.Equal(t, map[string]any{"usercartid": "c1"}, decodeBody(t, r))
		_, _ = w.Write([]byte(`[{"cart_id":5,"quantity":2,"price":100,"book":{"id":1,"title":"Dune","price":100}}]`))
	})

	entries, err := client.CartEntries(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ID("5"), entries[0].LineID)
	assert.Equal(t, "Dune", entries[0].Book.Title)
	assert.Equal(t, 200.0, model.CartTotal(entries))
}

func TestClient_ToggleWishlist(t *testing.T) {
	for _, added := range []bool{true, false} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/wishcrud/addtowishlist", r.URL.Path)
			assert.Equal(t, map[string]any{"book_id": "b1", "userid": "u1"}, decodeBody(t, r))
			_ = json.NewEncoder(w).Encode(map[string]bool{"added": added})
		})

		got, err := client.ToggleWishlist(context.Background(), testIdentity, "b1")
		require.NoError(t, err)
		assert.Equal(t, added, got)
	}
}

func TestClient_ToggleWishlist_MissingFlag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.ToggleWishlist(context.Background(), testIdentity, "b1")
	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.True(t, errors.Is(err, errMissingField))
}

func TestClient_Wishlist(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/wishops/fetchwishlistuser", r.URL.Path)
		assert.Equal(t, map[string]any{"userid": "u1"}, decodeBody(t, r))
		_, _ = w.Write([]byte(`[{"id":1,"book_id":3,"userid":"u1"},{"id":2,"book_id":"4","userid":"u1","addedtolist":false}]`))
	})

	rows, err := client.Wishlist(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Listed())
	assert.False(t, rows[1].Listed())
	assert.Equal(t, model.ID("3"), rows[0].ItemID)
}

func TestClient_CreateOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/orderops/createorder", r.URL.Path)
		assert.Equal(t, map[string]any{
			"userid":          "u1",
			"deliveryaddress": "221B Baker St",
			"paymentmethod":   "cod",
		}, decodeBody(t, r))
		_, _ = w.Write([]byte(`{"order_id":77}`))
	})

	result, err := client.CreateOrder(context.Background(), testIdentity, model.OrderRequest{
		UserID:          "u1",
		DeliveryAddress: "221B Baker St",
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ID("77"), result.OrderID)
}

func TestClient_Profile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/usercrud/getuserbyid":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, map[string]any{"id": "u1"}, decodeBody(t, r))
			_, _ = w.Write([]byte(`{"id":"u1","name":"Ann","email":"ann@example.com","phoneno":"123","roletype":"user"}`))
		case "/api/usercrud/updateprofile":
			assert.Equal(t, http.MethodPut, r.Method)
			body := decodeBody(t, r)
			assert.Equal(t, "Anna", body["name"])
			assert.NotContains(t, body, "password")
			_, _ = w.Write([]byte(`{"updated_user":{"id":"u1","name":"Anna","email":"ann@example.com"}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	ctx := context.Background()

	profile, err := client.Profile(ctx, testIdentity)
	require.NoError(t, err)
	assert.Equal(t, "Ann", profile.Name)
	assert.Equal(t, "user", profile.RoleType)

	updated, err := client.UpdateProfile(ctx, testIdentity, model.ProfileUpdate{ID: "u1", Name: "Anna"})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.Name)
}

func TestClient_Catalog(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/booksops/getallbookdata":
			_, _ = w.Write([]byte(`[{"id":1,"title":"Dune","author":"Herbert","price":300,"rating":"4.5"}]`))
		case "/api/booksops/loadcategories":
			_, _ = w.Write([]byte(`[{"id":"fic","name":"Fiction","subcategory":[{"id":"sf","name":"Sci-Fi"}]}]`))
		}
	})
	ctx := context.Background()

	books, err := client.Books(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, model.ID("1"), books[0].ID)
	assert.Equal(t, model.Decimal(4.5), books[0].Rating)

	categories, err := client.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	require.Len(t, categories[0].Subcategories, 1)
	assert.Equal(t, "Sci-Fi", categories[0].Subcategories[0].Name)
}

func TestClient_UploadBook(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/booksops/uploadbooksdata", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		assert.Equal(t, "Dune", r.FormValue("title"))
		assert.Equal(t, "u1", r.FormValue("user_id"))
		assert.Equal(t, "12.5", r.FormValue("price"))
		assert.Equal(t, "2", r.FormValue("quantity"))
		assert.Equal(t, "sf", r.FormValue("subcategory_id"))

		file, header, err := r.FormFile("book_file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "dune.pdf", header.Filename)
		assert.Equal(t, "pdf-bytes", string(data))

		_, _, err = r.FormFile("book_picture")
		assert.ErrorIs(t, err, http.ErrMissingFile)

		_, _ = w.Write([]byte(`{"message":"Book uploaded"}`))
	})

	msg, err := client.UploadBook(context.Background(), testIdentity, model.DonationForm{
		Title:         "Dune",
		Price:         12.5,
		Quantity:      2,
		CategoryID:    "fic",
		SubcategoryID: "sf",
	}, model.Asset{Name: "dune.pdf", Content: strings.NewReader("pdf-bytes")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Book uploaded", msg)
}

func TestClient_RateLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, WithRateLimit(0.01, 1))

	_, err := client.Books(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Books(ctx)
	var remoteErr *model.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, model.RemoteMutationFailed, remoteErr.Kind)
}

func TestClient_RateLimitDisabled(t *testing.T) {
	c := NewClient("", testutil.MakeNoopLogger(), WithRateLimit(0, 5))
	assert.Nil(t, c.limiter)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
