package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poi-platform/internal/auth"
	"poi-platform/internal/config"

	"github.com/gin-gonic/gin"
)

func testRouter(t *testing.T) (*gin.Engine, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := auth.NewManager(config.AuthConfig{
		JWTSecret: "handler-test-secret",
		JWTIssuer: "poi-platform-test",
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	svc := NewService(NewMemoryRepo())
	h := Handlers{Svc: svc, Kind: KindPlace}

	r := gin.New()
	g := r.Group("/api/places", auth.StripToken(), auth.VerifyToken(m))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.PUT("/:id/rating", h.SetRating)
	g.POST("/:id/comments", h.AddComment)
	g.PUT("/:id/comments/:commentId", h.EditComment)
	g.DELETE("/:id/comments/:commentId", h.DeleteComment)
	return r, m
}

func bearerFor(t *testing.T, m *auth.Manager, userID string) string {
	t.Helper()
	tok, err := m.Issue(time.Now(), userID, "user")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + tok
}

func doJSON(t *testing.T, r *gin.Engine, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func messageOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out.Message
}

func createListing(t *testing.T, r *gin.Engine, bearer string) Listing {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/places", bearer, gin.H{
		"name":     "Pearl Roundabout",
		"location": "Manama",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var l Listing
	if err := json.Unmarshal(w.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	return l
}

func TestRoutesRequireToken(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/places", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if got := messageOf(t, w); got != "No token provided" {
		t.Fatalf("message = %q", got)
	}
}

func TestCreateValidation(t *testing.T) {
	r, m := testRouter(t)
	bearer := bearerFor(t, m, "user-a")

	w := doJSON(t, r, http.MethodPost, "/api/places", bearer, gin.H{"name": "No Location"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := messageOf(t, w); got != "Name and location are required" {
		t.Fatalf("message = %q", got)
	}
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	r, m := testRouter(t)
	ownerBearer := bearerFor(t, m, "user-a")
	otherBearer := bearerFor(t, m, "user-b")

	l := createListing(t, r, ownerBearer)

	// A different authenticated user may not touch it.
	w := doJSON(t, r, http.MethodPut, "/api/places/"+l.ID, otherBearer, gin.H{"name": "Hijacked"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", w.Code, w.Body.String())
	}
	if got := messageOf(t, w); got != "Not authorized" {
		t.Fatalf("message = %q", got)
	}

	// The owner may.
	w = doJSON(t, r, http.MethodPut, "/api/places/"+l.ID, ownerBearer, gin.H{"name": "Renamed"})
	if w.Code != http.StatusOK {
		t.Fatalf("owner update status = %d; body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/places/"+l.ID, otherBearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var got Listing
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	r, m := testRouter(t)
	ownerBearer := bearerFor(t, m, "user-a")
	otherBearer := bearerFor(t, m, "user-b")

	l := createListing(t, r, ownerBearer)

	w := doJSON(t, r, http.MethodDelete, "/api/places/"+l.ID, otherBearer, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/places/"+l.ID, ownerBearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete status = %d", w.Code)
	}
	if got := messageOf(t, w); got != "Place deleted successfully" {
		t.Fatalf("message = %q", got)
	}
}

func TestGetMissingListing(t *testing.T) {
	r, m := testRouter(t)
	bearer := bearerFor(t, m, "user-a")

	w := doJSON(t, r, http.MethodGet, "/api/places/does-not-exist", bearer, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if got := messageOf(t, w); got != "Place not found" {
		t.Fatalf("message = %q", got)
	}
}

func TestRatingOpenToAnyAuthenticatedUser(t *testing.T) {
	r, m := testRouter(t)
	ownerBearer := bearerFor(t, m, "user-a")
	otherBearer := bearerFor(t, m, "user-b")

	l := createListing(t, r, ownerBearer)

	w := doJSON(t, r, http.MethodPut, "/api/places/"+l.ID+"/rating", otherBearer, gin.H{"rating": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", w.Code, w.Body.String())
	}
	if got := messageOf(t, w); got != "Rating updated" {
		t.Fatalf("message = %q", got)
	}

	w = doJSON(t, r, http.MethodPut, "/api/places/"+l.ID+"/rating", otherBearer, gin.H{"rating": 9})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if got := messageOf(t, w); got != "Rating must be between 1 and 5" {
		t.Fatalf("message = %q", got)
	}
}

func TestCommentRoutes(t *testing.T) {
	r, m := testRouter(t)
	ownerBearer := bearerFor(t, m, "user-a")
	commenterBearer := bearerFor(t, m, "user-b")

	l := createListing(t, r, ownerBearer)

	w := doJSON(t, r, http.MethodPost, "/api/places/"+l.ID+"/comments", commenterBearer, gin.H{"text": "worth a visit"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add comment status = %d; body %s", w.Code, w.Body.String())
	}
	var created struct {
		Comment Comment `json:"comment"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := "/api/places/" + l.ID + "/comments/" + created.Comment.ID

	// Listing owner is not the comment author.
	w = doJSON(t, r, http.MethodPut, path, ownerBearer, gin.H{"text": "edited by owner"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-author edit status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPut, path, commenterBearer, gin.H{"text": "still worth a visit"})
	if w.Code != http.StatusOK {
		t.Fatalf("author edit status = %d; body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, path, commenterBearer, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("author delete status = %d", w.Code)
	}
	if got := messageOf(t, w); got != "Comment deleted" {
		t.Fatalf("message = %q", got)
	}

	w = doJSON(t, r, http.MethodDelete, path, commenterBearer, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("double delete status = %d", w.Code)
	}
}
