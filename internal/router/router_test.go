package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTestRouter builds the full route table without a database. Only paths
// that must respond before any storage access are exercised here.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPaginationValidatedBeforeStorage(t *testing.T) {
	r := newTestRouter()

	cases := []string{
		"/resources?page=0",
		"/resources?page=abc",
		"/resources?limit=0",
		"/resources?limit=101",
		"/deals?page=-1",
		"/community/posts?limit=9999",
	}
	for _, path := range cases {
		w := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "Validation error", path)
	}
}

func TestListRejectsUnknownResourceType(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, http.MethodGet, "/resources?type=banana", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRejectsBadBooleans(t *testing.T) {
	r := newTestRouter()
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/resources?isFree=banana", "").Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodGet, "/deals?verified=banana", "").Code)
}

func TestDealsMaxDistanceRequiresLocation(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, http.MethodGet, "/deals?maxDistance=5", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "maxDistance requires lat and lng")
}

func TestDealsRejectBadCoordinates(t *testing.T) {
	r := newTestRouter()

	cases := []string{
		"/deals?lat=abc&lng=2.35",
		"/deals?lat=48.85&lng=abc",
		"/deals?lat=48.85&lng=2.35&maxDistance=abc",
		"/deals/1?lat=abc",
	}
	for _, path := range cases {
		w := doRequest(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "must be a number", path)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := newTestRouter()

	cases := []string{
		`{"email":"not-an-email","password":"secret1","name":"A"}`,
		`{"email":"a@x.com","password":"short","name":"Alice"}`,
		`{"email":"a@x.com","password":"secret1"}`,
		`{"email":"a@x.com","password":"secret1","name":"Alice","yearOfStudy":99}`,
	}
	for _, body := range cases {
		w := doRequest(r, http.MethodPost, "/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestLoginValidation(t *testing.T) {
	r := newTestRouter()
	w := doRequest(r, http.MethodPost, "/auth/login", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	r := newTestRouter()

	cases := []struct{ method, path string }{
		{http.MethodPost, "/resources/1/save"},
		{http.MethodPost, "/resources/1/apply"},
		{http.MethodGet, "/resources/saved"},
		{http.MethodGet, "/resources/applications"},
		{http.MethodPost, "/deals/1/save"},
		{http.MethodGet, "/deals/saved"},
		{http.MethodPost, "/community/posts"},
		{http.MethodPost, "/community/posts/1/like"},
		{http.MethodPost, "/community/posts/1/comments"},
	}
	for _, tc := range cases {
		w := doRequest(r, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.path)
	}
}
