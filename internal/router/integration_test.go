package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"educonnect/internal/config"
	"educonnect/internal/db"
	"educonnect/internal/models"
	"educonnect/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&models.User{},
	&models.Resource{},
	&models.SavedResource{},
	&models.Application{},
	&models.Deal{},
	&models.SavedDeal{},
	&models.Post{},
	&models.Comment{},
	&models.PostLike{},
}

// setupTestDB swaps the package-global connection for a throwaway sqlite
// database so handler paths that touch storage can run for real.
func setupTestDB(t *testing.T, migrate ...interface{}) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	if len(migrate) == 0 {
		migrate = allModels
	}
	require.NoError(t, gdb.AutoMigrate(migrate...))

	prevDB := db.DB
	prevSecret := config.JWTSecret
	db.DB = gdb
	config.JWTSecret = "integration-test-secret"
	t.Cleanup(func() {
		db.DB = prevDB
		config.JWTSecret = prevSecret
	})
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string) (models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("student123")
	require.NoError(t, err)
	user := models.User{Email: email, Password: hash, Name: "Test Student"}
	require.NoError(t, gdb.Create(&user).Error)

	token, err := utils.GenerateToken(user.ID, user.Email, config.JWTSecret, utils.TokenTTL)
	require.NoError(t, err)
	return user, token
}

func doAuthRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRegisterLoginFreeResourcesFlow(t *testing.T) {
	gdb := setupTestDB(t)
	r := newTestRouter()

	require.NoError(t, gdb.Create(&models.Resource{Title: "Intro to Go", Type: models.ResourceTypeCourse, Category: "Informatique", IsFree: true}).Error)
	require.NoError(t, gdb.Create(&models.Resource{Title: "Cloud Cert", Type: models.ResourceTypeCertificate, Category: "Informatique", IsFree: false}).Error)

	w := doRequest(r, http.MethodPost, "/auth/register",
		`{"email":"new.student@example.com","password":"secret99","name":"New Student"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = doRequest(r, http.MethodPost, "/auth/login",
		`{"email":"new.student@example.com","password":"secret99"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = doAuthRequest(r, http.MethodGet, "/resources?isFree=true", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	resources, ok := body["resources"].([]interface{})
	require.True(t, ok)
	require.Len(t, resources, 1)
	first, ok := resources[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Intro to Go", first["title"])
	assert.Equal(t, true, first["isFree"])
}

func TestApplySecondTimeConflictsWithSingleRow(t *testing.T) {
	gdb := setupTestDB(t)
	r := newTestRouter()

	_, token := createTestUser(t, gdb, "applicant@example.com")
	resource := models.Resource{Title: "Erasmus Grant", Type: models.ResourceTypeGrant, Category: "Mobilité"}
	require.NoError(t, gdb.Create(&resource).Error)

	w := doAuthRequest(r, http.MethodPost, "/resources/1/apply", token, `{"notes":"please"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doAuthRequest(r, http.MethodPost, "/resources/1/apply", token, `{"notes":"again"}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Already applied")

	var count int64
	require.NoError(t, gdb.Model(&models.Application{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestToggleSaveTwiceRestoresFlagAndCounter(t *testing.T) {
	gdb := setupTestDB(t)
	r := newTestRouter()

	_, token := createTestUser(t, gdb, "saver@example.com")
	resource := models.Resource{Title: "Yoga Pass", Type: models.ResourceTypeSoftware, Category: "Sport", SaveCount: 3}
	require.NoError(t, gdb.Create(&resource).Error)

	w := doAuthRequest(r, http.MethodPost, "/resources/1/save", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decodeBody(t, w)["saved"])

	var reloaded models.Resource
	require.NoError(t, gdb.First(&reloaded, resource.ID).Error)
	assert.Equal(t, 4, reloaded.SaveCount)
	var relCount int64
	require.NoError(t, gdb.Model(&models.SavedResource{}).Count(&relCount).Error)
	assert.Equal(t, int64(1), relCount)

	w = doAuthRequest(r, http.MethodPost, "/resources/1/save", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, decodeBody(t, w)["saved"])

	require.NoError(t, gdb.First(&reloaded, resource.ID).Error)
	assert.Equal(t, 3, reloaded.SaveCount)
	require.NoError(t, gdb.Model(&models.SavedResource{}).Count(&relCount).Error)
	assert.Equal(t, int64(0), relCount)
}

func TestToggleLikeTwiceRestoresLikes(t *testing.T) {
	gdb := setupTestDB(t)
	r := newTestRouter()

	author, token := createTestUser(t, gdb, "poster@example.com")
	post := models.Post{UserID: author.ID, Content: "Anyone else at the library?", Category: "Campus", Likes: 2}
	require.NoError(t, gdb.Create(&post).Error)

	w := doAuthRequest(r, http.MethodPost, "/community/posts/1/like", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["isLiked"])
	assert.Equal(t, float64(3), body["likes"])

	w = doAuthRequest(r, http.MethodPost, "/community/posts/1/like", token, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeBody(t, w)
	assert.Equal(t, false, body["isLiked"])
	assert.Equal(t, float64(2), body["likes"])

	var likeCount int64
	require.NoError(t, gdb.Model(&models.PostLike{}).Count(&likeCount).Error)
	assert.Equal(t, int64(0), likeCount)
}

func TestListSurfacesSavedFlagQueryFailure(t *testing.T) {
	// saved_resources is deliberately not migrated so the flag query fails.
	gdb := setupTestDB(t, &models.User{}, &models.Resource{})
	r := newTestRouter()

	_, token := createTestUser(t, gdb, "flags@example.com")
	require.NoError(t, gdb.Create(&models.Resource{Title: "Broken Flags", Type: models.ResourceTypeCourse, Category: "Informatique"}).Error)

	w := doAuthRequest(r, http.MethodGet, "/resources", token, "")
	assert.Equal(t, http.StatusInternalServerError, w.Code, w.Body.String())
}
