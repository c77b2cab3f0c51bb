package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cafe_directory/internal/domain"
	"cafe_directory/internal/maps"
	"cafe_directory/internal/router"
	"cafe_directory/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

// testEnv is a full wired application against in-memory backends
type testEnv struct {
	db     *gorm.DB
	rdb    *redis.Client
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.City{}, &domain.Cafe{}, &domain.User{}, &domain.Like{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	r := gin.New()
	router.Setup(r, router.Options{
		DB:        db,
		Redis:     rdb,
		Sessions:  session.NewStore(rdb, time.Hour),
		Maps:      maps.NewFetcher("", t.TempDir()),
		JWTSecret: testJWTSecret,
	})
	return &testEnv{db: db, rdb: rdb, router: r}
}

// request performs one HTTP request against the wired router
func (env *testEnv) request(t *testing.T, method, path, body string, cookie *http.Cookie, csrf string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	if csrf != "" {
		req.Header.Set(session.CSRFHeader, csrf)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// requestWithBearer performs a request authenticated by an API token
func (env *testEnv) requestWithBearer(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// account is a logged-in test identity
type account struct {
	userID uint
	cookie *http.Cookie
	csrf   string
}

// signup registers a user through the HTTP surface and captures the
// session cookie and CSRF token
func (env *testEnv) signup(t *testing.T, username, email, password string) account {
	t.Helper()
	body := `{"username":"` + username + `","email":"` + email + `","first_name":"Test","last_name":"User","password":"` + password + `"}`
	rec := env.request(t, http.MethodPost, "/signup", body, nil, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.CSRFToken)

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			cookie = ck
		}
	}
	require.NotNil(t, cookie, "signup must set the session cookie")
	return account{userID: resp.User.ID, cookie: cookie, csrf: resp.CSRFToken}
}

// makeAdmin flips the admin flag directly, the only way admins come to be
func (env *testEnv) makeAdmin(t *testing.T, userID uint) {
	t.Helper()
	require.NoError(t, env.db.Model(&domain.User{}).Where("id = ?", userID).Update("admin", true).Error)
}

// seedCafe inserts the sf city (once) and a cafe in it
func (env *testEnv) seedCafe(t *testing.T, name string) *domain.Cafe {
	t.Helper()
	env.db.Where(domain.City{Code: "sf"}).FirstOrCreate(&domain.City{Code: "sf", Name: "San Francisco", State: "CA"})
	cafe := domain.Cafe{
		Name:        name,
		Description: "Test description",
		URL:         "http://testcafe.com/",
		Address:     "500 Sansome St",
		CityCode:    "sf",
		ImageURL:    domain.DefaultImageURL,
	}
	require.NoError(t, env.db.Create(&cafe).Error)
	return &cafe
}

func (env *testEnv) countLikes(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&domain.Like{}).Count(&count).Error)
	return count
}

func (env *testEnv) countCafes(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, env.db.Model(&domain.Cafe{}).Count(&count).Error)
	return count
}
