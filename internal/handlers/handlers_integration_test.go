package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"reviewhub/internal/app"
	"reviewhub/internal/config"
	"reviewhub/internal/database"
	"reviewhub/internal/mailer"
	"reviewhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// mailbox records sent messages so tests can read confirmation codes.
type mailbox struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *mailbox) Send(_ context.Context, msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

var codePattern = regexp.MustCompile(`confirmation code is ([0-9a-f]{32})`)

func (m *mailbox) lastCode(t *testing.T, to string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.sent) - 1; i >= 0; i-- {
		if m.sent[i].To == to {
			match := codePattern.FindStringSubmatch(m.sent[i].Body)
			require.Len(t, match, 2)
			return match[1]
		}
	}
	t.Fatalf("no mail sent to %s", to)
	return ""
}

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	mail *mailbox
}

// setupApp builds the full application on a private in-memory SQLite database.
func setupApp(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := database.Open(database.DriverSQLite, "file:"+uuid.NewString()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)

	box := &mailbox{}
	cfg := &config.Config{
		JWTSecret:           "test_jwt_secret",
		AccessTokenTTL:      time.Hour,
		ConfirmationCodeTTL: time.Hour,
		PageSize:            10,
		MaxPageSize:         50,
	}
	return &testEnv{
		app:  app.New(app.Options{Config: cfg, DB: db, Mail: box, Logger: logger}),
		db:   db,
		mail: box,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// login signs username up and exchanges the mailed code for a token.
func (e *testEnv) login(t *testing.T, username string) string {
	t.Helper()
	email := username + "@example.com"
	resp, _ := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": username, "email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username":          username,
		"confirmation_code": e.mail.lastCode(t, email),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return body["token"].(string)
}

// loginAs provisions a user with role first, then logs in through signup reuse.
func (e *testEnv) loginAs(t *testing.T, username string, role models.Role) string {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: role}
	require.NoError(t, e.db.Create(user).Error)
	return e.login(t, username)
}

func errorsOf(body map[string]interface{}) map[string]interface{} {
	errs, _ := body["errors"].(map[string]interface{})
	return errs
}

func TestSignupAndToken(t *testing.T) {
	e := setupApp(t)

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "testuser", body["username"])
	assert.Equal(t, "test@example.com", body["email"])

	code := e.mail.lastCode(t, "test@example.com")

	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "testuser", "confirmation_code": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "confirmation_code")

	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "testuser", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	assert.NotEmpty(t, token)

	// The code is single-use.
	resp, _ = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "testuser", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "testuser", body["username"])
	assert.Equal(t, "user", body["role"])

	resp, _ = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "nobody", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSignupValidation(t *testing.T) {
	e := setupApp(t)

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "Me", "email": "me@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Contains(t, errorsOf(body), "username")

	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "ok"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "email")

	e.login(t, "alice")
	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "bob", "email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "email")
}

func TestStaleCodeAfterEmailChange(t *testing.T) {
	e := setupApp(t)
	token := e.login(t, "carol")

	// A second code is outstanding when the email changes.
	resp, _ := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "carol", "email": "carol@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	code := e.mail.lastCode(t, "carol@example.com")

	resp, _ = e.do(t, http.MethodPatch, "/api/v1/users/me", token, map[string]string{"email": "carol2@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "carol", "confirmation_code": code,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "confirmation_code")
}

func TestActiveUserRequestsNewToken(t *testing.T) {
	e := setupApp(t)
	e.login(t, "erin")
	firstCode := e.mail.lastCode(t, "erin@example.com")

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "erin", "email": "erin@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "erin", body["username"])
	code := e.mail.lastCode(t, "erin@example.com")
	assert.NotEqual(t, firstCode, code)

	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "erin", "confirmation_code": code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	resp, body = e.do(t, http.MethodGet, "/api/v1/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "erin", body["username"])

	// The same pair with another email still collides on username.
	resp, body = e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "erin", "email": "other@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "username")
}

func TestSignupVoidsEarlierCode(t *testing.T) {
	e := setupApp(t)

	resp, _ := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "frank", "email": "frank@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	oldCode := e.mail.lastCode(t, "frank@example.com")

	resp, _ = e.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{"username": "frank", "email": "frank@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "frank", "confirmation_code": oldCode,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "confirmation_code")

	resp, _ = e.do(t, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"username": "frank", "confirmation_code": e.mail.lastCode(t, "frank@example.com"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUsersMeRoleIsReadOnly(t *testing.T) {
	e := setupApp(t)
	token := e.login(t, "dave")

	resp, body := e.do(t, http.MethodPatch, "/api/v1/users/me", token, map[string]string{"role": "admin", "bio": "hi"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "hi", body["bio"])

	resp, _ = e.do(t, http.MethodGet, "/api/v1/users", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/v1/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminUserManagement(t *testing.T) {
	e := setupApp(t)
	admin := e.loginAs(t, "root", models.RoleAdmin)

	resp, body := e.do(t, http.MethodPost, "/api/v1/users", admin, map[string]string{
		"username": "eve", "email": "eve@example.com", "role": "moderator",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "moderator", body["role"])

	resp, body = e.do(t, http.MethodPost, "/api/v1/users", admin, map[string]string{
		"username": "eve", "email": "other@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "username")

	resp, body = e.do(t, http.MethodPatch, "/api/v1/users/eve", admin, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", body["role"])

	resp, body = e.do(t, http.MethodGet, "/api/v1/users?search=EV", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, _ = e.do(t, http.MethodDelete, "/api/v1/users/eve", admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/v1/users/eve", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogEndpoints(t *testing.T) {
	e := setupApp(t)
	admin := e.loginAs(t, "root", models.RoleAdmin)
	user := e.login(t, "frank")

	resp, _ := e.do(t, http.MethodPost, "/api/v1/categories", user, map[string]string{"name": "Film", "slug": "film"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodPost, "/api/v1/categories", "", map[string]string{"name": "Film", "slug": "film"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Film", "slug": "film"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"name": "Film", "slug": "film"}, body)

	resp, body = e.do(t, http.MethodPost, "/api/v1/categories", admin, map[string]string{"name": "Movies", "slug": "film"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "slug")

	resp, body = e.do(t, http.MethodPost, "/api/v1/genres", admin, map[string]string{"name": "Bad", "slug": "no spaces"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "slug")

	resp, body = e.do(t, http.MethodGet, "/api/v1/categories?search=fil", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	assert.Nil(t, body["next"])

	resp, _ = e.do(t, http.MethodDelete, "/api/v1/categories/film", admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/v1/categories/film", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func seedCatalog(t *testing.T, e *testEnv, admin string) {
	t.Helper()
	for _, c := range []map[string]string{{"name": "Film", "slug": "film"}, {"name": "Book", "slug": "book"}} {
		resp, _ := e.do(t, http.MethodPost, "/api/v1/categories", admin, c)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	for _, g := range []map[string]string{{"name": "Drama", "slug": "drama"}, {"name": "Comedy", "slug": "comedy"}} {
		resp, _ := e.do(t, http.MethodPost, "/api/v1/genres", admin, g)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
}

func createTitle(t *testing.T, e *testEnv, admin string, body map[string]interface{}) uint {
	t.Helper()
	resp, created := e.do(t, http.MethodPost, "/api/v1/titles", admin, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, created)
	return uint(created["id"].(float64))
}

func TestTitleEndpoints(t *testing.T) {
	e := setupApp(t)
	admin := e.loginAs(t, "root", models.RoleAdmin)
	seedCatalog(t, e, admin)

	resp, body := e.do(t, http.MethodPost, "/api/v1/titles", admin, map[string]interface{}{
		"name": "Old", "year": 1699, "genre": []string{"drama"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "year")

	resp, body = e.do(t, http.MethodPost, "/api/v1/titles", admin, map[string]interface{}{
		"name": "Unknown", "year": 2000, "genre": []string{"horror"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "genre")

	resp, body = e.do(t, http.MethodPost, "/api/v1/titles", admin, map[string]interface{}{
		"name": "Unknown", "year": 2000, "genre": []string{"drama"}, "category": "music",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "category")

	matrix := createTitle(t, e, admin, map[string]interface{}{
		"name": "The Matrix", "year": 1999, "genre": []string{"drama", "comedy"}, "category": "film",
	})
	createTitle(t, e, admin, map[string]interface{}{"name": "Fight Club", "year": 1999, "genre": []string{"comedy"}, "category": "film"})
	createTitle(t, e, admin, map[string]interface{}{"name": "Dune", "year": 1965, "genre": []string{"drama"}, "category": "book"})

	resp, body = e.do(t, http.MethodGet, "/api/v1/titles?year=1999&genre=drama", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])
	results := body["results"].([]interface{})
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "The Matrix", first["name"])
	assert.Nil(t, first["rating"])
	assert.Len(t, first["genre"], 2)
	assert.Equal(t, "film", first["category"].(map[string]interface{})["slug"])

	resp, body = e.do(t, http.MethodGet, "/api/v1/titles?year=2024&genre=drama", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["count"])
	assert.Empty(t, body["results"])

	resp, body = e.do(t, http.MethodGet, "/api/v1/titles?name=MAT&category=film", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, body = e.do(t, http.MethodPatch, "/api/v1/titles/"+itoa(matrix), admin, map[string]interface{}{"genre": []string{"comedy"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["genre"], 1)
	assert.Equal(t, "The Matrix", body["name"])

	user := e.login(t, "gina")
	resp, _ = e.do(t, http.MethodDelete, "/api/v1/titles/"+itoa(matrix), user, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, "/api/v1/titles/999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = e.do(t, http.MethodDelete, "/api/v1/titles/"+itoa(matrix), admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestReviewAndCommentEndpoints(t *testing.T) {
	e := setupApp(t)
	admin := e.loginAs(t, "root", models.RoleAdmin)
	moderator := e.loginAs(t, "mod", models.RoleModerator)
	seedCatalog(t, e, admin)
	titleID := createTitle(t, e, admin, map[string]interface{}{"name": "Dune", "year": 1965, "genre": []string{"drama"}})
	reviews := "/api/v1/titles/" + itoa(titleID) + "/reviews"

	alice := e.login(t, "alice")
	bob := e.login(t, "bob")

	resp, _ := e.do(t, http.MethodPost, reviews, "", map[string]interface{}{"text": "anon", "score": 5})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := e.do(t, http.MethodPost, reviews, alice, map[string]interface{}{"text": "too high", "score": 11})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "score")

	resp, body = e.do(t, http.MethodPost, reviews, alice, map[string]interface{}{"text": "great", "score": 7})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "alice", body["author"])
	assert.Equal(t, "Dune", body["title"])
	reviewID := uint(body["id"].(float64))
	review := reviews + "/" + itoa(reviewID)

	resp, body = e.do(t, http.MethodPost, reviews, alice, map[string]interface{}{"text": "again", "score": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "non_field_errors")

	resp, _ = e.do(t, http.MethodPost, reviews, bob, map[string]interface{}{"text": "fine", "score": 9})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	_, body = e.do(t, http.MethodGet, "/api/v1/titles/"+itoa(titleID), "", nil)
	assert.InDelta(t, 8.0, body["rating"], 0.001)

	resp, _ = e.do(t, http.MethodPatch, review, bob, map[string]interface{}{"score": 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, http.MethodPatch, review, moderator, map[string]interface{}{"score": 3})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["score"])
	assert.Equal(t, "great", body["text"])

	resp, _ = e.do(t, http.MethodGet, "/api/v1/titles/999/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	comments := review + "/comments"
	resp, body = e.do(t, http.MethodPost, comments, bob, map[string]string{"text": "disagree"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "bob", body["author"])
	assert.Equal(t, "great", body["review"])
	comment := comments + "/" + itoa(uint(body["id"].(float64)))

	resp, _ = e.do(t, http.MethodPatch, comment, alice, map[string]string{"text": "edited"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = e.do(t, http.MethodGet, comments, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["count"])

	resp, _ = e.do(t, http.MethodDelete, review, alice, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = e.do(t, http.MethodGet, comments, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPagination(t *testing.T) {
	e := setupApp(t)
	admin := e.loginAs(t, "root", models.RoleAdmin)
	for _, slug := range []string{"a", "b", "c"} {
		resp, _ := e.do(t, http.MethodPost, "/api/v1/genres", admin, map[string]string{"name": "Genre " + slug, "slug": slug})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := e.do(t, http.MethodGet, "/api/v1/genres?page_size=2", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["count"])
	assert.Len(t, body["results"], 2)
	assert.Contains(t, body["next"], "page=2")
	assert.Nil(t, body["previous"])

	resp, body = e.do(t, http.MethodGet, "/api/v1/genres?page_size=2&page=2", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["results"], 1)
	assert.Nil(t, body["next"])
	assert.NotNil(t, body["previous"])

	resp, body = e.do(t, http.MethodGet, "/api/v1/genres?page_size=2&page=7", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["count"])
	assert.Empty(t, body["results"])
	assert.Nil(t, body["next"])
	assert.Contains(t, body["previous"], "page=6")

	resp, body = e.do(t, http.MethodGet, "/api/v1/genres?page="+strconv.Itoa(math.MaxInt), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["count"])
	assert.Empty(t, body["results"])
	assert.Nil(t, body["next"])
	assert.NotContains(t, body["previous"], "page=-")

	resp, body = e.do(t, http.MethodGet, "/api/v1/genres?page=zero", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorsOf(body), "page")
}

func TestMalformedBody(t *testing.T) {
	e := setupApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInvalidToken(t *testing.T) {
	e := setupApp(t)
	resp, _ := e.do(t, http.MethodGet, "/api/v1/titles", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
