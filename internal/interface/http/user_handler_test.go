package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userapp "github.com/QuentinDoniczka/SeriousGameBack/internal/application"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/domain/entity"
	repo "github.com/QuentinDoniczka/SeriousGameBack/internal/domain/repository"
	handlers "github.com/QuentinDoniczka/SeriousGameBack/internal/interface/http"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/interface/middleware"
	"github.com/QuentinDoniczka/SeriousGameBack/internal/router/modules"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/helpers"
	"github.com/QuentinDoniczka/SeriousGameBack/pkg/validation"
)

type memRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	order   []string
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: map[string]*entity.User{}}
}

func (m *memRepo) Create(_ context.Context, u *entity.User, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u.ID = uuid.NewString()
	u.Password = hash
	cp := *u
	m.byEmail[u.Email] = &cp
	m.order = append(m.order, u.Email)
	return nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) List(_ context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]*entity.User, 0, len(m.order))
	for _, email := range m.order {
		cp := *m.byEmail[email]
		users = append(users, &cp)
	}
	return users, nil
}

func (m *memRepo) UpdateDescription(_ context.Context, email, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return repo.ErrNotFound
	}
	u.Description = description
	return nil
}

var _ repo.UserRepository = (*memRepo)(nil)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *memRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	f := newMemRepo()
	jwt := helpers.NewJWTManager("test-secret", "seriousgame", "seriousgame-clients", 30*time.Minute)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := userapp.NewService(f, jwt, logger)
	h := handlers.NewUserHandler(svc, logger)

	r := gin.New()
	r.Use(middleware.RequestID())
	modules.NewUserModule(h, jwt).Register(r.Group("/api"))
	return r, f
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRegisterLoginUpdateListFlow(t *testing.T) {
	r, _ := newTestRouter(t)

	// register
	w, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, env.Success)

	// login
	w, env = doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token      string    `json:"token"`
		Expiration time.Time `json:"expiration"`
		Email      string    `json:"email"`
		Username   string    `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "bob@x.com", login.Email)
	assert.Equal(t, "bob", login.Username)
	assert.NotEmpty(t, login.Token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), login.Expiration, 5*time.Second)

	// update own description using the token
	w, _ = doJSON(t, r, http.MethodPut, "/api/user/description", login.Token, gin.H{
		"description": "hello",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// listing contains the updated profile
	w, env = doJSON(t, r, http.MethodGet, "/api/user/users", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var users []struct {
		Email       string `json:"email"`
		Username    string `json:"username"`
		Description string `json:"description"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "bob@x.com", users[0].Email)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, "hello", users[0].Description)
}

func TestLogin_InvalidCredentialsAreGeneric(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.True(t, env.Success)

	wUnknown, envUnknown := doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "ghost@x.com",
		"password": "Test123!Test123!",
	})
	wWrong, envWrong := doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "bob@x.com",
		"password": "Wrong123!Wrong123!",
	})

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	// identical status and message: no hint of which factor failed
	assert.Equal(t, envUnknown.Message, envWrong.Message)
}

func TestRegister_DuplicateEmailHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.True(t, env.Success)

	w, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "other",
		"email":    "bob@x.com",
		"password": "Other123!Other123!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	var errs []string
	require.NoError(t, json.Unmarshal(env.Error, &errs))
	assert.Contains(t, errs, "Email already exists")
}

func TestRegister_WeakPasswordHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	var errs []string
	require.NoError(t, json.Unmarshal(env.Error, &errs))
	assert.NotEmpty(t, errs)
}

func TestProtectedRoutes_RequireBearerToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/user/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/user/users", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPut, "/api/user/description", "", gin.H{"description": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateDescription_CallerIdentityFromToken(t *testing.T) {
	r, f := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.True(t, env.Success)
	_, env = doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "eve",
		"email":    "eve@x.com",
		"password": "Evil123!Evil123!",
	})
	require.True(t, env.Success)

	_, env = doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "eve@x.com",
		"password": "Evil123!Evil123!",
	})
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	// eve's token can only ever touch eve's record
	w, _ := doJSON(t, r, http.MethodPut, "/api/user/description", login.Token, gin.H{
		"description": "i am eve",
	})
	require.Equal(t, http.StatusOK, w.Code)

	bob, err := f.GetByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, "", bob.Description)
	eve, err := f.GetByEmail(context.Background(), "eve@x.com")
	require.NoError(t, err)
	assert.Equal(t, "i am eve", eve.Description)
}

func TestUpdateDescription_VanishedCaller(t *testing.T) {
	r, f := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "bob",
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	require.True(t, env.Success)
	_, env = doJSON(t, r, http.MethodPost, "/api/user/login", "", gin.H{
		"email":    "bob@x.com",
		"password": "Test123!Test123!",
	})
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	// remove the account out from under the still-valid token
	f.mu.Lock()
	delete(f.byEmail, "bob@x.com")
	f.order = nil
	f.mu.Unlock()

	w, _ := doJSON(t, r, http.MethodPut, "/api/user/description", login.Token, gin.H{
		"description": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
