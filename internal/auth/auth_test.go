package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BourseDashboard/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type mockUserService struct {
	users map[string]*user.User
}

func (m *mockUserService) Register(email, login, password string) (*user.User, error) {
	panic("not used")
}

func (m *mockUserService) GetUserByID(userID string) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetUserByLoginOrEmail(loginOrEmail string) (*user.User, error) {
	if u, ok := m.users[loginOrEmail]; ok {
		return u, nil
	}
	return nil, user.ErrUserNotFound
}

func newTestUsers(t *testing.T) *mockUserService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	return &mockUserService{users: map[string]*user.User{
		"kwame":    {ID: "user-1", Login: "kwame", PasswordHash: string(hash), IsActive: true},
		"disabled": {ID: "user-2", Login: "disabled", PasswordHash: string(hash)},
	}}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	respondJSON(w, status, map[string]interface{}{"status": "error", "message": message, "code": status})
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager(testSecret, time.Minute)

	token, err := m.GenerateAccessJWT("user-1")
	require.NoError(t, err)

	userID, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestJWTManager_Rejections(t *testing.T) {
	m := NewJWTManager(testSecret, 30*time.Minute)

	expired := &JWTManager{secret: testSecret, ttl: 30 * time.Minute, now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	token, err := expired.GenerateAccessJWT("user-1")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredJWTToken)

	foreign, err := NewJWTManager("other-secret", time.Minute).GenerateAccessJWT("user-1")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &AccessTokenCustomClaims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestLogin(t *testing.T) {
	jwtManager := NewJWTManager(testSecret, time.Minute)
	svc := NewAuthService(newTestUsers(t), jwtManager, zerolog.Nop())

	u, token, err := svc.Login("kwame", "password1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	userID, err := jwtManager.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, _, err = svc.Login("kwame", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody", "password1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("disabled", "password1")
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestJWTAccessTokenMiddleware(t *testing.T) {
	jwtManager := NewJWTManager(testSecret, time.Minute)
	svc := NewAuthService(newTestUsers(t), jwtManager, zerolog.Nop())

	var seenUserID string
	protected := svc.JWTAccessTokenMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = user.IDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	valid, err := jwtManager.GenerateAccessJWT("user-1")
	require.NoError(t, err)
	ghost, err := jwtManager.GenerateAccessJWT("ghost")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid token", header: "Bearer " + valid, status: http.StatusNoContent},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "no bearer prefix", header: valid, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", status: http.StatusUnauthorized},
		{name: "deleted user", header: "Bearer " + ghost, status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/protected/portfolios", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusNoContent {
				assert.Equal(t, "user-1", seenUserID)
			} else {
				assert.Empty(t, seenUserID)
			}
		})
	}
}

func TestHandleLogin(t *testing.T) {
	svc := NewAuthService(newTestUsers(t), NewJWTManager(testSecret, time.Minute), zerolog.Nop())
	h := NewHandler(svc, respondJSON, respondError)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "success", body: `{"email_or_login":"kwame","password":"password1"}`, status: http.StatusOK},
		{name: "bad password", body: `{"email_or_login":"kwame","password":"nope"}`, status: http.StatusUnauthorized},
		{name: "missing field", body: `{"email_or_login":"kwame"}`, status: http.StatusBadRequest},
		{name: "malformed", body: `{`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.HandleLogin(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
