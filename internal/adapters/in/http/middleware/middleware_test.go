package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Madman-dev/ZZin/internal/adapters/in/http/middleware"
)

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	args := m.Called(ctx, idToken)
	tok, _ := args.Get(0).(*fbauth.Token)
	return tok, args.Error(1)
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.CurrentUserUID(r)
	_, _ = w.Write([]byte(uid))
}

func TestUserAuthMiddleware(t *testing.T) {
	v := new(MockVerifier)
	v.On("VerifyIDToken", mock.Anything, "good").
		Return(&fbauth.Token{UID: "u1", Claims: map[string]interface{}{"email": "a@b.co"}}, nil)
	v.On("VerifyIDToken", mock.Anything, "nouid").Return(&fbauth.Token{UID: " "}, nil)
	v.On("VerifyIDToken", mock.Anything, "bad").Return(nil, errors.New("expired"))
	h := (&middleware.UserAuthMiddleware{Verifier: v}).Handler(http.HandlerFunc(echoUser))

	cases := []struct {
		name   string
		header string
		code   int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "u1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"not bearer", "Basic abc", http.StatusUnauthorized, ""},
		{"empty token", "Bearer   ", http.StatusUnauthorized, ""},
		{"rejected", "Bearer bad", http.StatusUnauthorized, ""},
		{"blank uid", "Bearer nouid", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/reviews", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestUserAuthMiddleware_NoVerifier(t *testing.T) {
	h := (&middleware.UserAuthMiddleware{}).Handler(http.HandlerFunc(echoUser))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecover(t *testing.T) {
	h := middleware.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS([]string{"https://zzin.app"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	req := httptest.NewRequest(http.MethodOptions, "/reviews", nil)
	req.Header.Set("Origin", "https://zzin.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://zzin.app", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEqual(t, http.StatusTeapot, rec.Code)
}
