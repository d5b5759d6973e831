package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	user *entity.User
	err  error
}

func (f *fakeResolver) Signup(context.Context, *usecase.SignupInput) (*usecase.SignupOutput, error) {
	panic("not used")
}

func (f *fakeResolver) Login(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
	panic("not used")
}

func (f *fakeResolver) ResolveToken(_ context.Context, token string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.user, nil
}

func newAuthContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/invoices", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate_Success(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&fakeResolver{user: &entity.User{ID: userID, Username: "alice"}})

	var gotUserID uuid.UUID
	next := func(c echo.Context) error {
		id, ok := UserID(c)
		require.True(t, ok)
		gotUserID = id

		return nil
	}

	c, _ := newAuthContext(t, "Bearer some.jwt.token")

	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, userID, gotUserID)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	m := NewAuthMiddleware(&fakeResolver{})

	c, rec := newAuthContext(t, "")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	m := NewAuthMiddleware(&fakeResolver{})

	c, rec := newAuthContext(t, "Basic dXNlcjpwYXNz")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_Authenticate_InvalidToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeResolver{err: domainerrors.ErrInvalidToken.WrapMessage("bad signature")})

	c, rec := newAuthContext(t, "Bearer tampered.jwt.token")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
}

func TestAuthMiddleware_Authenticate_ExpiredToken(t *testing.T) {
	m := NewAuthMiddleware(&fakeResolver{err: domainerrors.ErrExpiredToken.WrapMessage("token expired")})

	c, _ := newAuthContext(t, "Bearer expired.jwt.token")

	err := m.Authenticate(func(echo.Context) error { return nil })(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExpiredToken))
}
