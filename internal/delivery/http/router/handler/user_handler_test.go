package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"invoicer/internal/delivery/http/validator"
	"invoicer/internal/domain/entity"
	domainerrors "invoicer/internal/domain/errors"
	"invoicer/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserUsecase lets each test script the usecase outcome.
type fakeUserUsecase struct {
	signupFn func(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error)
	loginFn  func(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error)
}

func (f *fakeUserUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	return f.signupFn(ctx, input)
}

func (f *fakeUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return f.loginFn(ctx, input)
}

func (f *fakeUserUsecase) ResolveToken(context.Context, string) (*entity.User, error) {
	return nil, domainerrors.ErrInvalidToken
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserHandler_Signup_Success(t *testing.T) {
	userID := uuid.New()
	uc := &fakeUserUsecase{
		signupFn: func(_ context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
			assert.Equal(t, "alice", input.Username)
			assert.Equal(t, "pw123456", input.Password)

			return &usecase.SignupOutput{User: &entity.User{ID: userID, Username: "alice"}}, nil
		},
	}
	h := NewUserHandler(uc, discardLogger())

	c, rec := newTestContext(t, http.MethodPost, "/signup",
		`{"username":"alice","password":"pw123456"}`)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Signup_UsernameTaken(t *testing.T) {
	uc := &fakeUserUsecase{
		signupFn: func(context.Context, *usecase.SignupInput) (*usecase.SignupOutput, error) {
			return nil, domainerrors.ErrUsernameTaken.WrapMessage("username already registered")
		},
	}
	h := NewUserHandler(uc, discardLogger())

	c, _ := newTestContext(t, http.MethodPost, "/signup",
		`{"username":"alice","password":"pw123456"}`)

	err := h.Signup(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
}

func TestUserHandler_Signup_ValidationFailure(t *testing.T) {
	h := NewUserHandler(&fakeUserUsecase{}, discardLogger())

	// Password below the minimum length never reaches the usecase.
	c, _ := newTestContext(t, http.MethodPost, "/signup",
		`{"username":"alice","password":"pw"}`)

	err := h.Signup(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserHandler_Login_Success(t *testing.T) {
	uc := &fakeUserUsecase{
		loginFn: func(_ context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
			assert.Equal(t, "alice", input.Username)

			return &usecase.LoginOutput{AccessToken: "signed.jwt.token", TokenType: "bearer"}, nil
		},
	}
	h := NewUserHandler(uc, discardLogger())

	c, rec := newTestContext(t, http.MethodPost, "/login",
		`{"username":"alice","password":"pw123456"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"signed.jwt.token"`)
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	uc := &fakeUserUsecase{
		loginFn: func(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		},
	}
	h := NewUserHandler(uc, discardLogger())

	c, _ := newTestContext(t, http.MethodPost, "/login",
		`{"username":"alice","password":"wrong1"}`)

	err := h.Login(c)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestHealthCheck(t *testing.T) {
	c, rec := newTestContext(t, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
