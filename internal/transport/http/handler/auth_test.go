package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/transport/http/handler"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeRegistration implements the unexported registrationUsecaser interface via method matching.
type fakeRegistration struct {
	initiate func(ctx context.Context, in usecase.RegisterInput) (string, error)
	verify   func(ctx context.Context, code string) bool
	resend   func(ctx context.Context, email string) (string, error)
}

func (f *fakeRegistration) Initiate(ctx context.Context, in usecase.RegisterInput) (string, error) {
	return f.initiate(ctx, in)
}

func (f *fakeRegistration) Verify(ctx context.Context, code string) bool {
	return f.verify(ctx, code)
}

func (f *fakeRegistration) Resend(ctx context.Context, email string) (string, error) {
	return f.resend(ctx, email)
}

type fakeLogin struct {
	login func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
}

func (f *fakeLogin) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	return f.login(ctx, email, password)
}

func newAuthEngine(reg *fakeRegistration, login *fakeLogin, exposeOTP bool) *gin.Engine {
	h := handler.NewAuthHandler(reg, login, exposeOTP, discard)
	r := gin.New()
	r.POST("/register/initiate", h.InitiateRegistration)
	r.POST("/register/verify", h.VerifyRegistration)
	r.POST("/register/resend-otp", h.ResendRegistrationOTP)
	r.POST("/login", h.Login)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode body %q: %v", w.Body.String(), err)
		}
	}
	return w, decoded
}

const validRegistration = `{"firstName":"Asha","lastName":"Rao","email":"asha@quadranttechnologies.com","password":"pw","confirmPassword":"pw"}`

func initiateOK() *fakeRegistration {
	return &fakeRegistration{
		initiate: func(_ context.Context, _ usecase.RegisterInput) (string, error) { return "123456", nil },
	}
}

func TestInitiateRegistration_HidesOTPByDefault(t *testing.T) {
	w, body := doJSON(t, newAuthEngine(initiateOK(), nil, false), http.MethodPost, "/register/initiate", validRegistration)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if _, ok := body["otp"]; ok {
		t.Fatal("otp exposed with EXPOSE_OTP off")
	}
}

func TestInitiateRegistration_ExposesOTPWhenEnabled(t *testing.T) {
	w, body := doJSON(t, newAuthEngine(initiateOK(), nil, true), http.MethodPost, "/register/initiate", validRegistration)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["otp"] != "123456" {
		t.Fatalf("otp = %v, want 123456", body["otp"])
	}
}

func TestInitiateRegistration_PassesInput(t *testing.T) {
	var got usecase.RegisterInput
	reg := &fakeRegistration{
		initiate: func(_ context.Context, in usecase.RegisterInput) (string, error) {
			got = in
			return "123456", nil
		},
	}
	doJSON(t, newAuthEngine(reg, nil, false), http.MethodPost, "/register/initiate", validRegistration)

	if got.Email != "asha@quadranttechnologies.com" || got.FirstName != "Asha" || got.ConfirmPassword != "pw" {
		t.Fatalf("input = %+v", got)
	}
}

func TestInitiateRegistration_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"duplicate", domain.ErrDuplicateEmail, http.StatusConflict},
		{"domain", domain.ErrDomainNotAllowed, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"internal", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := &fakeRegistration{
				initiate: func(context.Context, usecase.RegisterInput) (string, error) { return "", tc.err },
			}
			w, body := doJSON(t, newAuthEngine(reg, nil, false), http.MethodPost, "/register/initiate", validRegistration)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			if tc.want == http.StatusInternalServerError && body["error"] != "Internal server error" {
				t.Fatalf("internal detail leaked: %v", body["error"])
			}
		})
	}
}

func TestInitiateRegistration_MissingFields_Returns400(t *testing.T) {
	w, _ := doJSON(t, newAuthEngine(&fakeRegistration{}, nil, false), http.MethodPost, "/register/initiate", `{"email":"a@b.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestVerifyRegistration(t *testing.T) {
	reg := &fakeRegistration{
		verify: func(_ context.Context, code string) bool { return code == "123456" },
	}
	r := newAuthEngine(reg, nil, false)

	if w, _ := doJSON(t, r, http.MethodPost, "/register/verify", `{"otp":"123456"}`); w.Code != http.StatusOK {
		t.Fatalf("valid code status = %d, want 200", w.Code)
	}

	w, body := doJSON(t, r, http.MethodPost, "/register/verify", `{"otp":"654321"}`)
	if w.Code != http.StatusBadRequest || body["error"] != "Invalid or expired OTP" {
		t.Fatalf("invalid code: status=%d body=%v", w.Code, body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/register/verify", `{"otp":"12ab"}`)
	if w.Code != http.StatusBadRequest || body["error"] != "Invalid or expired OTP" {
		t.Fatalf("malformed code: status=%d body=%v", w.Code, body)
	}
}

func TestResendRegistrationOTP_NoPending_Returns404(t *testing.T) {
	reg := &fakeRegistration{
		resend: func(context.Context, string) (string, error) { return "", domain.ErrNoPendingRegistration },
	}
	w, _ := doJSON(t, newAuthEngine(reg, nil, true), http.MethodPost, "/register/resend-otp", `{"email":"a@b.com"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestLogin(t *testing.T) {
	login := &fakeLogin{
		login: func(_ context.Context, email, password string) (*usecase.LoginResult, error) {
			if password != "right" {
				return nil, domain.ErrInvalidCredentials
			}
			return &usecase.LoginResult{
				Token:     "signed.jwt.token",
				ExpiresAt: time.Now().Add(time.Hour),
				User:      &domain.User{Email: email, Role: domain.RoleManager},
			}, nil
		},
	}
	r := newAuthEngine(nil, login, false)

	w, body := doJSON(t, r, http.MethodPost, "/login", `{"email":"m@q.com","password":"right"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body["token"] != "signed.jwt.token" || body["user"] != "manager" {
		t.Fatalf("body = %v", body)
	}

	w, body = doJSON(t, r, http.MethodPost, "/login", `{"email":"m@q.com","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized || body["error"] != "Invalid credentials" {
		t.Fatalf("wrong password: status=%d body=%v", w.Code, body)
	}
}
