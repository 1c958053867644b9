package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	oldPassword = "old-password"
	newPassword = "new-password"
	testJWTKey  = "test-jwt-secret-at-least-32-chars!!"
)

type resetFixture struct {
	users    *memUserRepo
	resets   *otp.Store[domain.ResetRequest]
	notifier *fakeNotifier
	clock    *fakeClock
	uc       *usecase.PasswordResetUsecase
	auth     *usecase.AuthUsecase
	user     *domain.User
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	f := &resetFixture{
		users:    newMemUserRepo(),
		resets:   otp.NewStore[domain.ResetRequest](),
		notifier: &fakeNotifier{},
		clock:    newFakeClock(),
	}
	f.uc = usecase.NewPasswordResetUsecase(f.users, f.resets, sequenceGenerator(), hasher, f.notifier, discard,
		usecase.PasswordResetConfig{Now: f.clock.Now})
	f.auth = usecase.NewAuthUsecase(f.users, hasher, discard, []byte(testJWTKey), time.Hour)

	hash, err := hasher.Hash(oldPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	f.user = &domain.User{FirstName: "Ravi", Email: "ravi@example.com", PasswordHash: hash, ConfirmPasswordHash: hash}
	if _, err := f.users.Create(context.Background(), f.user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return f
}

func TestPasswordReset_RoundTrip(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	code, err := f.uc.Initiate(ctx, "Ravi@Example.com")
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if got := f.notifier.last(); got.kind != "reset" || got.code != code || got.to != "ravi@example.com" {
		t.Fatalf("notification = %+v", got)
	}

	if !f.uc.VerifyCode(ctx, code) {
		t.Fatal("verify code returned false")
	}
	if !f.uc.VerifyCode(ctx, code) {
		t.Fatal("verify code consumed the request")
	}
	if !f.uc.Reset(ctx, "ravi@example.com", newPassword) {
		t.Fatal("reset returned false")
	}

	if _, err := f.auth.Login(ctx, "ravi@example.com", newPassword); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := f.auth.Login(ctx, "ravi@example.com", oldPassword); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("login with old password: want ErrInvalidCredentials, got %v", err)
	}

	if f.resets.Len() != 0 {
		t.Fatal("reset request not cleared")
	}
	if f.uc.VerifyCode(ctx, code) {
		t.Fatal("code still valid after reset")
	}
}

func TestPasswordReset_UnregisteredEmail(t *testing.T) {
	f := newResetFixture(t)

	if _, err := f.uc.Initiate(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrEmailNotRegistered) {
		t.Fatalf("initiate: want ErrEmailNotRegistered, got %v", err)
	}
	if _, err := f.uc.Resend(context.Background(), "ghost@example.com"); !errors.Is(err, domain.ErrEmailNotRegistered) {
		t.Fatalf("resend: want ErrEmailNotRegistered, got %v", err)
	}
	if f.resets.Len() != 0 {
		t.Fatal("request created for unregistered email")
	}
}

func TestPasswordReset_ExpiredCode(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	code, err := f.uc.Initiate(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	f.clock.Advance(11 * time.Minute)

	if f.uc.VerifyCode(ctx, code) {
		t.Fatal("expired code verified")
	}
	if _, ok := f.uc.EmailForCode(ctx, code); ok {
		t.Fatal("expired code resolved to an email")
	}
	if f.resets.Len() != 0 {
		t.Fatal("expired request not evicted")
	}
}

func TestPasswordReset_ResendReplacesCode(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	first, err := f.uc.Initiate(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	second, err := f.uc.Resend(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("resend: %v", err)
	}

	if f.uc.VerifyCode(ctx, first) {
		t.Fatal("replaced code still valid")
	}
	if !f.uc.VerifyCode(ctx, second) {
		t.Fatal("new code rejected")
	}
	if f.resets.Len() != 1 {
		t.Fatalf("requests = %d, want 1", f.resets.Len())
	}
}

func TestPasswordReset_EmailForCode(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	code, err := f.uc.Initiate(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	got, ok := f.uc.EmailForCode(ctx, code)
	if !ok || got != f.user.Email {
		t.Fatalf("EmailForCode = %q, %v", got, ok)
	}
	if _, ok := f.uc.EmailForCode(ctx, "000000"); ok {
		t.Fatal("unknown code resolved")
	}
}

func TestPasswordReset_ResetWithCode(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if f.uc.ResetWithCode(ctx, "123456", newPassword) {
		t.Fatal("reset with unknown code succeeded")
	}

	code, err := f.uc.Initiate(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if !f.uc.ResetWithCode(ctx, code, newPassword) {
		t.Fatal("reset with code failed")
	}
	if _, err := f.auth.Login(ctx, f.user.Email, newPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	if f.uc.ResetWithCode(ctx, code, "third-password") {
		t.Fatal("code reused")
	}
}

func TestPasswordReset_ResetFailures(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	if f.uc.Reset(ctx, "ghost@example.com", newPassword) {
		t.Fatal("reset succeeded for missing account")
	}
	if f.uc.Reset(ctx, f.user.Email, "") {
		t.Fatal("reset succeeded with empty password")
	}

	code, err := f.uc.Initiate(ctx, f.user.Email)
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	f.users.updatePasswordErr = errors.New("db down")
	if f.uc.Reset(ctx, f.user.Email, newPassword) {
		t.Fatal("reset succeeded while storage failed")
	}
	if !f.uc.VerifyCode(ctx, code) {
		t.Fatal("failed reset cleared the request")
	}
}
