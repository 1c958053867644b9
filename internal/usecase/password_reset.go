package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

const flowPasswordReset = "password_reset"

type PasswordResetConfig struct {
	OTPTTL time.Duration
	Now    func() time.Time
}

// PasswordResetUsecase drives an account through NONE -> REQUESTED -> NONE.
type PasswordResetUsecase struct {
	users    repository.UserRepository
	resets   *otp.Store[domain.ResetRequest]
	codes    otp.Generator
	hasher   password.Hasher
	notifier Notifier
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time
}

func NewPasswordResetUsecase(
	users repository.UserRepository,
	resets *otp.Store[domain.ResetRequest],
	codes otp.Generator,
	hasher password.Hasher,
	notifier Notifier,
	logger *slog.Logger,
	cfg PasswordResetConfig,
) *PasswordResetUsecase {
	return &PasswordResetUsecase{
		users:    users,
		resets:   resets,
		codes:    codes,
		hasher:   hasher,
		notifier: notifier,
		logger:   logger.With("component", "password_reset"),
		ttl:      orDefaultTTL(cfg.OTPTTL),
		now:      orNow(cfg.Now),
	}
}

// Initiate opens a reset request for a registered email and emails its code.
func (u *PasswordResetUsecase) Initiate(ctx context.Context, email string) (string, error) {
	return u.issue(ctx, email)
}

// Resend replaces any active request for the email with a new code.
func (u *PasswordResetUsecase) Resend(ctx context.Context, email string) (string, error) {
	return u.issue(ctx, email)
}

func (u *PasswordResetUsecase) issue(ctx context.Context, email string) (string, error) {
	addr := domain.NormalizeEmail(email)
	if addr == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrEmailNotRegistered
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	code, err := issueCode(u.codes, func(code string) error {
		_, err := u.resets.Put(addr, code, u.now().Add(u.ttl), domain.ResetRequest{UserID: user.ID})
		return err
	})
	if err != nil {
		return "", fmt.Errorf("store reset request: %w", err)
	}
	metrics.OTPIssuedTotal.WithLabelValues(flowPasswordReset).Inc()

	if err := u.notifier.SendPasswordResetOTP(ctx, addr, code); err != nil {
		metrics.OTPNotificationFailuresTotal.WithLabelValues(flowPasswordReset).Inc()
		u.logger.WarnContext(ctx, "reset code delivery failed", "email", addr, "error", err)
	}
	return code, nil
}

// VerifyCode reports whether code belongs to an unexpired request. It does
// not consume the request.
func (u *PasswordResetUsecase) VerifyCode(ctx context.Context, code string) bool {
	_, outcome := u.lookup(code)
	metrics.OTPVerificationsTotal.WithLabelValues(flowPasswordReset, outcome.String()).Inc()
	if outcome != VerifyOK {
		u.logger.InfoContext(ctx, "reset code rejected", "outcome", outcome.String())
	}
	return outcome == VerifyOK
}

// EmailForCode resolves an unexpired code to its email.
func (u *PasswordResetUsecase) EmailForCode(_ context.Context, code string) (string, bool) {
	entry, outcome := u.lookup(code)
	if outcome != VerifyOK {
		return "", false
	}
	return entry.Email, true
}

func (u *PasswordResetUsecase) lookup(code string) (otp.Entry[domain.ResetRequest], VerifyOutcome) {
	entry, ok := u.resets.ByCode(code)
	if !ok {
		return entry, VerifyUnknownCode
	}
	now := u.now()
	if entry.Expired(now) {
		u.resets.RemoveIfExpired(entry.ID, now)
		return entry, VerifyExpired
	}
	return entry, VerifyOK
}

// Reset sets a new password for a registered email and closes its reset
// request. Missing accounts and storage failures yield false.
func (u *PasswordResetUsecase) Reset(ctx context.Context, email, newPassword string) bool {
	addr := domain.NormalizeEmail(email)
	if addr == "" || newPassword == "" {
		return false
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			u.logger.ErrorContext(ctx, "find user for reset", "email", addr, "error", err)
		}
		return false
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		u.logger.ErrorContext(ctx, "hash new password", "error", err)
		return false
	}

	rows, err := u.users.UpdatePassword(ctx, user.ID, hash, hash)
	if err != nil {
		u.logger.ErrorContext(ctx, "update password", "user_id", user.ID, "error", err)
		return false
	}
	if rows < 1 {
		return false
	}

	u.resets.Delete(addr)
	u.logger.InfoContext(ctx, "password reset", "user_id", user.ID)
	return true
}

// ResetWithCode resolves code to its email and resets that account's password.
func (u *PasswordResetUsecase) ResetWithCode(ctx context.Context, code, newPassword string) bool {
	addr, ok := u.EmailForCode(ctx, code)
	if !ok {
		return false
	}
	return u.Reset(ctx, addr, newPassword)
}
