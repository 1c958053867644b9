package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/metrics"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

const flowRegistration = "registration"

type RegistrationConfig struct {
	OrgDomain string
	OTPTTL    time.Duration
	Now       func() time.Time
}

// RegistrationUsecase drives an email through NONE -> PENDING -> CONFIRMED.
type RegistrationUsecase struct {
	users     repository.UserRepository
	pending   *otp.Store[domain.PendingUser]
	codes     otp.Generator
	hasher    password.Hasher
	notifier  Notifier
	logger    *slog.Logger
	orgDomain string
	ttl       time.Duration
	now       func() time.Time
}

func NewRegistrationUsecase(
	users repository.UserRepository,
	pending *otp.Store[domain.PendingUser],
	codes otp.Generator,
	hasher password.Hasher,
	notifier Notifier,
	logger *slog.Logger,
	cfg RegistrationConfig,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		users:     users,
		pending:   pending,
		codes:     codes,
		hasher:    hasher,
		notifier:  notifier,
		logger:    logger.With("component", "registration"),
		orgDomain: strings.ToLower(cfg.OrgDomain),
		ttl:       orDefaultTTL(cfg.OTPTTL),
		now:       orNow(cfg.Now),
	}
}

type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Initiate validates the candidate, assigns a role by signup order, parks the
// hashed account under a fresh code and emails the code. A failed email does
// not undo the pending entry; the code is returned either way.
func (u *RegistrationUsecase) Initiate(ctx context.Context, in RegisterInput) (string, error) {
	addr := domain.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	if addr == "" || firstName == "" || in.Password == "" {
		return "", fmt.Errorf("%w: email, first name and password are required", domain.ErrValidation)
	}

	_, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		return "", domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", fmt.Errorf("find user: %w", err)
	}

	confirmed, err := u.users.Count(ctx)
	if err != nil {
		return "", fmt.Errorf("count users: %w", err)
	}
	role := domain.RoleForSignupOrder(confirmed)
	if role.RequiresOrgDomain() && domain.EmailDomain(addr) != u.orgDomain {
		return "", fmt.Errorf("%w: %s must belong to %s", domain.ErrDomainNotAllowed, role, u.orgDomain)
	}

	passwordHash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	confirmHash := passwordHash
	if in.ConfirmPassword != "" && in.ConfirmPassword != in.Password {
		if confirmHash, err = u.hasher.Hash(in.ConfirmPassword); err != nil {
			return "", fmt.Errorf("hash confirm password: %w", err)
		}
	}

	candidate := domain.PendingUser{
		FirstName:           firstName,
		LastName:            strings.TrimSpace(in.LastName),
		Email:               addr,
		PasswordHash:        passwordHash,
		ConfirmPasswordHash: confirmHash,
		Role:                role,
	}

	code, err := issueCode(u.codes, func(code string) error {
		_, err := u.pending.Put(addr, code, u.now().Add(u.ttl), candidate)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("store pending registration: %w", err)
	}
	metrics.OTPIssuedTotal.WithLabelValues(flowRegistration).Inc()

	u.notify(ctx, addr, firstName, code)
	return code, nil
}

// Verify confirms the pending registration holding code. It fails closed: an
// unknown, superseded or expired code, or a storage failure, all yield false.
func (u *RegistrationUsecase) Verify(ctx context.Context, code string) bool {
	outcome := u.verify(ctx, code)
	metrics.OTPVerificationsTotal.WithLabelValues(flowRegistration, outcome.String()).Inc()
	if outcome != VerifyOK {
		u.logger.InfoContext(ctx, "registration code rejected", "outcome", outcome.String())
	}
	return outcome == VerifyOK
}

func (u *RegistrationUsecase) verify(ctx context.Context, code string) VerifyOutcome {
	byCode, ok := u.pending.ByCode(code)
	if !ok {
		return VerifyUnknownCode
	}
	entry, ok := u.pending.ByEmail(byCode.Email)
	if !ok || entry.Code != code {
		return VerifyUnknownCode
	}

	now := u.now()
	if entry.Expired(now) {
		u.pending.RemoveIfExpired(entry.ID, now)
		return VerifyExpired
	}

	candidate := entry.Data
	user := &domain.User{
		FirstName:           candidate.FirstName,
		LastName:            candidate.LastName,
		Email:               candidate.Email,
		PasswordHash:        candidate.PasswordHash,
		ConfirmPasswordHash: candidate.ConfirmPasswordHash,
		Role:                candidate.Role,
		JoinDate:            domain.DateOnly(now),
	}
	if user.ConfirmPasswordHash == "" {
		user.ConfirmPasswordHash = user.PasswordHash
	}

	rows, err := u.users.Create(ctx, user)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		u.pending.Remove(entry.ID)
		return VerifyDuplicate
	}
	if err != nil {
		u.logger.ErrorContext(ctx, "persist confirmed user", "email", candidate.Email, "error", err)
		return VerifyPersistFailed
	}
	if rows < 1 {
		u.logger.ErrorContext(ctx, "persist confirmed user: no rows affected", "email", candidate.Email)
		return VerifyPersistFailed
	}

	u.pending.Remove(entry.ID)
	u.logger.InfoContext(ctx, "registration confirmed", "user_id", user.ID, "role", string(user.Role))
	return VerifyOK
}

// Resend issues a new code for an existing pending registration. The previous
// code stops resolving immediately.
func (u *RegistrationUsecase) Resend(ctx context.Context, email string) (string, error) {
	addr := domain.NormalizeEmail(email)
	if addr == "" {
		return "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	entry, ok := u.pending.ByEmail(addr)
	if !ok {
		return "", domain.ErrNoPendingRegistration
	}

	code, err := issueCode(u.codes, func(code string) error {
		_, err := u.pending.Rekey(addr, code, u.now().Add(u.ttl))
		return err
	})
	if errors.Is(err, otp.ErrNotFound) {
		return "", domain.ErrNoPendingRegistration
	}
	if err != nil {
		return "", fmt.Errorf("rekey pending registration: %w", err)
	}
	metrics.OTPIssuedTotal.WithLabelValues(flowRegistration).Inc()

	u.notify(ctx, addr, entry.Data.FirstName, code)
	return code, nil
}

func (u *RegistrationUsecase) notify(ctx context.Context, to, firstName, code string) {
	if err := u.notifier.SendRegistrationOTP(ctx, to, firstName, code); err != nil {
		metrics.OTPNotificationFailuresTotal.WithLabelValues(flowRegistration).Inc()
		u.logger.WarnContext(ctx, "registration code delivery failed", "email", to, "error", err)
	}
}
