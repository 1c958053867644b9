package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/otp"
)

const (
	defaultOTPTTL   = 10 * time.Minute
	maxCodeAttempts = 5
)

// Notifier delivers account emails. Implemented by *email.Notifier.
type Notifier interface {
	SendRegistrationOTP(ctx context.Context, to, firstName, code string) error
	SendPasswordResetOTP(ctx context.Context, to, code string) error
	SendCredentials(ctx context.Context, to, firstName, password string) error
	SendAccountCreated(ctx context.Context, to, firstName string) error
}

// VerifyOutcome is the internal result of a code check. Callers outside the
// usecase only ever see a bool.
type VerifyOutcome int

const (
	VerifyOK VerifyOutcome = iota
	VerifyUnknownCode
	VerifyExpired
	VerifyDuplicate
	VerifyPersistFailed
)

func (o VerifyOutcome) String() string {
	switch o {
	case VerifyOK:
		return "ok"
	case VerifyUnknownCode:
		return "unknown_code"
	case VerifyExpired:
		return "expired"
	case VerifyDuplicate:
		return "duplicate"
	case VerifyPersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// issueCode draws codes until store accepts one that no other entry holds.
func issueCode(gen otp.Generator, store func(code string) error) (string, error) {
	for range maxCodeAttempts {
		code, err := gen.Next()
		if err != nil {
			return "", err
		}
		err = store(code)
		if errors.Is(err, otp.ErrCodeInUse) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", fmt.Errorf("issue code: %w", otp.ErrCodeInUse)
}

func orNow(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}

func orDefaultTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultOTPTTL
	}
	return ttl
}
