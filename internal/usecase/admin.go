package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/domain"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/password"
	"github.com/ganeshgampa27/Capstone-Project-Backend-code/internal/repository"
)

type AdminUsecase struct {
	users     repository.UserRepository
	templates repository.TemplateRepository
	hasher    password.Hasher
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewAdminUsecase(
	users repository.UserRepository,
	templates repository.TemplateRepository,
	hasher password.Hasher,
	notifier Notifier,
	logger *slog.Logger,
) *AdminUsecase {
	return &AdminUsecase{
		users:     users,
		templates: templates,
		hasher:    hasher,
		notifier:  notifier,
		logger:    logger.With("component", "admin"),
		now:       time.Now,
	}
}

// ListUsers pages through every account except admins, ordered by id.
func (u *AdminUsecase) ListUsers(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.User], error) {
	if !page.Valid() {
		return domain.Page[*domain.User]{}, fmt.Errorf("%w: invalid page number or page size", domain.ErrValidation)
	}
	return u.listUsers(ctx, repository.UserFilter{ExcludeRole: domain.RoleAdmin}, page)
}

func (u *AdminUsecase) ListUsersByRole(ctx context.Context, role domain.Role, page domain.PageRequest) (domain.Page[*domain.User], error) {
	if !page.Valid() {
		return domain.Page[*domain.User]{}, fmt.Errorf("%w: invalid page number or page size", domain.ErrValidation)
	}
	if !role.Valid() {
		return domain.Page[*domain.User]{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	return u.listUsers(ctx, repository.UserFilter{Role: role}, page)
}

func (u *AdminUsecase) listUsers(ctx context.Context, filter repository.UserFilter, page domain.PageRequest) (domain.Page[*domain.User], error) {
	users, total, err := u.users.List(ctx, filter, page)
	if err != nil {
		return domain.Page[*domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return domain.Page[*domain.User]{Items: users, Total: total, Number: page.Number, Size: page.Size}, nil
}

// ListTemplates returns ErrPageOutOfRange when page is past the last page of
// a non-empty table.
func (u *AdminUsecase) ListTemplates(ctx context.Context, page domain.PageRequest) (domain.Page[*domain.Template], error) {
	if !page.Valid() {
		return domain.Page[*domain.Template]{}, fmt.Errorf("%w: invalid page number or page size", domain.ErrValidation)
	}
	items, total, err := u.templates.ListPage(ctx, page)
	if err != nil {
		return domain.Page[*domain.Template]{}, fmt.Errorf("list templates: %w", err)
	}
	result := domain.Page[*domain.Template]{Items: items, Total: total, Number: page.Number, Size: page.Size}
	if pages := result.TotalPages(); pages != 0 && page.Number > pages {
		return domain.Page[*domain.Template]{}, fmt.Errorf("%w: total pages %d", domain.ErrPageOutOfRange, pages)
	}
	return result, nil
}

type NewUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AddUserResult struct {
	User *domain.User
	// EmailSent is false when the account was created but the credentials
	// email could not be delivered.
	EmailSent bool
}

// AddUser creates an account with a known password and mails the
// credentials. Only user and manager accounts can be added this way.
func (u *AdminUsecase) AddUser(ctx context.Context, in NewUserInput, role domain.Role) (*AddUserResult, error) {
	if role != domain.RoleUser && role != domain.RoleManager {
		return nil, fmt.Errorf("%w: cannot add account with role %q", domain.ErrValidation, role)
	}
	addr := domain.NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	if addr == "" || firstName == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email, first name and password are required", domain.ErrValidation)
	}

	_, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:           firstName,
		LastName:            strings.TrimSpace(in.LastName),
		Email:               addr,
		PasswordHash:        hash,
		ConfirmPasswordHash: hash,
		Role:                role,
		JoinDate:            domain.DateOnly(u.now()),
	}
	if _, err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	u.logger.InfoContext(ctx, "account added", "user_id", user.ID, "role", string(role))

	result := &AddUserResult{User: user, EmailSent: true}
	if err := u.notifier.SendCredentials(ctx, addr, firstName, in.Password); err != nil {
		u.logger.WarnContext(ctx, "credentials email failed", "user_id", user.ID, "error", err)
		result.EmailSent = false
	}
	return result, nil
}

func (u *AdminUsecase) ListManagers(ctx context.Context) ([]*domain.User, error) {
	managers, _, err := u.users.List(ctx, repository.UserFilter{Role: domain.RoleManager}, domain.Unpaged)
	if err != nil {
		return nil, fmt.Errorf("list managers: %w", err)
	}
	if len(managers) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return managers, nil
}

// DeleteUser removes the account and, through the foreign key, its resumes.
func (u *AdminUsecase) DeleteUser(ctx context.Context, id uint) error {
	if err := u.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	u.logger.InfoContext(ctx, "account deleted", "user_id", id)
	return nil
}

// ChangeRole only applies to accounts that are currently managers.
func (u *AdminUsecase) ChangeRole(ctx context.Context, id uint, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	if user.Role != domain.RoleManager {
		return nil, domain.ErrRoleChangeNotAllowed
	}
	if err := u.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	u.logger.InfoContext(ctx, "role changed", "user_id", id, "role", string(role))
	return user, nil
}

type Employee struct {
	FirstName string
	LastName  string
	Email     string
}

// BatchInsert imports employees without passwords, skipping emails that
// already have an account or repeat within the batch. Each new account is
// told to set a password through the forgot-password flow.
func (u *AdminUsecase) BatchInsert(ctx context.Context, employees []Employee) (int64, error) {
	if len(employees) == 0 {
		return 0, fmt.Errorf("%w: no employee data provided", domain.ErrValidation)
	}

	emails := make([]string, 0, len(employees))
	for _, e := range employees {
		if addr := domain.NormalizeEmail(e.Email); addr != "" {
			emails = append(emails, addr)
		}
	}
	existing, err := u.users.ExistingEmails(ctx, emails)
	if err != nil {
		return 0, fmt.Errorf("existing emails: %w", err)
	}
	seen := make(map[string]struct{}, len(existing)+len(employees))
	for _, addr := range existing {
		seen[addr] = struct{}{}
	}

	joined := domain.DateOnly(u.now())
	fresh := make([]*domain.User, 0, len(employees))
	for _, e := range employees {
		addr := domain.NormalizeEmail(e.Email)
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		fresh = append(fresh, &domain.User{
			FirstName: strings.TrimSpace(e.FirstName),
			LastName:  strings.TrimSpace(e.LastName),
			Email:     addr,
			Role:      domain.RoleUser,
			JoinDate:  joined,
		})
	}
	if len(fresh) == 0 {
		return 0, domain.ErrNothingToImport
	}

	inserted, err := u.users.CreateBatch(ctx, fresh)
	if err != nil {
		return 0, fmt.Errorf("insert employees: %w", err)
	}

	for _, user := range fresh {
		if err := u.notifier.SendAccountCreated(ctx, user.Email, user.FirstName); err != nil {
			u.logger.WarnContext(ctx, "account created email failed", "email", user.Email, "error", err)
		}
	}
	u.logger.InfoContext(ctx, "employees imported", "count", inserted)
	return inserted, nil
}
