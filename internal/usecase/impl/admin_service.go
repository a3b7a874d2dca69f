package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "bizdir/internal/delivery/context"
	"bizdir/internal/domain/entity"
	domainerrors "bizdir/internal/domain/errors"
	"bizdir/internal/domain/repository"
	"bizdir/internal/domain/service"
	"bizdir/internal/errors"
	"bizdir/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	adminRepo    repository.AdminRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    *recordValidator
	logger       *slog.Logger
	now          func() time.Time
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	AdminRepo    repository.AdminRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		adminRepo:    params.AdminRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    newRecordValidator(),
		logger:       params.Logger,
		now:          func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an admin and issues a token.
func (srv *adminService) Register(ctx context.Context, input *usecase.RegisterAdminInput) (*usecase.AuthOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if err := srv.validator.Admin(name, email, input.Password); err != nil {
		return nil, err
	}

	_, err := srv.adminRepo.FindByEmail(ctx, email)
	if err == nil {
		srv.log(ctx).Warn("Admin registration with existing email", slog.String("email", email))

		return nil, domainerrors.ErrAdminAlreadyExists
	}
	if !errors.Is(err, repository.ErrAdminNotFound) {
		return nil, errors.Wrap(err, "failed to look up admin")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	now := srv.now()
	admin := &entity.Admin{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.adminRepo.Create(ctx, admin); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repository.ErrAdminEmailTaken) {
			return nil, domainerrors.ErrAdminAlreadyExists
		}

		return nil, errors.Wrap(err, "failed to create admin")
	}

	token, err := srv.issueToken(admin)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Admin registered", slog.String("admin_id", admin.ID.String()))

	return &usecase.AuthOutput{Admin: admin, Token: token}, nil
}

// Login verifies credentials and issues a token.
func (srv *adminService) Login(ctx context.Context, input *usecase.LoginAdminInput) (*usecase.AuthOutput, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrInvalidCredentials
	}

	admin, err := srv.adminRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up admin")
	}

	if !srv.hasher.Check(input.Password, admin.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch on login", slog.String("admin_id", admin.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.issueToken(admin)
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{Admin: admin, Token: token}, nil
}

// GetProfile returns the admin identified by a validated token.
func (srv *adminService) GetProfile(ctx context.Context, adminID uuid.UUID) (*entity.Admin, error) {
	admin, err := srv.adminRepo.FindByID(ctx, adminID)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, domainerrors.ErrAdminNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find admin")
	}

	return admin, nil
}

func (srv *adminService) issueToken(admin *entity.Admin) (string, error) {
	token, err := srv.tokenService.GenerateToken(admin.ID, entity.Roles{entity.RoleAdmin}.ToStrings())
	if err != nil {
		return "", errors.Wrap(err, "failed to generate token")
	}

	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
