package postgres

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/repository"
	"bizdir/internal/errors"
	"bizdir/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// adminRepository implements the repository.AdminRepository interface.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *gorm.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

// Create inserts a new admin.
func (repo *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	if err := repo.db.WithContext(ctx).Create(fromAdminDomain(admin)).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAdminEmailTaken
		}

		return errors.Wrap(err, "failed to create admin")
	}

	return nil
}

// FindByEmail retrieves an admin by login email.
func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	return repo.take(repo.db.WithContext(ctx).Where("email = ?", email), "email")
}

// FindByID retrieves an admin by its ID.
func (repo *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	return repo.take(repo.db.WithContext(ctx).Where("id = ?", id), "id")
}

func (repo *adminRepository) take(q *gorm.DB, by string) (*entity.Admin, error) {
	var m model.AdminModel
	err := q.Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrAdminNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to find admin by %s", by)
	}

	return toAdminDomain(&m), nil
}

// --- Mapper Functions ---

func toAdminDomain(data *model.AdminModel) *entity.Admin {
	if data == nil {
		return nil
	}

	return &entity.Admin{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt.UTC(),
		UpdatedAt:    data.UpdatedAt.UTC(),
	}
}

func fromAdminDomain(domain *entity.Admin) *model.AdminModel {
	if domain == nil {
		return nil
	}

	return &model.AdminModel{
		ID:           domain.ID,
		Name:         domain.Name,
		Email:        domain.Email,
		PasswordHash: domain.PasswordHash,
		CreatedAt:    domain.CreatedAt,
		UpdatedAt:    domain.UpdatedAt,
	}
}
