package mongo

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/repository"
	"bizdir/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// adminRepository implements the repository.AdminRepository interface.
type adminRepository struct {
	coll *mongo.Collection
}

// NewAdminRepository is the constructor for adminRepository.
func NewAdminRepository(db *mongo.Database) repository.AdminRepository {
	return &adminRepository{coll: db.Collection(adminsCollection)}
}

// Create inserts a new admin.
func (repo *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	if _, err := repo.coll.InsertOne(ctx, fromAdminDomain(admin)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAdminEmailTaken
		}

		return errors.Wrap(err, "failed to create admin")
	}

	return nil
}

// FindByEmail retrieves an admin by login email.
func (repo *adminRepository) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

// FindByID retrieves an admin by its ID.
func (repo *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
}

func (repo *adminRepository) findOne(ctx context.Context, query bson.D) (*entity.Admin, error) {
	var doc adminDocument
	err := repo.coll.FindOne(ctx, query).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrAdminNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find admin")
	}

	admin, err := toAdminDomain(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode admin")
	}

	return admin, nil
}
