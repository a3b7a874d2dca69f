package mongo

import (
	"context"

	"bizdir/internal/domain/entity"
	"bizdir/internal/domain/geo"
	"bizdir/internal/domain/repository"
	"bizdir/internal/errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// businessRepository implements the repository.BusinessRepository interface.
type businessRepository struct {
	coll *mongo.Collection
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(db *mongo.Database) repository.BusinessRepository {
	return &businessRepository{coll: db.Collection(businessesCollection)}
}

// Create inserts a new business.
func (repo *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	if _, err := repo.coll.InsertOne(ctx, fromBusinessDomain(business)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrBusinessEmailTaken
		}

		return errors.Wrap(err, "failed to create business")
	}

	return nil
}

// FindByID retrieves a business by its ID.
func (repo *businessRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var doc businessDocument
	err := repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id.String()}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrBusinessNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find business by id")
	}

	business, err := toBusinessDomain(&doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode business")
	}

	return business, nil
}

// List returns one page of businesses matching filter, newest first, with the total match count.
func (repo *businessRepository) List(ctx context.Context, filter entity.BusinessFilter, page entity.PageRequest) ([]*entity.Business, int64, error) {
	query := bson.D{}
	if filter.Category != nil {
		query = append(query, bson.E{Key: "category", Value: filter.Category.String()})
	}
	if filter.Verified != nil {
		query = append(query, bson.E{Key: "verified", Value: *filter.Verified})
	}

	total, err := repo.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to count businesses")
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	businesses, err := repo.find(ctx, query, opts)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list businesses")
	}

	return businesses, total, nil
}

// FindWithin returns businesses whose point lies inside area, nearest first.
func (repo *businessRepository) FindWithin(ctx context.Context, area geo.Cap, limit int) ([]*entity.Business, error) {
	query := bson.D{{Key: "location.coordinates", Value: bson.D{{Key: "$exists", Value: true}}}}
	if !area.CoversSphere() {
		query = bson.D{{Key: "location.coordinates", Value: bson.D{{
			Key: "$geoWithin", Value: bson.D{{
				Key:   "$centerSphere",
				Value: bson.A{bson.A{area.Center.Lon(), area.Center.Lat()}, area.Radius},
			}},
		}}}}
	}

	businesses, err := repo.find(ctx, query, options.Find())
	if err != nil {
		return nil, errors.Wrap(err, "failed to query businesses by area")
	}

	// $geoWithin is unordered; the final membership test also trims edge disagreements.
	return geo.Nearest(area, businesses, (*entity.Business).Point, limit), nil
}

// Update replaces an existing business document.
func (repo *businessRepository) Update(ctx context.Context, business *entity.Business) error {
	result, err := repo.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: business.ID.String()}}, fromBusinessDomain(business))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrBusinessEmailTaken
		}

		return errors.Wrap(err, "failed to update business")
	}
	if result.MatchedCount == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// Delete removes a business by its ID.
func (repo *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id.String()}})
	if err != nil {
		return errors.Wrap(err, "failed to delete business")
	}
	if result.DeletedCount == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

func (repo *businessRepository) find(ctx context.Context, query bson.D, opts *options.FindOptions) ([]*entity.Business, error) {
	cursor, err := repo.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	var docs []*businessDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	businesses := make([]*entity.Business, 0, len(docs))
	for _, doc := range docs {
		business, err := toBusinessDomain(doc)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, business)
	}

	return businesses, nil
}
