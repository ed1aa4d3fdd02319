package repository

import (
	"context"
	"errors"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBBrandRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBBrandRepository(db *mongo.Database) BrandRepository {
	return &MongoDBBrandRepositoryImpl{db: db}
}

func (r *MongoDBBrandRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(brandsCollection)
}

func (r *MongoDBBrandRepositoryImpl) AddBrand(ctx context.Context, data domain.Brand) (id primitive.ObjectID, err error) {
	return insertOne(ctx, r.collection(), data, "AddBrand")
}

func (r *MongoDBBrandRepositoryImpl) GetBrands(ctx context.Context) (data []domain.Brand, err error) {
	cursor, err := r.collection().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetBrands").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.Brand, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetBrands").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBBrandRepositoryImpl) GetBrandByID(ctx context.Context, id string) (brand domain.Brand, err error) {
	err = findByID(ctx, r.collection(), id, &brand, "GetBrandByID")
	return
}

func (r *MongoDBBrandRepositoryImpl) GetBrandBySlug(ctx context.Context, slug string) (brand domain.Brand, err error) {
	err = r.collection().FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return brand, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetBrandBySlug").Msg("")
	}

	return
}

func (r *MongoDBBrandRepositoryImpl) UpdateBrand(ctx context.Context, data domain.Brand) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "slug", Value: data.Slug},
	}}}

	return updateByID(ctx, r.collection(), data.ID, update, "UpdateBrand")
}

func (r *MongoDBBrandRepositoryImpl) DeleteBrand(ctx context.Context, id string) (err error) {
	return deleteByID(ctx, r.collection(), id, "DeleteBrand")
}

func (r *MongoDBBrandRepositoryImpl) BrandExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error) {
	return existsIn(ctx, r.collection(), field, value, excludeID, "BrandExists")
}
