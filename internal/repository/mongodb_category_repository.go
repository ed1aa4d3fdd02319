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

type MongoDBCategoryRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBCategoryRepository(db *mongo.Database) CategoryRepository {
	return &MongoDBCategoryRepositoryImpl{db: db}
}

func (r *MongoDBCategoryRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(categoriesCollection)
}

func (r *MongoDBCategoryRepositoryImpl) AddCategory(ctx context.Context, data domain.Category) (id primitive.ObjectID, err error) {
	return insertOne(ctx, r.collection(), data, "AddCategory")
}

func (r *MongoDBCategoryRepositoryImpl) GetCategories(ctx context.Context) (data []domain.Category, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategories").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.Category, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategories").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBCategoryRepositoryImpl) GetCategoryByID(ctx context.Context, id string) (category domain.Category, err error) {
	err = findByID(ctx, r.collection(), id, &category, "GetCategoryByID")
	return
}

func (r *MongoDBCategoryRepositoryImpl) GetCategoryBySlug(ctx context.Context, slug string) (category domain.Category, err error) {
	err = r.collection().FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return category, errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategoryBySlug").Msg("")
	}

	return
}

func (r *MongoDBCategoryRepositoryImpl) UpdateCategory(ctx context.Context, data domain.Category) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "description", Value: data.Description},
		{Key: "slug", Value: data.Slug},
	}}}

	return updateByID(ctx, r.collection(), data.ID, update, "UpdateCategory")
}

func (r *MongoDBCategoryRepositoryImpl) DeleteCategory(ctx context.Context, id string) (err error) {
	return deleteByID(ctx, r.collection(), id, "DeleteCategory")
}

func (r *MongoDBCategoryRepositoryImpl) CategoryExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error) {
	return existsIn(ctx, r.collection(), field, value, excludeID, "CategoryExists")
}
