package repository

import (
	"context"
	"time"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(productsCollection)
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	now := time.Now().UTC()
	data.CreatedAt = now
	data.UpdatedAt = now

	return insertOne(ctx, r.collection(), data, "AddProduct")
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, query domain.ProductQuery) (data []domain.ProductView, err error) {
	pipeline, err := buildProductPipeline(query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.ProductView, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	err = findByID(ctx, r.collection(), id, &product, "GetProductByID")
	return
}

func (r *MongoDBProductRepositoryImpl) GetProductViewByID(ctx context.Context, id string) (product domain.ProductView, err error) {
	productID, err := parseObjectID(id)
	if err != nil {
		return
	}

	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.D{{Key: "_id", Value: productID}}}}}
	pipeline = append(pipeline, lookupStages("category", categoriesCollection)...)
	pipeline = append(pipeline, lookupStages("brand", brandsCollection)...)

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductViewByID").Msg("")
		return
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err = cursor.Err(); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "GetProductViewByID").Msg("")
			return
		}
		return product, errs.ErrNotFound
	}

	if err = cursor.Decode(&product); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductViewByID").Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "code", Value: data.Code},
		{Key: "barcode", Value: data.Barcode},
		{Key: "title", Value: data.Title},
		{Key: "description", Value: data.Description},
		{Key: "price", Value: data.Price},
		{Key: "image", Value: data.Image},
		{Key: "stock", Value: data.Stock},
		{Key: "stock_alert", Value: data.StockAlert},
		{Key: "category", Value: data.Category},
		{Key: "brand", Value: data.Brand},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	return updateByID(ctx, r.collection(), data.ID, update, "UpdateProduct")
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	return deleteByID(ctx, r.collection(), id, "DeleteProduct")
}

func (r *MongoDBProductRepositoryImpl) IncrementViews(ctx context.Context, id string) (err error) {
	productID, err := parseObjectID(id)
	if err != nil {
		return
	}

	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "views", Value: 1}}}}

	return updateByID(ctx, r.collection(), productID, update, "IncrementViews")
}

func (r *MongoDBProductRepositoryImpl) GetCategoryCounts(ctx context.Context) (data []domain.CategoryCount, err error) {
	cursor, err := r.collection().Aggregate(ctx, buildCategoryCountPipeline())
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategoryCounts").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.CategoryCount, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetCategoryCounts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) ProductExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error) {
	return existsIn(ctx, r.collection(), field, value, excludeID, "ProductExists")
}

