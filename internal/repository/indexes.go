package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var uniqueFields = map[string][]string{
	productsCollection:   {"code", "barcode", "title"},
	categoriesCollection: {"name", "slug"},
	brandsCollection:     {"name", "slug"},
	driversCollection:    {"pin", "vehicle"},
	usersCollection:      {"email", "external_id"},
}

// EnsureIndexes creates the unique indexes backing the uniqueness checks done
// by the services, plus the lookup indexes used by the catalog filter.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, fields := range uniqueFields {
		models := make([]mongo.IndexModel, 0, len(fields))
		for _, field := range fields {
			models = append(models, mongo.IndexModel{
				Keys:    bson.D{{Key: field, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}

		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Str("collection", collection).Msg("")
			return err
		}
	}

	_, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureIndexes").Str("collection", productsCollection).Msg("")
		return err
	}

	return nil
}
