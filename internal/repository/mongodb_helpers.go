package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	productsCollection   = "products"
	categoriesCollection = "categories"
	brandsCollection     = "brands"
	driversCollection    = "drivers"
	usersCollection      = "users"
)

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return objectID, fmt.Errorf("invalid id %q: %w", id, errs.ErrValidation)
	}
	return objectID, nil
}

// uniqueFilter matches documents holding value in field, other than excludeID.
func uniqueFilter(field string, value string, excludeID primitive.ObjectID) bson.D {
	filter := bson.D{{Key: field, Value: value}}
	if !excludeID.IsZero() {
		filter = append(filter, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}})
	}
	return filter
}

func existsIn(ctx context.Context, coll *mongo.Collection, field string, value string, excludeID primitive.ObjectID, component string) (bool, error) {
	count, err := coll.CountDocuments(ctx, uniqueFilter(field, value, excludeID))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return false, err
	}
	return count > 0, nil
}

func findByID(ctx context.Context, coll *mongo.Collection, id string, out interface{}, component string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	err = coll.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.ErrNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return err
	}

	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, component string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	result, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return err
	}

	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, update bson.D, component string) error {
	result, err := coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return mapWriteError(err)
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, data interface{}, component string) (primitive.ObjectID, error) {
	result, err := coll.InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", component).Msg("")
		return primitive.NilObjectID, mapWriteError(err)
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("unique index violated: %w", errs.ErrDuplicate)
	}
	return err
}
