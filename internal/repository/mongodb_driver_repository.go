package repository

import (
	"context"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBDriverRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBDriverRepository(db *mongo.Database) DriverRepository {
	return &MongoDBDriverRepositoryImpl{db: db}
}

func (r *MongoDBDriverRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(driversCollection)
}

func (r *MongoDBDriverRepositoryImpl) AddDriver(ctx context.Context, data domain.Driver) (id primitive.ObjectID, err error) {
	return insertOne(ctx, r.collection(), data, "AddDriver")
}

func (r *MongoDBDriverRepositoryImpl) GetDrivers(ctx context.Context) (data []domain.Driver, err error) {
	cursor, err := r.collection().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDrivers").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.Driver, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetDrivers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBDriverRepositoryImpl) GetDriverByID(ctx context.Context, id string) (driver domain.Driver, err error) {
	err = findByID(ctx, r.collection(), id, &driver, "GetDriverByID")
	return
}

func (r *MongoDBDriverRepositoryImpl) UpdateDriver(ctx context.Context, data domain.Driver) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "phone", Value: data.Phone},
		{Key: "pin", Value: data.PIN},
		{Key: "vehicle", Value: data.Vehicle},
	}}}

	return updateByID(ctx, r.collection(), data.ID, update, "UpdateDriver")
}

func (r *MongoDBDriverRepositoryImpl) DeleteDriver(ctx context.Context, id string) (err error) {
	return deleteByID(ctx, r.collection(), id, "DeleteDriver")
}

func (r *MongoDBDriverRepositoryImpl) DriverExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error) {
	return existsIn(ctx, r.collection(), field, value, excludeID, "DriverExists")
}
