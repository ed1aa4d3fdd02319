package repository

import (
	"context"
	"time"

	"github.com/Sodstar/mountain-pos/internal/domain"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDBUserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBUserRepository(db *mongo.Database) UserRepository {
	return &MongoDBUserRepositoryImpl{db: db}
}

func (r *MongoDBUserRepositoryImpl) collection() *mongo.Collection {
	return r.db.Collection(usersCollection)
}

func (r *MongoDBUserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	now := time.Now().UTC()
	data.CreatedAt = now
	data.UpdatedAt = now

	return insertOne(ctx, r.collection(), data, "AddUser")
}

func (r *MongoDBUserRepositoryImpl) GetUsers(ctx context.Context) (data []domain.User, err error) {
	cursor, err := r.collection().Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = make([]domain.User, 0)
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *MongoDBUserRepositoryImpl) GetUserByID(ctx context.Context, id string) (user domain.User, err error) {
	err = findByID(ctx, r.collection(), id, &user, "GetUserByID")
	return
}

func (r *MongoDBUserRepositoryImpl) UpdateUser(ctx context.Context, data domain.User) (err error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "email", Value: data.Email},
		{Key: "phone", Value: data.Phone},
		{Key: "image", Value: data.Image},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	return updateByID(ctx, r.collection(), data.ID, update, "UpdateUser")
}

func (r *MongoDBUserRepositoryImpl) UpdateUserRole(ctx context.Context, id string, role domain.Role) (err error) {
	userID, err := parseObjectID(id)
	if err != nil {
		return
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "role", Value: role},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	return updateByID(ctx, r.collection(), userID, update, "UpdateUserRole")
}

func (r *MongoDBUserRepositoryImpl) UpdateUserPassword(ctx context.Context, id string, hashedPassword string) (err error) {
	userID, err := parseObjectID(id)
	if err != nil {
		return
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hashedPassword},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	return updateByID(ctx, r.collection(), userID, update, "UpdateUserPassword")
}

func (r *MongoDBUserRepositoryImpl) DeleteUser(ctx context.Context, id string) (err error) {
	return deleteByID(ctx, r.collection(), id, "DeleteUser")
}

func (r *MongoDBUserRepositoryImpl) UserExists(ctx context.Context, field string, value string, excludeID primitive.ObjectID) (exists bool, err error) {
	return existsIn(ctx, r.collection(), field, value, excludeID, "UserExists")
}
