package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"renthouse-auth/pkg/cerror"
	"renthouse-auth/pkg/config"
)

//go:generate mockgen -source=repository.go -destination=mock_repository_test.go -package=user

type Repository interface {
	CreateIndexes(ctx context.Context) error
	InsertUser(ctx context.Context, user *UserDocument) error
	FindUserWithId(ctx context.Context, userId string) (*UserDocument, error)
	// FindUserWithEmail returns nil without error when no user has the email.
	FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error)
	IsFieldTaken(ctx context.Context, field, value string) (bool, error)
	RecordLogin(ctx context.Context, userId string, at time.Time) error
	AttachProvider(ctx context.Context, userId string, attachment ProviderAttachment) error
	// TouchSession matches on id and email together and returns the updated user.
	TouchSession(ctx context.Context, userId, email string, at time.Time) (*UserDocument, error)
}

// DuplicateKeyError is returned by InsertUser when a unique index rejects the document.
type DuplicateKeyError struct {
	Index string
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on index %q: %s", e.Index, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

type repository struct {
	collection *mongo.Collection
}

func NewRepository(mongoClient *mongo.Client, mongodbConfig config.MongodbConfig) Repository {
	collection := mongoClient.
		Database(mongodbConfig.Database).
		Collection(mongodbConfig.Collections[config.MongodbUserCollection])

	return &repository{
		collection: collection,
	}
}

func (r *repository) CreateIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: FieldEmail, Value: 1}},
			Options: options.Index().SetName(IndexEmail).SetUnique(true),
		},
		{
			Keys: bson.D{{Key: FieldNidNumber, Value: 1}},
			Options: options.Index().
				SetName(IndexNidNumber).
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: FieldNidNumber, Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
		{
			Keys: bson.D{{Key: FieldPhoneNumber, Value: 1}},
			Options: options.Index().
				SetName(IndexPhoneNumber).
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: FieldPhoneNumber, Value: bson.D{{Key: "$type", Value: "string"}}}}),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while create user indexes",
			zap.Error(err),
		)
	}

	return nil
}

func (r *repository) InsertUser(ctx context.Context, user *UserDocument) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{
				Index: duplicateKeyIndex(err),
				Err:   err,
			}
		}

		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert user",
			zap.Error(err),
		)
	}

	return nil
}

func (r *repository) FindUserWithId(ctx context.Context, userId string) (*UserDocument, error) {
	var user UserDocument

	filter := bson.D{{Key: "_id", Value: userId}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cerror.ErrorUserNotFound.WithFields(zap.String("userId", userId))
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user with id",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error) {
	var user UserDocument

	filter := bson.D{{Key: FieldEmail, Value: email}}
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while find user with email",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) IsFieldTaken(ctx context.Context, field, value string) (bool, error) {
	filter := bson.D{{Key: field, Value: value}}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while user existing check",
			zap.String("field", field),
			zap.Error(err),
		)
	}

	return count > 0, nil
}

func (r *repository) RecordLogin(ctx context.Context, userId string, at time.Time) error {
	update := bson.D{
		{Key: "$inc", Value: bson.D{{Key: "loginCount", Value: 1}}},
		{Key: "$max", Value: bson.D{
			{Key: "lastLogin", Value: at},
			{Key: "updatedAt", Value: at},
		}},
	}

	return r.updateUser(ctx, userId, update, "error occurred while record login")
}

func (r *repository) AttachProvider(ctx context.Context, userId string, attachment ProviderAttachment) error {
	providerIdField, ok := providerIdFields[attachment.Provider]
	if !ok {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"unknown authentication provider",
			zap.String("provider", attachment.Provider),
		)
	}

	set := bson.D{{Key: providerIdField, Value: attachment.ProviderId}}
	if attachment.ProfileImage != "" {
		set = append(set, bson.E{Key: "profileImage", Value: attachment.ProfileImage})
	}

	update := bson.D{
		{Key: "$set", Value: set},
		{Key: "$inc", Value: bson.D{{Key: "loginCount", Value: 1}}},
		{Key: "$max", Value: bson.D{
			{Key: "lastLogin", Value: attachment.At},
			{Key: "updatedAt", Value: attachment.At},
		}},
	}

	return r.updateUser(ctx, userId, update, "error occurred while attach provider to user")
}

func (r *repository) TouchSession(ctx context.Context, userId, email string, at time.Time) (*UserDocument, error) {
	filter := bson.D{
		{Key: "_id", Value: userId},
		{Key: FieldEmail, Value: email},
	}
	update := bson.D{
		{Key: "$max", Value: bson.D{
			{Key: "lastActivity", Value: at},
			{Key: "lastTokenRefresh", Value: at},
			{Key: "updatedAt", Value: at},
		}},
	}
	findOneAndUpdateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user UserDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, findOneAndUpdateOptions).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cerror.ErrorUserNotFound.WithFields(zap.String("userId", userId))
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while touch user session",
			zap.Error(err),
		)
	}

	return &user, nil
}

func (r *repository) updateUser(ctx context.Context, userId string, update bson.D, logMessage string) error {
	filter := bson.D{{Key: "_id", Value: userId}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			logMessage,
			zap.String("userId", userId),
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.ErrorUserNotFound.WithFields(zap.String("userId", userId))
	}

	return nil
}

// duplicateKeyIndex extracts the index name from messages like
// "E11000 duplicate key error collection: renthouse.users index: email_unique dup key: {...}".
func duplicateKeyIndex(err error) string {
	message := err.Error()
	for index := range conflictMessages {
		if strings.Contains(message, "index: "+index) {
			return index
		}
	}
	return ""
}
