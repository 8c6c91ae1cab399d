package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"books-api/internal/model"
)

type MongoBookRepository struct {
	coll *mongo.Collection
}

func NewMongoBookRepository(coll *mongo.Collection) *MongoBookRepository {
	return &MongoBookRepository{coll: coll}
}

func (r *MongoBookRepository) Insert(ctx context.Context, book *model.Book) error {
	if missing := book.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	// Mongo stores datetimes at millisecond precision; truncate up front so
	// the in-process value matches what a re-read returns.
	now := time.Now().UTC().Truncate(time.Millisecond)
	book.ID = primitive.NewObjectID()
	book.CreatedAt = now
	book.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, book); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *MongoBookRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer cur.Close(ctx)

	books := []model.Book{}
	if err := cur.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *MongoBookRepository) FindByID(ctx context.Context, id string) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var book model.Book
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&book); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find book %s: %w", id, err)
	}
	return &book, nil
}

func (r *MongoBookRepository) ReplaceByID(ctx context.Context, id string, book *model.Book) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	if missing := book.MissingFields(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}

	update := bson.M{"$set": bson.M{
		"title":         book.Title,
		"author":        book.Author,
		"publishedYear": book.PublishedYear,
		"price":         book.Price,
		"updatedAt":     time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Book
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("replace book %s: %w", id, err)
	}
	return &updated, nil
}

func (r *MongoBookRepository) DeleteByID(ctx context.Context, id string) (*model.Book, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var deleted model.Book
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&deleted); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete book %s: %w", id, err)
	}
	return &deleted, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
