package persistence

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type attachmentDoc struct {
	ID  string `bson:"_id"`
	URL string `bson:"url"`
}

// MediaRepository resolves attachments stored in MongoDB.
type MediaRepository struct {
	attachments *mongo.Collection
	featured    *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{
		attachments: db.Collection("attachments"),
		featured:    db.Collection("featured_images"),
	}
}

// ImageURL returns "" for unknown ids.
func (r *MediaRepository) ImageURL(ctx context.Context, imageID string) (string, error) {
	var doc attachmentDoc
	err := r.attachments.FindOne(ctx, bson.D{{Key: "_id", Value: imageID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return doc.URL, nil
}

func (r *MediaRepository) SetFeaturedImage(ctx context.Context, itemID, imageID string) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "image_id", Value: imageID},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}
	_, err := r.featured.UpdateOne(ctx, bson.D{{Key: "_id", Value: itemID}}, update, options.UpdateOne().SetUpsert(true))
	return err
}
