package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(colNotifications)}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, n)
	if err != nil {
		return err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipient string) ([]*entity.Notification, error) {
	uid, err := objectID(recipient)
	if err != nil {
		return nil, err
	}
	cur, err := r.col.Find(ctx, bson.M{"user": uid},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	out := []*entity.Notification{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipient string) (*entity.Notification, error) {
	nid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(recipient)
	if err != nil {
		return nil, err
	}
	n := &entity.Notification{}
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": nid, "user": uid},
		bson.M{"$set": bson.M{"read": true}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient string) error {
	uid, err := objectID(recipient)
	if err != nil {
		return err
	}
	_, err = r.col.UpdateMany(ctx,
		bson.M{"user": uid, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

func (r *NotificationRepository) Delete(ctx context.Context, id, recipient string) error {
	nid, err := objectID(id)
	if err != nil {
		return err
	}
	uid, err := objectID(recipient)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": nid, "user": uid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) DeleteAllForRecipient(ctx context.Context, recipient string) error {
	uid, err := objectID(recipient)
	if err != nil {
		return err
	}
	_, err = r.col.DeleteMany(ctx, bson.M{"user": uid})
	return err
}

func (r *NotificationRepository) InsertMany(ctx context.Context, ns []*entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(ns))
	for _, n := range ns {
		docs = append(docs, n)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)
