package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/task-manager-pro/internal/domain/entity"
	"github.com/oksasatya/task-manager-pro/internal/domain/repository"
)

type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(colUserSettings)}
}

func (r *SettingsRepository) GetByUser(ctx context.Context, user string) (*entity.UserSettings, error) {
	uid, err := objectID(user)
	if err != nil {
		return nil, err
	}
	s := &entity.UserSettings{}
	if err := r.col.FindOne(ctx, bson.M{"user": uid}).Decode(s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SettingsRepository) Upsert(ctx context.Context, s *entity.UserSettings) error {
	s.UpdatedAt = time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = s.UpdatedAt
	}
	_, err := r.col.UpdateOne(ctx,
		bson.M{"user": s.User},
		bson.M{"$set": bson.M{
			"notifications": s.Notifications,
			"privacy":       s.Privacy,
			"updated_at":    s.UpdatedAt,
		}, "$setOnInsert": bson.M{
			"user":       s.User,
			"created_at": s.CreatedAt,
		}},
		options.Update().SetUpsert(true))
	return err
}

func (r *SettingsRepository) DeleteForUser(ctx context.Context, user string) error {
	uid, err := objectID(user)
	if err != nil {
		return err
	}
	_, err = r.col.DeleteMany(ctx, bson.M{"user": uid})
	return err
}

var _ repository.SettingsRepository = (*SettingsRepository)(nil)
