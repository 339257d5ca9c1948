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

type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(colTasks)}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if t.Status == "" {
		t.Status = entity.StatusPending
	}
	if t.Priority == "" {
		t.Priority = entity.PriorityMedium
	}
	t.CreatedAt = time.Now()
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, owner string, f repository.TaskFilter) ([]*entity.Task, error) {
	oid, err := objectID(owner)
	if err != nil {
		return nil, err
	}
	filter := bson.M{"user": oid, "is_deleted": false}
	if f.DueBefore != nil {
		filter["due_date"] = bson.M{"$lte": *f.DueBefore}
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	return r.find(ctx, filter)
}

func (r *TaskRepository) ListAssigned(ctx context.Context, email string) ([]*entity.Task, error) {
	return r.find(ctx, bson.M{"assigned_to": email, "is_deleted": false})
}

func (r *TaskRepository) ListDeleted(ctx context.Context, owner string) ([]*entity.Task, error) {
	oid, err := objectID(owner)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"user": oid, "is_deleted": true})
}

func (r *TaskRepository) Update(ctx context.Context, id, owner string, upd repository.TaskUpdate) (*entity.Task, error) {
	tid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(owner)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		set["status"] = *upd.Status
	}
	if upd.DueDate != nil {
		set["due_date"] = *upd.DueDate
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.AssignedTo != nil {
		set["assigned_to"] = *upd.AssignedTo
	}
	if len(set) == 0 {
		// Nothing to change; still confirm the task exists and is owned.
		t := &entity.Task{}
		err := r.col.FindOne(ctx, bson.M{"_id": tid, "user": uid, "is_deleted": false}).Decode(t)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return t, err
	}

	return r.findOneAndUpdate(ctx,
		bson.M{"_id": tid, "user": uid, "is_deleted": false},
		bson.M{"$set": set})
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id, actorID, actorEmail, status string) (*entity.Task, error) {
	tid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(actorID)
	if err != nil {
		return nil, err
	}
	filter := bson.M{
		"_id":        tid,
		"is_deleted": false,
		"$or": bson.A{
			bson.M{"user": uid},
			bson.M{"assigned_to": actorEmail},
		},
	}
	return r.findOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"status": status}})
}

func (r *TaskRepository) SoftDelete(ctx context.Context, id, owner string) error {
	tid, err := objectID(id)
	if err != nil {
		return err
	}
	uid, err := objectID(owner)
	if err != nil {
		return err
	}
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": tid, "user": uid},
		bson.M{"$set": bson.M{"is_deleted": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Restore(ctx context.Context, id, owner string) (*entity.Task, error) {
	tid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	uid, err := objectID(owner)
	if err != nil {
		return nil, err
	}
	return r.findOneAndUpdate(ctx,
		bson.M{"_id": tid, "user": uid, "is_deleted": true},
		bson.M{"$set": bson.M{"is_deleted": false}})
}

func (r *TaskRepository) RestoreAll(ctx context.Context, owner string) (int64, error) {
	uid, err := objectID(owner)
	if err != nil {
		return 0, err
	}
	res, err := r.col.UpdateMany(ctx,
		bson.M{"user": uid, "is_deleted": true},
		bson.M{"$set": bson.M{"is_deleted": false}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *TaskRepository) DeletePermanent(ctx context.Context, id, owner string) error {
	tid, err := objectID(id)
	if err != nil {
		return err
	}
	uid, err := objectID(owner)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": tid, "user": uid, "is_deleted": true})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) DeleteAllDeleted(ctx context.Context, owner string) (int64, error) {
	uid, err := objectID(owner)
	if err != nil {
		return 0, err
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"user": uid, "is_deleted": true})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *TaskRepository) ListDueBefore(ctx context.Context, cutoff time.Time) ([]*entity.Task, error) {
	return r.find(ctx, bson.M{
		"due_date":   bson.M{"$lt": cutoff},
		"status":     bson.M{"$ne": entity.StatusCompleted},
		"is_deleted": false,
	})
}

func (r *TaskRepository) ListDueBeforeForOwner(ctx context.Context, owner string, cutoff time.Time) ([]*entity.Task, error) {
	uid, err := objectID(owner)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{
		"user":       uid,
		"due_date":   bson.M{"$lt": cutoff},
		"status":     bson.M{"$ne": entity.StatusCompleted},
		"is_deleted": false,
	})
}

func (r *TaskRepository) DeleteAllForOwner(ctx context.Context, owner string) error {
	uid, err := objectID(owner)
	if err != nil {
		return err
	}
	_, err = r.col.DeleteMany(ctx, bson.M{"user": uid})
	return err
}

func (r *TaskRepository) InsertMany(ctx context.Context, tasks []*entity.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(tasks))
	for _, t := range tasks {
		docs = append(docs, t)
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]*entity.Task, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()
	tasks := []*entity.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*entity.Task, error) {
	t := &entity.Task{}
	err := r.col.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
