package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
)

type mongoUserRepo struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(coll *mongo.Collection) UserRepository {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_idx"),
	}
	_, _ = coll.Indexes().CreateOne(context.Background(), idx)
	return &mongoUserRepo{coll: coll}
}

func (r *mongoUserRepo) Insert(ctx context.Context, u *models.User) (*models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperr.ErrConflict
		}
		return nil, apperr.Storage(err)
	}
	return u, nil
}

func (r *mongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Storage(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Storage(err)
	}
	return &u, nil
}

func (r *mongoUserRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	u.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"name":       u.Name,
		"bio":        u.Bio,
		"skills":     u.Skills,
		"avatar_url": u.AvatarURL,
		"updated_at": u.UpdatedAt,
	}}
	res, err := r.coll.UpdateByID(ctx, u.ID, update)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

func (r *mongoUserRepo) GetManyByIDs(ctx context.Context, ids []string) ([]*models.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, &u)
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
