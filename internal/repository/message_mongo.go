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

type mongoMessageRepo struct {
	coll *mongo.Collection
}

func NewMongoMessageRepository(coll *mongo.Collection) MessageRepository {
	// conversation range queries filter on both direction pairs
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, _ = coll.Indexes().CreateMany(context.Background(), idx)
	return &mongoMessageRepo{coll: coll}
}

func (r *mongoMessageRepo) Insert(ctx context.Context, m *models.Message) (*models.Message, error) {
	now := time.Now().UTC()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	m.IsRead = false

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return nil, apperr.Storage(err)
	}
	return m, nil
}

func (r *mongoMessageRepo) GetConversation(ctx context.Context, userA, userB string, limit int64, before string) ([]*models.Message, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"sender_id": userA, "receiver_id": userB},
			bson.M{"sender_id": userB, "receiver_id": userA},
		},
	}
	if before != "" {
		oid, err := primitive.ObjectIDFromHex(before)
		if err != nil {
			return nil, apperr.Validation("before")
		}
		filter["_id"] = bson.M{"$lt": oid}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit)
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var out []*models.Message
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, &m)
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	// newest-first window, returned ascending for direct rendering
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *mongoMessageRepo) MarkConversationRead(ctx context.Context, senderID, receiverID string) error {
	filter := bson.M{"sender_id": senderID, "receiver_id": receiverID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now().UTC()}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return apperr.Storage(err)
	}
	return nil
}

func (r *mongoMessageRepo) MarkMessageRead(ctx context.Context, messageID string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, apperr.Validation("message_id")
	}
	update := bson.M{"$set": bson.M{"is_read": true, "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m models.Message
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, apperr.Storage(err)
	}
	return &m, nil
}

func (r *mongoMessageRepo) ListConversations(ctx context.Context, userID string, limit int64) ([]*models.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"receiver_id": userID},
		}}}},
		{{Key: "$addFields", Value: bson.M{"partner": bson.M{
			"$cond": bson.A{bson.M{"$eq": bson.A{"$sender_id", userID}}, "$receiver_id", "$sender_id"},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$group", Value: bson.M{"_id": "$partner", "last_message": bson.M{"$first": "$$ROOT"}}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message.created_at", Value: -1}, {Key: "last_message._id", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer cur.Close(ctx)

	var out []*models.ConversationSummary
	for cur.Next(ctx) {
		var row struct {
			Partner     string         `bson:"_id"`
			LastMessage models.Message `bson:"last_message"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, apperr.Storage(err)
		}
		m := row.LastMessage
		out = append(out, &models.ConversationSummary{PartnerID: row.Partner, LastMessage: &m})
	}
	if err := cur.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
