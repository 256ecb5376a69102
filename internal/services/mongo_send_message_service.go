package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dayoung0-0/zero-to-agile-frontend/internal/models"
)

const (
	sendMessagesCollection   = "send_messages"
	finderRequestsCollection = "finder_requests"
	ownerHouseCollection     = "owner_house"
	usersCollection          = "users"
)

// mongoSendMessageService implements ISendMessageService by joining the
// backend collections directly.
type mongoSendMessageService struct {
	db *mongo.Database
}

// NewSendMessageService creates a Mongo-backed ISendMessageService.
func NewSendMessageService(db *mongo.Database) ISendMessageService {
	return &mongoSendMessageService{db: db}
}

// ListSendMessages returns every proposal made on the current finder's requests.
// Order is the collection's natural order.
func (s *mongoSendMessageService) ListSendMessages(ctx context.Context) ([]models.SendMessageDetail, error) {
	finderID, err := finderIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.aggregate(ctx, detailPipeline(finderID, nil))
	if err != nil {
		return nil, err
	}
	return results, nil
}

// FindSendMessageByID returns one proposal made on the current finder's requests.
func (s *mongoSendMessageService) FindSendMessageByID(ctx context.Context, sendMessageID int64) (*models.SendMessageDetail, error) {
	finderID, err := finderIDFrom(ctx)
	if err != nil {
		return nil, err
	}

	results, err := s.aggregate(ctx, detailPipeline(finderID, &sendMessageID))
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrSendMessageNotFound, sendMessageID)
	}
	return &results[0], nil
}

func (s *mongoSendMessageService) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.SendMessageDetail, error) {
	cursor, err := s.db.Collection(sendMessagesCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to execute send message query: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.SendMessageDetail{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode send message results: %w", err)
	}
	return results, nil
}

func finderIDFrom(ctx context.Context) (string, error) {
	fc, ok := FinderContextFrom(ctx)
	if !ok || fc.FinderID == "" {
		return "", ErrFinderNotIdentified
	}
	return fc.FinderID, nil
}

// detailPipeline builds the send_messages -> finder_requests / owner_house / users join.
func detailPipeline(finderID string, sendMessageID *int64) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if sendMessageID != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"send_message_id": *sendMessageID}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         finderRequestsCollection,
			"localField":   "finder_request_id",
			"foreignField": "finder_request_id",
			"as":           "finder_request",
		}}},
		bson.D{{Key: "$match", Value: bson.M{"finder_request.abang_user_id": finderID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         ownerHouseCollection,
			"localField":   "owner_house_id",
			"foreignField": "owner_house_id",
			"as":           "house",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$house", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "house.abang_user_id",
			"foreignField": "abang_user_id",
			"as":           "owner",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":                0,
			"send_message_id":    1,
			"owner_house_id":     1,
			"finder_request_id":  1,
			"accept_type":        1,
			"message":            1,
			"created_at":         1,
			"updated_at":         1,
			"house_title":        "$house.title",
			"house_address":      "$house.address",
			"house_price":        "$house.price",
			"house_deposit":      "$house.deposit",
			"house_monthly_rent": "$house.rent",
			"house_type":         "$house.house_type",
			"owner_name":         "$owner.name",
			"owner_phone":        "$owner.phone",
			"abang_user_id":      "$house.abang_user_id",
			"address":            "$house.address",
			"price_type":         "$house.price_type",
			"deposit":            "$house.deposit",
			"rent":               "$house.rent",
			"is_active":          "$house.is_active",
			"open_from":          bson.M{"$toString": "$house.open_from"},
			"open_to":            bson.M{"$toString": "$house.open_to"},
			"house_created_at":   bson.M{"$toString": "$house.created_at"},
			"house_updated_at":   bson.M{"$toString": "$house.updated_at"},
		}}},
	)
	return pipeline
}
