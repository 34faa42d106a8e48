package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-music-gateway/internal/domain"
	"github.com/go-music-gateway/internal/pkg/id"
)

// SearchHistoryRepo provides typed DynamoDB operations for search analytics.
type SearchHistoryRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSearchHistoryRepo(client *dynamodb.Client, tableName string) *SearchHistoryRepo {
	return &SearchHistoryRepo{client: client, tableName: tableName}
}

// Put stores one search event. The entry id is generated here when absent.
func (r *SearchHistoryRepo) Put(ctx context.Context, h *domain.SearchHistory) error {
	if h.EntryID == "" {
		h.EntryID = id.New()
	}
	item, err := attributevalue.MarshalMap(h)
	if err != nil {
		return fmt.Errorf("marshal search history: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByUser returns the user's most recent searches, newest first.
func (r *SearchHistoryRepo) ListByUser(ctx context.Context, userID int64, limit int32) ([]domain.SearchHistory, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :u"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberN{Value: strconv.FormatInt(userID, 10)},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	})
	if err != nil {
		return nil, err
	}
	var history []domain.SearchHistory
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &history); err != nil {
		return nil, err
	}
	return history, nil
}
