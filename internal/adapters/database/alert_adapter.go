package database

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

// AlertAdapter implements health alert persistence in DynamoDB. Expired
// rows are reaped by the table's TTL on expiresAt.
type AlertAdapter struct {
	db    DynamoAPI
	table string
}

// NewAlertAdapter creates a new alert adapter.
func NewAlertAdapter(db DynamoAPI, table string) repositories.AlertRepository {
	return &AlertAdapter{db: db, table: table}
}

// Create stores an alert.
func (a *AlertAdapter) Create(ctx context.Context, alert *entities.HealthAlert) error {
	item, err := attributevalue.MarshalMap(alert)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal alert", err)
	}

	_, err = a.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awsStr(a.table),
		Item:      item,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to store alert", err)
	}
	return nil
}

// ListByUser returns a user's alerts, newest first.
func (a *AlertAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.HealthAlert, error) {
	out, err := a.db.Scan(ctx, &dynamodb.ScanInput{
		TableName:        awsStr(a.table),
		FilterExpression: awsStr("userId = :userId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list alerts", err)
	}

	var alerts []*entities.HealthAlert
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &alerts); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal alerts", err)
	}

	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
	if limit > 0 && len(alerts) > limit {
		alerts = alerts[:limit]
	}
	return alerts, nil
}
