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

const defaultListLimit = 100

// ReportAdapter implements pollution report persistence in DynamoDB.
type ReportAdapter struct {
	db    DynamoAPI
	table string
}

// NewReportAdapter creates a new report adapter.
func NewReportAdapter(db DynamoAPI, table string) repositories.ReportRepository {
	return &ReportAdapter{db: db, table: table}
}

// Create inserts a report row.
func (a *ReportAdapter) Create(ctx context.Context, report *entities.PollutionReport) error {
	item, err := attributevalue.MarshalMap(report)
	if err != nil {
		return apperrors.NewInternalError("failed to marshal report", err)
	}

	_, err = a.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           awsStr(a.table),
		Item:                item,
		ConditionExpression: awsStr("attribute_not_exists(reportId)"),
	})
	if err != nil {
		return apperrors.NewInternalError("failed to create report", err)
	}
	return nil
}

// GetByID fetches a single report.
func (a *ReportAdapter) GetByID(ctx context.Context, reportID string) (*entities.PollutionReport, error) {
	out, err := a.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"reportId": &types.AttributeValueMemberS{Value: reportID},
		},
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to fetch report", err)
	}
	if out.Item == nil {
		return nil, apperrors.NewNotFoundError("Report not found")
	}

	var report entities.PollutionReport
	if err := attributevalue.UnmarshalMap(out.Item, &report); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal report", err)
	}
	return &report, nil
}

// List scans the table and filters in memory, newest first. The managed
// deployment does the same; report volume per city stays small enough
// that a scan beats maintaining extra indexes for every filter combo.
func (a *ReportAdapter) List(ctx context.Context, filter repositories.ReportFilter) ([]*entities.PollutionReport, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	out, err := a.db.Scan(ctx, &dynamodb.ScanInput{
		TableName: awsStr(a.table),
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reports", err)
	}

	var reports []*entities.PollutionReport
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &reports); err != nil {
		return nil, apperrors.NewInternalError("failed to unmarshal reports", err)
	}

	filtered := reports[:0]
	for _, r := range reports {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Severity != "" && r.Severity != filter.Severity {
			continue
		}
		if filter.Barangay != "" && r.Location.Barangay != filter.Barangay {
			continue
		}
		if filter.City != "" && r.Location.City != filter.City {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].TimestampMS > filtered[j].TimestampMS
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// UpdateStatus moves a report to a new lifecycle state.
func (a *ReportAdapter) UpdateStatus(ctx context.Context, reportID string, status entities.ReportStatus) error {
	_, err := a.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: awsStr(a.table),
		Key: map[string]types.AttributeValue{
			"reportId": &types.AttributeValueMemberS{Value: reportID},
		},
		UpdateExpression: awsStr("SET #status = :status, isVerified = :verified"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status":   &types.AttributeValueMemberS{Value: string(status)},
			":verified": &types.AttributeValueMemberBOOL{Value: status == entities.StatusVerified},
		},
	})
	if err != nil {
		return apperrors.NewInternalError("failed to update report status", err)
	}
	return nil
}
