package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecogai/pollution-backend/internal/adapters/database"
	"github.com/ecogai/pollution-backend/internal/domain/entities"
	"github.com/ecogai/pollution-backend/internal/domain/repositories"
	apperrors "github.com/ecogai/pollution-backend/pkg/errors"
)

func scanOutputFor(t *testing.T, reports ...*entities.PollutionReport) *dynamodb.ScanOutput {
	t.Helper()
	items := make([]map[string]types.AttributeValue, 0, len(reports))
	for _, report := range reports {
		item, err := attributevalue.MarshalMap(report)
		require.NoError(t, err)
		items = append(items, item)
	}
	return &dynamodb.ScanOutput{Items: items}
}

func storedReport(id, userID string, severity entities.Severity, timestampMS int64) *entities.PollutionReport {
	return &entities.PollutionReport{
		ID:          id,
		UserID:      userID,
		Location:    entities.Location{Latitude: 14.6760, Longitude: 121.0437, Barangay: "Commonwealth"},
		Type:        entities.PollutionAir,
		Severity:    severity,
		Status:      entities.StatusPending,
		TimestampMS: timestampMS,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestReportAdapter_List_FiltersAndSortsNewestFirst(t *testing.T) {
	stub := &stubDynamo{
		scanFn: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			return scanOutputFor(t,
				storedReport("report-old", "user-1", entities.SeverityHigh, 1000),
				storedReport("report-new", "user-1", entities.SeverityHigh, 3000),
				storedReport("report-other-user", "user-2", entities.SeverityHigh, 2000),
				storedReport("report-low", "user-1", entities.SeverityLow, 4000),
			), nil
		},
	}
	adapter := database.NewReportAdapter(stub, "reports")

	reports, err := adapter.List(context.Background(), repositories.ReportFilter{
		UserID:   "user-1",
		Severity: entities.SeverityHigh,
	})
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, "report-new", reports[0].ID)
	assert.Equal(t, "report-old", reports[1].ID)
}

func TestReportAdapter_List_AppliesLimit(t *testing.T) {
	stub := &stubDynamo{
		scanFn: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			return scanOutputFor(t,
				storedReport("report-1", "user-1", entities.SeverityHigh, 1000),
				storedReport("report-2", "user-1", entities.SeverityHigh, 2000),
				storedReport("report-3", "user-1", entities.SeverityHigh, 3000),
			), nil
		},
	}
	adapter := database.NewReportAdapter(stub, "reports")

	reports, err := adapter.List(context.Background(), repositories.ReportFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "report-3", reports[0].ID)
}

func TestReportAdapter_GetByID_NotFound(t *testing.T) {
	adapter := database.NewReportAdapter(&stubDynamo{}, "reports")

	_, err := adapter.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func TestReportAdapter_UpdateStatus_SetsVerifiedFlag(t *testing.T) {
	var captured *dynamodb.UpdateItemInput
	stub := &stubDynamo{
		updateFn: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			captured = in
			return &dynamodb.UpdateItemOutput{}, nil
		},
	}
	adapter := database.NewReportAdapter(stub, "reports")

	require.NoError(t, adapter.UpdateStatus(context.Background(), "report-1", entities.StatusVerified))
	require.NotNil(t, captured)

	assert.Equal(t, "SET #status = :status, isVerified = :verified", *captured.UpdateExpression)
	status := captured.ExpressionAttributeValues[":status"].(*types.AttributeValueMemberS)
	assert.Equal(t, "verified", status.Value)
	verified := captured.ExpressionAttributeValues[":verified"].(*types.AttributeValueMemberBOOL)
	assert.True(t, verified.Value)
}

func TestVerificationAdapter_Roundtrip(t *testing.T) {
	verification := &entities.Verification{
		Email:     "maria@example.com",
		Code:      "0427",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}
	item, err := attributevalue.MarshalMap(verification)
	require.NoError(t, err)

	var deleted string
	stub := &stubDynamo{
		getFn: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		},
		deleteFn: func(in *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error) {
			deleted = in.Key["email"].(*types.AttributeValueMemberS).Value
			return &dynamodb.DeleteItemOutput{}, nil
		},
	}
	adapter := database.NewVerificationAdapter(stub, "verifications")
	ctx := context.Background()

	require.NoError(t, adapter.Put(ctx, verification))

	fetched, err := adapter.Get(ctx, "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "0427", fetched.Code)

	require.NoError(t, adapter.Delete(ctx, "maria@example.com"))
	assert.Equal(t, "maria@example.com", deleted)
}

func TestVerificationAdapter_Get_NoPendingCode(t *testing.T) {
	adapter := database.NewVerificationAdapter(&stubDynamo{}, "verifications")

	_, err := adapter.Get(context.Background(), "maria@example.com")
	require.Error(t, err)
	assert.Equal(t, 404, apperrors.StatusCode(err))
}

func TestAlertAdapter_ListByUser_NewestFirstWithLimit(t *testing.T) {
	now := time.Now().UTC()
	older := &entities.HealthAlert{ID: "alert-old", UserID: "user-1", CreatedAt: now.Add(-time.Hour)}
	newer := &entities.HealthAlert{ID: "alert-new", UserID: "user-1", CreatedAt: now}

	items := make([]map[string]types.AttributeValue, 0, 2)
	for _, alert := range []*entities.HealthAlert{older, newer} {
		item, err := attributevalue.MarshalMap(alert)
		require.NoError(t, err)
		items = append(items, item)
	}

	stub := &stubDynamo{
		scanFn: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
			assert.Equal(t, "userId = :userId", *in.FilterExpression)
			return &dynamodb.ScanOutput{Items: items}, nil
		},
	}
	adapter := database.NewAlertAdapter(stub, "alerts")

	alerts, err := adapter.ListByUser(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "alert-new", alerts[0].ID)
}
