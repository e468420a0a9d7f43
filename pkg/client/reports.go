package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ReportFilter narrows a report listing.
type ReportFilter struct {
	PollutionType string
	Severity      string
	Barangay      string
	City          string
	Limit         int
}

type reportList struct {
	Reports []Report `json:"reports"`
	Count   int      `json:"count"`
}

// CreateReport submits a pollution report for the logged-in user. The
// login and location guards run before any network I/O.
func (c *Client) CreateReport(ctx context.Context, draft ReportDraft) (*ReportReceipt, error) {
	if !c.session.LoggedIn() {
		return nil, errors.New("User not logged in")
	}
	if draft.Location == nil {
		return nil, errors.New("Missing photo or location data")
	}

	body := struct {
		UserID string `json:"userId"`
		ReportDraft
	}{UserID: c.session.UserID, ReportDraft: draft}

	var receipt ReportReceipt
	if err := c.Post(ctx, "/reports", body, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListReports fetches reports matching the filter, newest first.
func (c *Client) ListReports(ctx context.Context, filter ReportFilter) ([]Report, error) {
	query := url.Values{}
	if filter.PollutionType != "" {
		query.Set("pollutionType", filter.PollutionType)
	}
	if filter.Severity != "" {
		query.Set("severity", filter.Severity)
	}
	if filter.Barangay != "" {
		query.Set("barangay", filter.Barangay)
	}
	if filter.City != "" {
		query.Set("city", filter.City)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}

	endpoint := "/reports"
	if encoded := query.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var list reportList
	if err := c.Get(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list.Reports, nil
}

// GetReport fetches a single report.
func (c *Client) GetReport(ctx context.Context, reportID string) (*Report, error) {
	var report Report
	if err := c.Get(ctx, fmt.Sprintf("/reports/%s", reportID), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// UserReports fetches every report submitted by a user.
func (c *Client) UserReports(ctx context.Context, userID string) ([]Report, error) {
	var list reportList
	if err := c.Get(ctx, fmt.Sprintf("/reports/user/%s", userID), &list); err != nil {
		return nil, err
	}
	return list.Reports, nil
}
