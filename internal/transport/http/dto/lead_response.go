package dto

import (
	"time"

	"github.com/leadcapture/lead-service/internal/application/lead"
	"github.com/leadcapture/lead-service/internal/domain"
)

// TrackingView serializes UTM fields; absent values render as null,
// matching what marketing dashboards expect.
type TrackingView struct {
	UTMSource   *string `json:"utmSource"`
	UTMMedium   *string `json:"utmMedium"`
	UTMCampaign *string `json:"utmCampaign"`
	UTMTerm     *string `json:"utmTerm"`
	UTMContent  *string `json:"utmContent"`
	GCLID       *string `json:"gclid"`
	FBCLID      *string `json:"fbclid"`
}

type SubmissionInfoView struct {
	IPAddress   string    `json:"ipAddress"`
	UserAgent   string    `json:"userAgent,omitempty"`
	Referrer    string    `json:"referrer,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// LeadView is the standard lead payload.
type LeadView struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Position       string             `json:"position"`
	BirthDate      string             `json:"birthDate"`
	Message        string             `json:"message,omitempty"`
	Tracking       TrackingView       `json:"tracking"`
	SubmissionInfo SubmissionInfoView `json:"submissionInfo"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func NewLeadView(l domain.Lead) LeadView {
	return LeadView{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		Position:  l.Position,
		BirthDate: l.BirthDate.Format(birthDateLayout),
		Message:   l.Message,
		Tracking: TrackingView{
			UTMSource:   l.Tracking.UTMSource,
			UTMMedium:   l.Tracking.UTMMedium,
			UTMCampaign: l.Tracking.UTMCampaign,
			UTMTerm:     l.Tracking.UTMTerm,
			UTMContent:  l.Tracking.UTMContent,
			GCLID:       l.Tracking.GCLID,
			FBCLID:      l.Tracking.FBCLID,
		},
		SubmissionInfo: SubmissionInfoView{
			IPAddress:   l.SubmissionInfo.IPAddress,
			UserAgent:   l.SubmissionInfo.UserAgent,
			Referrer:    l.SubmissionInfo.Referrer,
			SubmittedAt: l.SubmissionInfo.SubmittedAt,
		},
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

// PaginationView summarizes a page of results.
type PaginationView struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// LeadListData is the data payload of the listing endpoint.
type LeadListData struct {
	Items      []LeadView     `json:"items"`
	Pagination PaginationView `json:"pagination"`
}

func NewLeadListData(res lead.ListResult) LeadListData {
	items := make([]LeadView, 0, len(res.Items))
	for _, l := range res.Items {
		items = append(items, NewLeadView(l))
	}
	return LeadListData{
		Items: items,
		Pagination: PaginationView{
			CurrentPage:  res.Pagination.CurrentPage,
			TotalPages:   res.Pagination.TotalPages,
			TotalItems:   res.Pagination.TotalItems,
			ItemsPerPage: res.Pagination.ItemsPerPage,
		},
	}
}

// LeadStatsData is the data payload of the stats endpoint.
type LeadStatsData struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	ThisMonth int `json:"thisMonth"`
}

func NewLeadStatsData(s lead.Stats) LeadStatsData {
	return LeadStatsData{
		Total:     s.Total,
		Active:    s.Active,
		Inactive:  s.Inactive,
		ThisMonth: s.ThisMonth,
	}
}
