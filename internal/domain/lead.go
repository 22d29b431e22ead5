package domain

import "time"

// Tracking carries the optional marketing identifiers captured on submission.
// All fields default to absent; they are never required.
type Tracking struct {
	UTMSource   *string
	UTMMedium   *string
	UTMCampaign *string
	UTMTerm     *string
	UTMContent  *string
	GCLID       *string
	FBCLID      *string
}

// SubmissionInfo records where a lead submission came from.
type SubmissionInfo struct {
	IPAddress   string
	UserAgent   string
	Referrer    string
	SubmittedAt time.Time
}

type Lead struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Position       string
	BirthDate      time.Time
	Message        string
	Tracking       Tracking
	SubmissionInfo SubmissionInfo
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeadUpdate is an explicit partial-update structure: only non-nil fields
// are written. This replaces document-style dynamic field merging with
// field-by-field merge semantics.
type LeadUpdate struct {
	Name      *string
	Email     *string
	Phone     *string
	Position  *string
	BirthDate *time.Time
	Message   *string
	IsActive  *bool
}

// Empty reports whether the update carries no fields at all.
func (u LeadUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil &&
		u.Position == nil && u.BirthDate == nil && u.Message == nil && u.IsActive == nil
}

// Age computes full calendar years between birth and now: year difference,
// minus one when the birth month/day has not yet occurred this year.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}
