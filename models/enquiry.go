package models

import "time"

// EnquiryStatus represents the lifecycle state of an enquiry
type EnquiryStatus string

const (
	EnquiryStatusNew        EnquiryStatus = "New"
	EnquiryStatusInProgress EnquiryStatus = "In Progress"
	EnquiryStatusCompleted  EnquiryStatus = "Completed"
	EnquiryStatusClosed     EnquiryStatus = "Closed"
)

// EnquiryPriority represents how urgently an enquiry should be handled
type EnquiryPriority string

const (
	PriorityLow    EnquiryPriority = "Low"
	PriorityMedium EnquiryPriority = "Medium"
	PriorityHigh   EnquiryPriority = "High"
	PriorityUrgent EnquiryPriority = "Urgent"
)

// ServiceType is the single authoritative service enumeration shared by
// validation and storage.
type ServiceType string

const (
	ServiceSoftwareDevelopment ServiceType = "Software Development"
	ServiceDigitalMarketing    ServiceType = "Digital Marketing"
	ServiceVideoEditing        ServiceType = "Video Editing"
	ServiceMentoring           ServiceType = "Mentoring"
	ServiceOther               ServiceType = "Other"
)

// ValidStatuses lists every accepted enquiry status.
var ValidStatuses = []EnquiryStatus{
	EnquiryStatusNew,
	EnquiryStatusInProgress,
	EnquiryStatusCompleted,
	EnquiryStatusClosed,
}

// ValidPriorities lists every accepted enquiry priority.
var ValidPriorities = []EnquiryPriority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityUrgent,
}

// ValidServices lists every accepted service type.
var ValidServices = []ServiceType{
	ServiceSoftwareDevelopment,
	ServiceDigitalMarketing,
	ServiceVideoEditing,
	ServiceMentoring,
	ServiceOther,
}

// StatusHistoryEntry records a single status change. Entries are append-only;
// the reason is part of the entry from the moment it is written.
type StatusHistoryEntry struct {
	Status    EnquiryStatus `json:"status" dynamodbav:"status"`
	ChangedBy *string       `json:"changed_by,omitempty" dynamodbav:"changed_by,omitempty"`
	ChangedAt time.Time     `json:"changed_at" dynamodbav:"changed_at"`
	Reason    *string       `json:"reason,omitempty" dynamodbav:"reason,omitempty"`
}

// Note is an admin note attached to an enquiry. Notes are append-only.
type Note struct {
	Note      string    `json:"note" dynamodbav:"note"`
	AddedBy   string    `json:"added_by" dynamodbav:"added_by"`
	AddedAt   time.Time `json:"added_at" dynamodbav:"added_at"`
	IsPrivate bool      `json:"is_private" dynamodbav:"is_private"`
}

// EnquiryMetadata captures request context at submission time and is never
// mutated afterwards.
type EnquiryMetadata struct {
	IPAddress string `json:"ip_address,omitempty" dynamodbav:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty" dynamodbav:"user_agent,omitempty"`
	Source    string `json:"source,omitempty" dynamodbav:"source,omitempty"`
}

// Enquiry is the aggregate root of the system: a customer-submitted request
// for services plus its full admin-side lifecycle.
type Enquiry struct {
	ID            string               `json:"id" dynamodbav:"id"`
	Name          string               `json:"name" dynamodbav:"name"`
	Email         string               `json:"email" dynamodbav:"email"`
	Phone         string               `json:"phone" dynamodbav:"phone"`
	Service       ServiceType          `json:"service" dynamodbav:"service"`
	Subject       string               `json:"subject" dynamodbav:"subject"`
	Message       string               `json:"message" dynamodbav:"message"`
	Status        EnquiryStatus        `json:"status" dynamodbav:"status"`
	Priority      EnquiryPriority      `json:"priority" dynamodbav:"priority"`
	StatusHistory []StatusHistoryEntry `json:"status_history" dynamodbav:"status_history"`
	Notes         []Note               `json:"notes" dynamodbav:"notes"`
	Tags          []string             `json:"tags,omitempty" dynamodbav:"tags,omitempty"`
	AssignedTo    *string              `json:"assigned_to,omitempty" dynamodbav:"assigned_to,omitempty"`
	FollowUpDate  *time.Time           `json:"follow_up_date,omitempty" dynamodbav:"follow_up_date,omitempty"`
	Metadata      EnquiryMetadata      `json:"metadata" dynamodbav:"metadata"`
	CreatedAt     time.Time            `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at" dynamodbav:"updated_at"`
}

// CreateEnquiryRequest is the public submission payload
// @Description Customer enquiry form submission
type CreateEnquiryRequest struct {
	Name    string `json:"name" binding:"required" example:"John Doe"`
	Email   string `json:"email" binding:"required,email" example:"john@example.com"`
	Phone   string `json:"phone" binding:"required" example:"+919876543210"`
	Service string `json:"service" binding:"required" example:"Software Development"`
	Subject string `json:"subject,omitempty" example:"Enquiry for Software Development Services"`
	Message string `json:"message" binding:"required" example:"I need help building a web application"`
}

// UpdateStatusRequest is the admin status-change payload
type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required" example:"In Progress"`
	Reason *string `json:"reason,omitempty" example:"Work started"`
}

// AddNoteRequest is the admin note payload
type AddNoteRequest struct {
	Note      string `json:"note" binding:"required" example:"Customer called back"`
	IsPrivate bool   `json:"is_private,omitempty"`
}

// AssignRequest sets or clears the assigned admin
type AssignRequest struct {
	AssignedTo *string `json:"assigned_to"`
}

// UpdatePriorityRequest is the admin priority payload
type UpdatePriorityRequest struct {
	Priority string `json:"priority" binding:"required" example:"High"`
}

// AddTagsRequest attaches tags to an enquiry
type AddTagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

// SetFollowUpRequest schedules a follow-up
type SetFollowUpRequest struct {
	FollowUpDate time.Time `json:"follow_up_date" binding:"required"`
}

// EnquiryFilter is the conjunctive filter applied by list queries. Zero-value
// fields are omitted from the predicate entirely.
type EnquiryFilter struct {
	Status     EnquiryStatus
	Service    ServiceType
	Priority   EnquiryPriority
	AssignedTo string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ListOptions controls pagination and sorting of list queries.
type ListOptions struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Pagination is the paging metadata returned alongside list results.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// EnquiryList bundles a page of enquiries with its pagination metadata.
type EnquiryList struct {
	Enquiries  []*Enquiry `json:"enquiries"`
	Pagination Pagination `json:"pagination"`
}

// EnquirySummary is the narrow projection used by dashboard overview and
// export calls so notes and history never leak into those responses.
type EnquirySummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	Service   ServiceType   `json:"service"`
	Status    EnquiryStatus `json:"status"`
	Subject   string        `json:"subject,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Summary projects an enquiry down to its dashboard fields.
func (e *Enquiry) Summary() EnquirySummary {
	return EnquirySummary{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Phone:     e.Phone,
		Service:   e.Service,
		Status:    e.Status,
		Subject:   e.Subject,
		CreatedAt: e.CreatedAt,
	}
}

// ActivityEvent is a single entry of the enquiry activity feed.
type ActivityEvent struct {
	Type        string                 `json:"type"`
	EnquiryID   string                 `json:"enquiry_id"`
	EnquiryName string                 `json:"enquiry_name"`
	Timestamp   time.Time              `json:"timestamp"`
	Actor       string                 `json:"actor"`
	Data        map[string]interface{} `json:"data,omitempty"`
}
