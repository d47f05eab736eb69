package services

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"enquirydesk-backend/models"
)

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"name":      true,
	"email":     true,
	"status":    true,
	"service":   true,
	"priority":  true,
}

// ListEnquiries runs the admin list view: filter, sort, then paginate over
// the full table scan. All filter criteria are ANDed together; the search
// term alone fans out over name, email and subject.
func (s *EnquiryService) ListEnquiries(ctx context.Context, filter models.EnquiryFilter, opts models.ListOptions) (*models.EnquiryList, error) {
	if err := validateListRequest(&filter, &opts); err != nil {
		return nil, err
	}

	all, err := s.repo.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Enquiry, 0, len(all))
	for _, e := range all {
		if matchesFilter(e, &filter) {
			filtered = append(filtered, e)
		}
	}

	sortEnquiries(filtered, opts.SortBy, opts.SortOrder)

	total := len(filtered)
	totalPages := (total + opts.Limit - 1) / opts.Limit

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	page := filtered[start:end]

	return &models.EnquiryList{
		Enquiries: page,
		Pagination: models.Pagination{
			Page:       opts.Page,
			Limit:      opts.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    opts.Page < totalPages,
			HasPrev:    opts.Page > 1,
		},
	}, nil
}

// validateListRequest rejects out-of-range parameters rather than clamping
// them, and fills in the defaults for omitted ones.
func validateListRequest(filter *models.EnquiryFilter, opts *models.ListOptions) error {
	var verrs models.ValidationErrors

	if opts.Page == 0 {
		opts.Page = 1
	}
	if opts.Page < 1 {
		verrs = verrs.Add("page", "Page must be a positive integer")
	}

	if opts.Limit == 0 {
		opts.Limit = 10
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		verrs = verrs.Add("limit", "Limit must be between 1 and 100")
	}

	if opts.SortBy == "" {
		opts.SortBy = "createdAt"
	}
	if !sortableFields[opts.SortBy] {
		verrs = verrs.Add("sort_by", "Invalid sort field")
	}

	if opts.SortOrder == "" {
		opts.SortOrder = "desc"
	}
	if opts.SortOrder != "asc" && opts.SortOrder != "desc" {
		verrs = verrs.Add("sort_order", "Sort order must be asc or desc")
	}

	if filter.Status != "" && !isValidStatus(filter.Status) {
		verrs = verrs.Add("status", "Invalid status value")
	}
	if filter.Service != "" && !isValidService(filter.Service) {
		verrs = verrs.Add("service", "Invalid service value")
	}
	if filter.Priority != "" && !isValidPriority(filter.Priority) {
		verrs = verrs.Add("priority", "Invalid priority value")
	}
	if utf8.RuneCountInString(filter.Search) > 100 {
		verrs = verrs.Add("search", "Search term cannot exceed 100 characters")
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		verrs = verrs.Add("date_to", "Date range end cannot precede its start")
	}

	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

func matchesFilter(e *models.Enquiry, filter *models.EnquiryFilter) bool {
	if filter.Status != "" && e.Status != filter.Status {
		return false
	}
	if filter.Service != "" && e.Service != filter.Service {
		return false
	}
	if filter.Priority != "" && e.Priority != filter.Priority {
		return false
	}
	if filter.AssignedTo != "" {
		if e.AssignedTo == nil || *e.AssignedTo != filter.AssignedTo {
			return false
		}
	}
	if filter.DateFrom != nil && e.CreatedAt.Before(*filter.DateFrom) {
		return false
	}
	if filter.DateTo != nil && e.CreatedAt.After(*filter.DateTo) {
		return false
	}
	if filter.Search != "" {
		term := strings.ToLower(strings.TrimSpace(filter.Search))
		if !strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Email), term) &&
			!strings.Contains(strings.ToLower(e.Subject), term) {
			return false
		}
	}
	return true
}

func sortEnquiries(enquiries []*models.Enquiry, field, order string) {
	sort.SliceStable(enquiries, func(i, j int) bool {
		a, b := enquiries[i], enquiries[j]
		if order == "desc" {
			a, b = b, a
		}
		switch field {
		case "updatedAt":
			return a.UpdatedAt.Before(b.UpdatedAt)
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "email":
			return a.Email < b.Email
		case "status":
			return a.Status < b.Status
		case "service":
			return a.Service < b.Service
		case "priority":
			return a.Priority < b.Priority
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
