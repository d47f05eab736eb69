package controller

import (
	"context"
	"strconv"
	"time"

	"enquirydesk-backend/models"
	"enquirydesk-backend/services"
	"enquirydesk-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

type EnquiryController struct {
	ctx            context.Context
	enquiryService services.EnquiryServiceInterface
	logger         logger.Logger
}

func NewEnquiryController(ctx context.Context, enquiryService services.EnquiryServiceInterface, log logger.Logger) *EnquiryController {
	return &EnquiryController{
		ctx:            ctx,
		enquiryService: enquiryService,
		logger:         log,
	}
}

// CreateEnquiry handles POST /api/v1/enquiries
// @Summary Submit a new enquiry
// @Description Public endpoint for customers to submit an enquiry
// @Tags Enquiries
// @Accept json
// @Produce json
// @Param request body models.CreateEnquiryRequest true "Enquiry submission"
// @Success 201 {object} models.APIResponse "Enquiry submitted successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid enquiry data"
// @Router /enquiries [post]
func (h *EnquiryController) CreateEnquiry(c *gin.Context) {
	var req models.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	meta := models.EnquiryMetadata{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Source:    "Website",
	}

	enquiry, err := h.enquiryService.CreateEnquiry(c.Request.Context(), &req, meta)
	if err != nil {
		h.logger.Error("Failed to create enquiry", err)
		respondError(c, "Failed to submit enquiry", err)
		return
	}

	respondCreated(c, "Enquiry submitted successfully", enquiry)
}

// ListEnquiries handles GET /api/v1/enquiries
// @Summary List enquiries
// @Description Filtered, sorted and paginated enquiry list
// @Tags Enquiries
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-100)"
// @Param status query string false "Filter by status"
// @Param service query string false "Filter by service"
// @Param priority query string false "Filter by priority"
// @Param assigned_to query string false "Filter by assigned admin"
// @Param search query string false "Search name, email and subject"
// @Param date_from query string false "Created-at range start (RFC3339)"
// @Param date_to query string false "Created-at range end (RFC3339)"
// @Param sort_by query string false "Sort field"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} models.APIResponse "Enquiries retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid query parameters"
// @Router /enquiries [get]
func (h *EnquiryController) ListEnquiries(c *gin.Context) {
	filter, opts, err := parseListQuery(c)
	if err != nil {
		h.logger.Error("Invalid list query", err)
		respondError(c, "Invalid query parameters", err)
		return
	}

	list, err := h.enquiryService.ListEnquiries(c.Request.Context(), filter, opts)
	if err != nil {
		h.logger.Error("Failed to list enquiries", err)
		respondError(c, "Failed to retrieve enquiries", err)
		return
	}

	respondOK(c, "Enquiries retrieved successfully", list)
}

func parseListQuery(c *gin.Context) (models.EnquiryFilter, models.ListOptions, error) {
	var verrs models.ValidationErrors

	filter := models.EnquiryFilter{
		Status:     models.EnquiryStatus(c.Query("status")),
		Service:    models.ServiceType(c.Query("service")),
		Priority:   models.EnquiryPriority(c.Query("priority")),
		AssignedTo: c.Query("assigned_to"),
		Search:     c.Query("search"),
	}

	if v := c.Query("date_from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			verrs = verrs.Add("date_from", "Must be an RFC3339 timestamp")
		} else {
			filter.DateFrom = &t
		}
	}
	if v := c.Query("date_to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			verrs = verrs.Add("date_to", "Must be an RFC3339 timestamp")
		} else {
			filter.DateTo = &t
		}
	}

	opts := models.ListOptions{
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if v := c.Query("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			verrs = verrs.Add("page", "Page must be a positive integer")
		} else {
			opts.Page = p
		}
	}
	if v := c.Query("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			verrs = verrs.Add("limit", "Limit must be an integer between 1 and 100")
		} else {
			opts.Limit = l
		}
	}

	if len(verrs) > 0 {
		return filter, opts, verrs
	}
	return filter, opts, nil
}

// GetEnquiry handles GET /api/v1/enquiries/:id
// @Summary Get enquiry by ID
// @Tags Enquiries
// @Security BearerAuth
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} models.APIResponse "Enquiry retrieved successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid enquiry ID"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id} [get]
func (h *EnquiryController) GetEnquiry(c *gin.Context) {
	enquiry, err := h.enquiryService.GetEnquiry(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to get enquiry", err)
		respondError(c, "Failed to retrieve enquiry", err)
		return
	}

	respondOK(c, "Enquiry retrieved successfully", enquiry)
}

// UpdateStatus handles PATCH /api/v1/enquiries/:id/status
// @Summary Update enquiry status
// @Description Sets a new status and appends a status history entry
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.UpdateStatusRequest true "New status with optional reason"
// @Success 200 {object} models.APIResponse "Status updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid status"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/status [patch]
func (h *EnquiryController) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	var actor *string
	if name := c.GetString("admin_name"); name != "" {
		actor = &name
	}

	enquiry, err := h.enquiryService.UpdateStatus(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		h.logger.Error("Failed to update status", err)
		respondError(c, "Failed to update status", err)
		return
	}

	respondOK(c, "Status updated successfully", enquiry)
}

// AddNote handles POST /api/v1/enquiries/:id/notes
// @Summary Add a note to an enquiry
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.AddNoteRequest true "Note payload"
// @Success 200 {object} models.APIResponse "Note added successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid note"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/notes [post]
func (h *EnquiryController) AddNote(c *gin.Context) {
	var req models.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	enquiry, err := h.enquiryService.AddNote(c.Request.Context(), c.Param("id"), &req, c.GetString("admin_name"))
	if err != nil {
		h.logger.Error("Failed to add note", err)
		respondError(c, "Failed to add note", err)
		return
	}

	respondOK(c, "Note added successfully", enquiry)
}

// AssignEnquiry handles PATCH /api/v1/enquiries/:id/assign
// @Summary Assign or unassign an enquiry
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.AssignRequest true "Assignment payload (null to unassign)"
// @Success 200 {object} models.APIResponse "Enquiry assigned successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/assign [patch]
func (h *EnquiryController) AssignEnquiry(c *gin.Context) {
	var req models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	enquiry, err := h.enquiryService.AssignEnquiry(c.Request.Context(), c.Param("id"), req.AssignedTo)
	if err != nil {
		h.logger.Error("Failed to assign enquiry", err)
		respondError(c, "Failed to assign enquiry", err)
		return
	}

	respondOK(c, "Enquiry assigned successfully", enquiry)
}

// UpdatePriority handles PATCH /api/v1/enquiries/:id/priority
// @Summary Update enquiry priority
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.UpdatePriorityRequest true "Priority payload"
// @Success 200 {object} models.APIResponse "Priority updated successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid priority"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/priority [patch]
func (h *EnquiryController) UpdatePriority(c *gin.Context) {
	var req models.UpdatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	enquiry, err := h.enquiryService.UpdatePriority(c.Request.Context(), c.Param("id"), req.Priority)
	if err != nil {
		h.logger.Error("Failed to update priority", err)
		respondError(c, "Failed to update priority", err)
		return
	}

	respondOK(c, "Priority updated successfully", enquiry)
}

// AddTags handles POST /api/v1/enquiries/:id/tags
// @Summary Add tags to an enquiry
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.AddTagsRequest true "Tags payload"
// @Success 200 {object} models.APIResponse "Tags added successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid tags"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/tags [post]
func (h *EnquiryController) AddTags(c *gin.Context) {
	var req models.AddTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	enquiry, err := h.enquiryService.AddTags(c.Request.Context(), c.Param("id"), req.Tags)
	if err != nil {
		h.logger.Error("Failed to add tags", err)
		respondError(c, "Failed to add tags", err)
		return
	}

	respondOK(c, "Tags added successfully", enquiry)
}

// SetFollowUp handles PATCH /api/v1/enquiries/:id/follow-up
// @Summary Schedule a follow-up
// @Tags Enquiries
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Enquiry ID"
// @Param request body models.SetFollowUpRequest true "Follow-up date payload"
// @Success 200 {object} models.APIResponse "Follow-up date set successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid follow-up date"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id}/follow-up [patch]
func (h *EnquiryController) SetFollowUp(c *gin.Context) {
	var req models.SetFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind JSON:", err)
		respondBadRequest(c, "Invalid request", err.Error())
		return
	}

	enquiry, err := h.enquiryService.SetFollowUpDate(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.logger.Error("Failed to set follow-up date", err)
		respondError(c, "Failed to set follow-up date", err)
		return
	}

	respondOK(c, "Follow-up date set successfully", enquiry)
}

// DeleteEnquiry handles DELETE /api/v1/enquiries/:id
// @Summary Delete an enquiry
// @Tags Enquiries
// @Security BearerAuth
// @Produce json
// @Param id path string true "Enquiry ID"
// @Success 200 {object} models.APIResponse "Enquiry deleted successfully"
// @Failure 400 {object} models.APIResponse "Bad Request - Invalid enquiry ID"
// @Failure 404 {object} models.APIResponse "Not Found - Enquiry does not exist"
// @Router /enquiries/{id} [delete]
func (h *EnquiryController) DeleteEnquiry(c *gin.Context) {
	id := c.Param("id")

	if err := h.enquiryService.DeleteEnquiry(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete enquiry", err)
		respondError(c, "Failed to delete enquiry", err)
		return
	}

	respondOK(c, "Enquiry deleted successfully", map[string]interface{}{
		"deleted_id": id,
	})
}

// GetFollowUps handles GET /api/v1/enquiries/follow-ups
// @Summary List enquiries due for follow-up
// @Tags Enquiries
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.APIResponse "Follow-ups retrieved successfully"
// @Router /enquiries/follow-ups [get]
func (h *EnquiryController) GetFollowUps(c *gin.Context) {
	enquiries, err := h.enquiryService.GetFollowUps(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get follow-ups", err)
		respondError(c, "Failed to retrieve follow-ups", err)
		return
	}

	respondOK(c, "Follow-ups retrieved successfully", map[string]interface{}{
		"count":     len(enquiries),
		"enquiries": enquiries,
	})
}

// GetActivityFeed handles GET /api/v1/enquiries/activity
// @Summary Recent activity feed
// @Description Status changes, public notes and submissions, newest first
// @Tags Enquiries
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum events to return (default 20)"
// @Success 200 {object} models.APIResponse "Activity retrieved successfully"
// @Router /enquiries/activity [get]
func (h *EnquiryController) GetActivityFeed(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 {
			limit = l
		}
	}

	events, err := h.enquiryService.GetActivityFeed(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to get activity feed", err)
		respondError(c, "Failed to retrieve activity", err)
		return
	}

	respondOK(c, "Activity retrieved successfully", map[string]interface{}{
		"count":  len(events),
		"events": events,
	})
}
