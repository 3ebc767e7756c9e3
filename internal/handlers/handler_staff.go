package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/SscSPs/claims_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// staffHandler handles HTTP requests related to staff administration.
type staffHandler struct {
	staffService portssvc.StaffSvcFacade
}

func newStaffHandler(ss portssvc.StaffSvcFacade) *staffHandler {
	return &staffHandler{staffService: ss}
}

// registerStaffRoutes registers routes related to staff.
func registerStaffRoutes(rg *gin.RouterGroup, staffService portssvc.StaffSvcFacade) {
	h := newStaffHandler(staffService)

	staff := rg.Group("/staff")
	{
		staff.POST("", h.createStaff)
		staff.GET("", h.listStaff)
		staff.GET("/:staffID", h.getStaff)
		staff.PUT("/:staffID", h.updateStaff)
		staff.POST("/:staffID/deactivate", h.deactivateStaff)
	}
}

// createStaff godoc
// @Summary Register a staff member
// @Description Admin only. Role and department must be a valid pair.
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   staff body dto.CreateStaffRequest true "Staff details"
// @Success 201 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [post]
func (h *staffHandler) createStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create staff")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Staff created", slog.String("staff_id", staff.StaffID))
	c.JSON(http.StatusCreated, dto.ToStaffResponse(staff))
}

// listStaff godoc
// @Summary List staff
// @Tags staff
// @Produce  json
// @Param   role query string false "Role filter"
// @Param   activeOnly query bool false "Only active staff" default(true)
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListStaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff [get]
func (h *staffHandler) listStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListStaffParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	staff, err := h.staffService.ListStaff(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStaffResponse(staff))
}

// getStaff godoc
// @Summary Get a staff member
// @Description Staff may read their own record; admins may read anyone's.
// @Tags staff
// @Produce  json
// @Param   staffID path string true "Staff ID"
// @Success 200 {object} dto.StaffResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{staffID} [get]
func (h *staffHandler) getStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	staff, err := h.staffService.GetStaffByID(c.Request.Context(), actor, c.Param("staffID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// updateStaff godoc
// @Summary Update a staff member
// @Tags staff
// @Accept  json
// @Produce  json
// @Param   staffID path string true "Staff ID"
// @Param   staff body dto.UpdateStaffRequest true "Fields to update"
// @Success 200 {object} dto.StaffResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{staffID} [put]
func (h *staffHandler) updateStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), actor, c.Param("staffID"), req)
	if err != nil {
		respondError(c, err, "Failed to update staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToStaffResponse(staff))
}

// deactivateStaff godoc
// @Summary Deactivate a staff member
// @Description Inactive staff can no longer log in or be picked as an approver or finance handler.
// @Tags staff
// @Param   staffID path string true "Staff ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /staff/{staffID}/deactivate [post]
func (h *staffHandler) deactivateStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.staffService.DeactivateStaff(c.Request.Context(), actor, c.Param("staffID")); err != nil {
		respondError(c, err, "Failed to deactivate staff")
		return
	}
	c.Status(http.StatusNoContent)
}
