package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// registerProjectRoutes registers routes related to projects and their rosters.
func registerProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:projectID", h.getProject)
		projects.POST("/:projectID/staff", h.assignStaff)
		projects.DELETE("/:projectID/staff/:staffID", h.removeStaff)
	}
}

// createProject godoc
// @Summary Create a project
// @Description Admin only. The manager must be a PROJECT_MANAGEMENT approver and the leader a BUSINESS_UNIT_LEADER approver.
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Project code already used"
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Tags projects
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProjectsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	var params dto.ListProjectsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	projects, err := h.projectService.ListProjects(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectsResponse(projects))
}

// getProject godoc
// @Summary Get a project with its roster
// @Tags projects
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	project, err := h.projectService.GetProject(c.Request.Context(), c.Param("projectID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// assignStaff godoc
// @Summary Add a staff member to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   projectID path string true "Project ID"
// @Param   assignment body dto.AssignProjectStaffRequest true "Staff to add"
// @Success 200 {object} dto.ProjectResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already a member"
// @Security BearerAuth
// @Router /projects/{projectID}/staff [post]
func (h *projectHandler) assignStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.AssignProjectStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.AssignStaff(c.Request.Context(), actor, c.Param("projectID"), req)
	if err != nil {
		respondError(c, err, "Failed to assign staff")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// removeStaff godoc
// @Summary Remove a staff member from a project
// @Tags projects
// @Param   projectID path string true "Project ID"
// @Param   staffID path string true "Staff ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /projects/{projectID}/staff/{staffID} [delete]
func (h *projectHandler) removeStaff(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.projectService.RemoveStaff(c.Request.Context(), actor, c.Param("projectID"), c.Param("staffID")); err != nil {
		respondError(c, err, "Failed to remove staff")
		return
	}
	c.Status(http.StatusNoContent)
}
