package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/claims_app/internal/core/domain"
	portssvc "github.com/SscSPs/claims_app/internal/core/ports/services"
	"github.com/SscSPs/claims_app/internal/dto"
	"github.com/SscSPs/claims_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// claimHandler handles HTTP requests related to claims.
type claimHandler struct {
	claimService portssvc.ClaimSvcFacade
}

func newClaimHandler(cs portssvc.ClaimSvcFacade) *claimHandler {
	return &claimHandler{claimService: cs}
}

// RegisterClaimRoutes registers all claim routes under rg. rg must run AuthMiddleware.
func RegisterClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade) {
	registerValidations()
	h := newClaimHandler(claimService)

	claims := rg.Group("/claims")
	{
		claims.POST("", h.createClaim)
		claims.GET("", h.listClaims)
		claims.GET("/counts", h.getStatusCounts)
		claims.GET("/:claimID", h.getClaim)
		claims.PUT("/:claimID", h.updateClaim)
		claims.GET("/:claimID/changelogs", h.listChangeLogs)

		claims.POST("/:claimID/submit", h.transition("submit", claimService.SubmitClaim))
		claims.POST("/:claimID/approve", h.transition("approve", claimService.ApproveClaim))
		claims.POST("/:claimID/pay", h.transition("pay", claimService.PayClaim))
		claims.POST("/:claimID/reject", h.transitionWithReason("reject", claimService.RejectClaim))
		claims.POST("/:claimID/return", h.transitionWithReason("return", claimService.ReturnClaim))
		claims.POST("/:claimID/cancel", h.transitionWithReason("cancel", claimService.CancelClaim))
	}
}

// createClaim godoc
// @Summary Create a draft claim
// @Description Opens a new claim in Draft owned by the caller. A project, when given, must list the caller as a member.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   claim body dto.CreateClaimRequest true "Claim details"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Failure 422 {object} ErrorResponse "Caller is not a project member"
// @Security BearerAuth
// @Router /claims [post]
func (h *claimHandler) createClaim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	claim, err := h.claimService.CreateClaim(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to create claim")
		return
	}
	c.JSON(http.StatusCreated, dto.ToClaimResponse(claim))
}

// updateClaim godoc
// @Summary Update a draft claim
// @Description Edits fields of a Draft claim. The claimant, an approver on the claim or its assigned finance may edit. Changing the project clears the approver set.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   claimID path string true "Claim ID"
// @Param   claim body dto.UpdateClaimRequest true "Fields to update"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{claimID} [put]
func (h *claimHandler) updateClaim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateClaimRequest
	if !bindJSON(c, &req) {
		return
	}

	claim, err := h.claimService.UpdateClaim(c.Request.Context(), actor, c.Param("claimID"), req)
	if err != nil {
		respondError(c, err, "Failed to update claim")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// getClaim godoc
// @Summary Get a claim
// @Description Returns a claim with its approver records. Visible to its claimant, approvers, assigned finance and admins.
// @Tags claims
// @Produce  json
// @Param   claimID path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{claimID} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	claim, err := h.claimService.GetClaim(c.Request.Context(), actor, c.Param("claimID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve claim")
		return
	}
	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// listChangeLogs godoc
// @Summary List the change log of a claim
// @Tags claims
// @Produce  json
// @Param   claimID path string true "Claim ID"
// @Success 200 {array} dto.ChangeLogResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{claimID}/changelogs [get]
func (h *claimHandler) listChangeLogs(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	logs, err := h.claimService.ListChangeLogs(c.Request.Context(), actor, c.Param("claimID"))
	if err != nil {
		respondError(c, err, "Failed to list change logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToChangeLogResponses(logs))
}

// listClaims godoc
// @Summary List claims
// @Description Lists claims as seen from a view mode: CLAIMER (own), APPROVER, FINANCE or ADMIN.
// @Tags claims
// @Produce  json
// @Param   view query string false "View mode" default(CLAIMER)
// @Param   status query []string false "Status filter, repeated or comma separated"
// @Param   from query string false "Created on or after (YYYY-MM-DD)"
// @Param   to query string false "Created on or before (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims [get]
func (h *claimHandler) listClaims(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListClaimsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListClaims", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.claimService.ListClaims(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to list claims")
		return
	}
	logger.Info("Claims listed", slog.Int("count", len(resp.Claims)), slog.String("view", params.View))
	c.JSON(http.StatusOK, resp)
}

// getStatusCounts godoc
// @Summary Count claims by status
// @Description Counts claims per status for a view mode. The APPROVER view counts the caller's own decisions instead.
// @Tags claims
// @Produce  json
// @Param   view query string false "View mode" default(CLAIMER)
// @Param   from query string false "Created on or after (YYYY-MM-DD)"
// @Param   to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {object} domain.StatusCounts
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/counts [get]
func (h *claimHandler) getStatusCounts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.StatusCountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	counts, err := h.claimService.GetStatusCounts(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err, "Failed to count claims")
		return
	}
	c.JSON(http.StatusOK, counts)
}

type transitionCall func(ctx context.Context, actor domain.Actor, claimID string) (*domain.Claim, error)

type reasonTransitionCall func(ctx context.Context, actor domain.Actor, claimID, reason string) (*domain.Claim, error)

// transition godoc
// @Summary Submit, approve or pay a claim
// @Tags claims
// @Produce  json
// @Param   claimID path string true "Claim ID"
// @Param   action path string true "submit, approve or pay"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Claim is not in a state allowing the action"
// @Security BearerAuth
// @Router /claims/{claimID}/{action} [post]
func (h *claimHandler) transition(op string, call transitionCall) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		claim, err := call(c.Request.Context(), actor, c.Param("claimID"))
		if err != nil {
			respondError(c, err, "Failed to "+op+" claim")
			return
		}
		c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
	}
}

// transitionWithReason godoc
// @Summary Reject, return or cancel a claim
// @Description Return and cancel require a reason; reject accepts an optional one.
// @Tags claims
// @Accept  json
// @Produce  json
// @Param   claimID path string true "Claim ID"
// @Param   action path string true "reject, return or cancel"
// @Param   body body dto.ClaimActionRequest false "Reason"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Security BearerAuth
// @Router /claims/{claimID}/{action} [post]
func (h *claimHandler) transitionWithReason(op string, call reasonTransitionCall) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := requireActor(c)
		if !ok {
			return
		}
		var req dto.ClaimActionRequest
		if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
			return
		}
		claim, err := call(c.Request.Context(), actor, c.Param("claimID"), req.Reason)
		if err != nil {
			respondError(c, err, "Failed to "+op+" claim")
			return
		}
		c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
	}
}
