package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsight-hq/finsight_backend/internal/apperrors"
	portssvc "github.com/finsight-hq/finsight_backend/internal/core/ports/services"
	"github.com/finsight-hq/finsight_backend/internal/dto"
	"github.com/finsight-hq/finsight_backend/internal/middleware"
)

// statementHandler handles HTTP requests for financial statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func newStatementHandler(ss portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: ss}
}

// RegisterStatementRoutes registers routes for statements, overrides and adjustments.
func RegisterStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	statements := rg.Group("/statements")
	{
		statements.GET("/profit-and-loss", h.getProfitAndLoss)
		statements.GET("/profit-and-loss/narrative", h.narrateProfitAndLoss)
		statements.GET("/balance-sheet", h.getBalanceSheet)

		statements.GET("/overrides", h.listOverrides)
		statements.PUT("/overrides", h.setOverride)
		statements.DELETE("/overrides/:lineName", h.clearOverride)

		statements.POST("/adjustments", h.createAdjustment)
		statements.GET("/adjustments", h.listAdjustments)
		statements.PUT("/adjustments/:id", h.updateAdjustment)
		statements.DELETE("/adjustments/:id", h.deleteAdjustment)
	}
}

// getProfitAndLoss godoc
// @Summary Build the profit and loss statement
// @Tags statements
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.PLReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/profit-and-loss [get]
func (h *statementHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.StatementRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.statementService.GetProfitAndLoss(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to build profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build profit and loss"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPLReportResponse(*report))
}

// narrateProfitAndLoss godoc
// @Summary Generate a plain-language P&L narrative
// @Tags statements
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementNarrativeResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/profit-and-loss/narrative [get]
func (h *statementHandler) narrateProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.StatementRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	narrative, err := h.statementService.NarrateProfitAndLoss(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			// Narration is not configured on this deployment.
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to narrate profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate narrative"})
		return
	}

	c.JSON(http.StatusOK, dto.StatementNarrativeResponse{Narrative: narrative})
}

// getBalanceSheet godoc
// @Summary Build the balance sheet
// @Description Builds the balance sheet with overrides and manual adjustments applied.
// @Tags statements
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/balance-sheet [get]
func (h *statementHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.StatementRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.statementService.GetBalanceSheet(c.Request.Context(), userID, params.From, params.To)
	if err != nil {
		logger.Error("Failed to build balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build balance sheet"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(*report))
}

// listOverrides godoc
// @Summary List statement line overrides
// @Tags statements
// @Produce json
// @Success 200 {array} dto.OverrideResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/overrides [get]
func (h *statementHandler) listOverrides(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	overrides, err := h.statementService.ListOverrides(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list overrides", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list overrides"})
		return
	}

	out := make([]dto.OverrideResponse, 0, len(overrides))
	for lineName, amount := range overrides {
		out = append(out, dto.OverrideResponse{LineName: lineName, Amount: amount})
	}
	c.JSON(http.StatusOK, out)
}

// setOverride godoc
// @Summary Pin a balance sheet line to a manual amount
// @Tags statements
// @Accept json
// @Produce json
// @Param override body dto.SetOverrideRequest true "Line override"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/overrides [put]
func (h *statementHandler) setOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.statementService.SetOverride(c.Request.Context(), userID, req.LineName, req.Amount); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to set override", slog.String("error", err.Error()), slog.String("line_name", req.LineName))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to set override"})
		return
	}

	c.Status(http.StatusNoContent)
}

// clearOverride godoc
// @Summary Remove the pin from a balance sheet line
// @Tags statements
// @Produce json
// @Param lineName path string true "Line name"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/overrides/{lineName} [delete]
func (h *statementHandler) clearOverride(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.statementService.ClearOverride(c.Request.Context(), userID, c.Param("lineName")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Override not found"})
			return
		}
		logger.Error("Failed to clear override", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to clear override"})
		return
	}

	c.Status(http.StatusNoContent)
}

// createAdjustment godoc
// @Summary Create a manual balance sheet line
// @Tags statements
// @Accept json
// @Produce json
// @Param adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/adjustments [post]
func (h *statementHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	adjustment, err := h.statementService.CreateAdjustment(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create adjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create adjustment"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(*adjustment))
}

// listAdjustments godoc
// @Summary List manual balance sheet lines
// @Tags statements
// @Produce json
// @Success 200 {array} dto.AdjustmentResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/adjustments [get]
func (h *statementHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	adjustments, err := h.statementService.ListAdjustments(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list adjustments", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list adjustments"})
		return
	}

	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, adjustment := range adjustments {
		out = append(out, dto.ToAdjustmentResponse(adjustment))
	}
	c.JSON(http.StatusOK, out)
}

// updateAdjustment godoc
// @Summary Update a manual balance sheet line
// @Tags statements
// @Accept json
// @Produce json
// @Param id path string true "Adjustment ID"
// @Param adjustment body dto.UpdateAdjustmentRequest true "Fields to update"
// @Success 200 {object} dto.AdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/adjustments/{id} [put]
func (h *statementHandler) updateAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	adjustment, err := h.statementService.UpdateAdjustment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Adjustment not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		} else {
			logger.Error("Failed to update adjustment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update adjustment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(*adjustment))
}

// deleteAdjustment godoc
// @Summary Delete a manual balance sheet line
// @Tags statements
// @Produce json
// @Param id path string true "Adjustment ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements/adjustments/{id} [delete]
func (h *statementHandler) deleteAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.statementService.DeleteAdjustment(c.Request.Context(), userID, c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Adjustment not found"})
			return
		}
		logger.Error("Failed to delete adjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete adjustment"})
		return
	}

	c.Status(http.StatusNoContent)
}
