package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nazihkhelifa/servair-webapp/models"
	"github.com/nazihkhelifa/servair-webapp/preprocessing"
	"github.com/nazihkhelifa/servair-webapp/routing"
	"github.com/nazihkhelifa/servair-webapp/services"
)

// Planner is the part of services.TruckpathService the handler needs.
type Planner interface {
	PlanRoute(ctx context.Context, stops []routing.Stop) (routing.PathResult, error)
	EstimateEta(ctx context.Context, stops []routing.Stop) (routing.EtaResult, error)
	Status(ctx context.Context) services.Status
}

type TruckpathHandler struct {
	planner Planner
}

func NewTruckpathHandler(planner Planner) *TruckpathHandler {
	return &TruckpathHandler{
		planner: planner,
	}
}

func (h *TruckpathHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api/truckpath")
	api.Use(RequestID())
	api.POST("/calculate", h.CalculatePath)
	api.POST("/eta", h.CalculateETA)
	api.GET("/status", h.GetStatus)
	api.GET("/test", h.Test)
}

func (h *TruckpathHandler) CalculatePath(c *gin.Context) {
	stops, ok := h.bindStops(c)
	if !ok {
		return
	}
	log.Printf("Calculating path for %d stops", len(stops))

	result, err := h.planner.PlanRoute(c.Request.Context(), stops)
	if err != nil {
		log.Printf("ERROR: path calculation failed: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewPathResponse(result, requestID(c)))
}

func (h *TruckpathHandler) CalculateETA(c *gin.Context) {
	stops, ok := h.bindStops(c)
	if !ok {
		return
	}
	log.Printf("Calculating ETA for route with %d stops", len(stops))

	result, err := h.planner.EstimateEta(c.Request.Context(), stops)
	if err != nil {
		log.Printf("ERROR: ETA calculation failed: %v", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewETAResponse(result, requestID(c)))
}

func (h *TruckpathHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewStatusResponse(h.planner.Status(c.Request.Context())))
}

func (h *TruckpathHandler) Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Truckpath router is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *TruckpathHandler) bindStops(c *gin.Context) ([]routing.Stop, bool) {
	var req models.PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:     models.ApiError{Code: models.CodeInvalidRequest, Message: "Invalid request body", Details: err.Error()},
			RequestID: requestID(c),
		})
		return nil, false
	}

	stops, err := req.ToStops()
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return stops, true
}

// statusFor maps a failure to its HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, routing.ErrInsufficientStops):
		return http.StatusBadRequest, models.CodeInsufficientStops
	case errors.Is(err, models.ErrInvalidStop):
		return http.StatusBadRequest, models.CodeInvalidRequest
	case errors.Is(err, routing.ErrEmptyGraph):
		return http.StatusServiceUnavailable, models.CodeEmptyGraph
	case errors.Is(err, routing.ErrNoPathFound):
		return http.StatusUnprocessableEntity, models.CodeNoPathFound
	case errors.Is(err, preprocessing.ErrDataLoad):
		return http.StatusInternalServerError, models.CodeDataLoadFailure
	default:
		return http.StatusInternalServerError, models.CodeInternal
	}
}

func writeError(c *gin.Context, err error) {
	status, code := statusFor(err)
	c.JSON(status, models.ErrorResponse{
		Error:     models.ApiError{Code: code, Message: err.Error()},
		RequestID: requestID(c),
	})
}
