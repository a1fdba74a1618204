package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lakbay/internal/models/request_models"
	"lakbay/internal/services"
	"lakbay/pkg/utils"
)

type TripsController struct {
	tripService services.TripServiceInterface
}

func NewTripsController(tripService services.TripServiceInterface) *TripsController {
	return &TripsController{tripService: tripService}
}

// GenerateTrip godoc
// @Summary Generate a trip itinerary
// @Description Ask the AI collaborator for an itinerary and run it through the normalization pipeline
// @Tags Trips
// @Accept json
// @Produce json
// @Param selection body request_models.TripSelection true "Trip brief"
// @Success 200 {object} response_models.TripBundle
// @Router /trips/generate [post]
func (t *TripsController) GenerateTrip(c *gin.Context) {
	var selection request_models.TripSelection
	if err := c.ShouldBindJSON(&selection); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid trip selection: "+err.Error())
		return
	}

	bundle, err := t.tripService.GenerateTrip(c.Request.Context(), selection)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bundle, "Trip generated")
}

// ValidateTrip godoc
// @Summary Validate an existing trip payload
// @Description Normalize and validate an already-generated payload without calling the AI collaborator
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body request_models.ValidateTripRequest true "Payload and destination"
// @Success 200 {object} response_models.TripBundle
// @Router /trips/validate [post]
func (t *TripsController) ValidateTrip(c *gin.Context) {
	var req request_models.ValidateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	bundle := t.tripService.RunPipeline(req.TripData, req.Destination, req.ActivityPreference)
	utils.RespondSuccess(c, bundle, "Trip validated")
}

func (t *TripsController) SaveTrip(c *gin.Context) {
	var req request_models.SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userId := c.GetString("user_id")
	tripId, err := t.tripService.SaveTrip(c.Request.Context(), userId, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"tripId": tripId}, "Trip saved")
}

func (t *TripsController) GetTripById(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	bundle, err := t.tripService.GetTripById(c.Request.Context(), tripId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bundle, "Trip fetched")
}

func (t *TripsController) ListTrips(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	userId := c.GetString("user_id")
	bundles, err := t.tripService.ListTripsByUser(c.Request.Context(), userId, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, bundles, "Trips fetched")
}

func (t *TripsController) DeleteTrip(c *gin.Context) {
	tripId := c.Param("tripId")
	if tripId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Trip ID is required")
		return
	}

	userId := c.GetString("user_id")
	if err := t.tripService.DeleteTrip(c.Request.Context(), tripId, userId); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted")
}
