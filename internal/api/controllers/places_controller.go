package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lakbay/internal/services"
	"lakbay/pkg/utils"
)

type PlacesController struct {
	places services.PlacesServiceInterface
}

func NewPlacesController(places services.PlacesServiceInterface) *PlacesController {
	return &PlacesController{places: places}
}

func (p *PlacesController) GeocodePlace(c *gin.Context) {
	placeName := c.Query("place")
	if placeName == "" {
		utils.RespondError(c, http.StatusBadRequest, "Place name is required")
		return
	}
	destination := c.Query("destination")

	point, err := p.places.GeocodePlace(c.Request.Context(), placeName, destination)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, point, "Place geocoded")
}

func (p *PlacesController) GetWeather(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	info, err := p.places.GetWeather(c.Request.Context(), destination)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, info, "Weather fetched")
}
