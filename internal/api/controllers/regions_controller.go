package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lakbay/internal/repositories"
	"lakbay/pkg/utils"
)

type RegionsController struct {
	regions repositories.RegionRepository
}

func NewRegionsController(regions repositories.RegionRepository) *RegionsController {
	return &RegionsController{regions: regions}
}

func (r *RegionsController) ListDestinations(c *gin.Context) {
	utils.RespondSuccess(c, r.regions.ListDestinations(), "Destinations fetched")
}

func (r *RegionsController) GetRegionProfile(c *gin.Context) {
	destination := c.Param("destination")
	if destination == "" {
		utils.RespondError(c, http.StatusBadRequest, "Destination is required")
		return
	}

	name, profile, ok := r.regions.Lookup(destination)
	if !ok {
		utils.HandleServiceError(c, utils.ErrRegionNotFound)
		return
	}

	utils.RespondSuccess(c, gin.H{"destination": name, "profile": profile}, "Region profile fetched")
}
