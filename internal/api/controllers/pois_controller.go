package controllers

import (
	"github.com/gin-gonic/gin"

	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type POIsController struct {
	poiService services.POIServiceInterface
}

func NewPOIsController(poiService services.POIServiceInterface) *POIsController {
	return &POIsController{
		poiService: poiService,
	}
}

func (p *POIsController) GetPoiById(c *gin.Context) {
	poiID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	poi, err := p.poiService.GetPoiDetail(c.Request.Context(), poiID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, poi, "POI fetched successfully")
}
