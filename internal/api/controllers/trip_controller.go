package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripflow/internal/models/request_models"
	"tripflow/internal/services"
	"tripflow/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

func (t *TripController) CreateTrip(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

func (t *TripController) ListTrips(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	page, pageSize, ok := paging(c)
	if !ok {
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), accountID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

func (t *TripController) GetTrip(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	trip, err := t.tripService.GetTripDetail(c.Request.Context(), accountID, tripID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

func (t *TripController) PatchTrip(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.PatchTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.tripService.PatchTrip(c.Request.Context(), accountID, tripID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip updated successfully")
}

func (t *TripController) PatchTripDates(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.PatchTripDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.tripService.PatchTripDates(c.Request.Context(), accountID, tripID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip dates updated successfully")
}

func (t *TripController) DeleteTrip(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := t.tripService.DeleteTrip(c.Request.Context(), accountID, tripID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

func (t *TripController) GenerateItinerary(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req request_models.GenerateDayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	trip, err := t.tripService.GenerateTripItinerary(c.Request.Context(), accountID, tripID, req.EditRequest)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Itinerary generated successfully")
}

func (t *TripController) GenerateDay(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	tripID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	dayNumber, err := strconv.Atoi(c.Param("dayNumber"))
	if err != nil || dayNumber < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}

	var req request_models.GenerateDayRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	trip, err := t.tripService.GenerateDayItinerary(c.Request.Context(), accountID, tripID, dayNumber, req.EditRequest)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Day regenerated successfully")
}

func (t *TripController) ReorderDayPois(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	dayID, ok := pathUUID(c, "dayId")
	if !ok {
		return
	}

	var req request_models.ReorderDayPoisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.tripService.ReorderDayPois(c.Request.Context(), accountID, dayID, req.OrderedIds); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Stops reordered successfully")
}

func (t *TripController) AddDayPoi(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	dayID, ok := pathUUID(c, "dayId")
	if !ok {
		return
	}

	var req request_models.AddDayPoiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := t.tripService.AddDayPoi(c.Request.Context(), accountID, dayID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Stop added successfully")
}

func (t *TripController) DeleteDayPoi(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	dayPoiID, ok := pathUUID(c, "dayPoiId")
	if !ok {
		return
	}

	if err := t.tripService.DeleteDayPoi(c.Request.Context(), accountID, dayPoiID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Stop removed successfully")
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func paging(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return 0, 0, false
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return 0, 0, false
	}
	return page, pageSize, true
}
