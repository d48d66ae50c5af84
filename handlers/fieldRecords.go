package handlers

import (
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/gin-gonic/gin"
)

// Field visits

func CreateFieldVisit(c *gin.Context) {
	var input models.NewFieldVisit
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateFieldVisit(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func GetFieldVisit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetFieldVisit(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateFieldVisit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewFieldVisit
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateFieldVisit(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteFieldVisit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteFieldVisit(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetFieldVisits(c *gin.Context) {
	parcelId, err := queryInt(c, "parcel_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := models.GetFieldVisits(c.Request.Context(), parcelId)
	if err != nil {
		respondServerError(c, "FieldVisit", "GetFieldVisits", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Treatments

func CreateTreatment(c *gin.Context) {
	var input models.NewTreatment
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateTreatment(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func GetTreatment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetTreatment(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateTreatment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewTreatment
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateTreatment(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteTreatment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteTreatment(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetTreatments(c *gin.Context) {
	parcelId, err := queryInt(c, "parcel_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := models.GetTreatments(c.Request.Context(), parcelId)
	if err != nil {
		respondServerError(c, "Treatment", "GetTreatments", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Harvests

func CreateHarvest(c *gin.Context) {
	var input models.NewHarvest
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateHarvest(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func GetHarvest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetHarvest(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateHarvest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewHarvest
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateHarvest(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteHarvest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteHarvest(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetHarvests(c *gin.Context) {
	var filter models.HarvestFilter
	filter.Campaign = queryString(c, "campaign")
	filter.Crop = queryString(c, "crop")
	parcelId, err := queryInt(c, "parcel_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.ParcelId = parcelId

	results, err := models.GetHarvests(c.Request.Context(), filter)
	if err != nil {
		respondServerError(c, "Harvest", "GetHarvests", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Irrigation logs

func CreateIrrigationLog(c *gin.Context) {
	var input models.NewIrrigationLog
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateIrrigationLog(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func GetIrrigationLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetIrrigationLog(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func UpdateIrrigationLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewIrrigationLog
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateIrrigationLog(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteIrrigationLog(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteIrrigationLog(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetIrrigationLogs(c *gin.Context) {
	parcelId, err := queryInt(c, "parcel_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := models.GetIrrigationLogs(c.Request.Context(), parcelId)
	if err != nil {
		respondServerError(c, "IrrigationLog", "GetIrrigationLogs", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
