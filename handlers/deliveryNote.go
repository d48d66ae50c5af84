package handlers

import (
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateDeliveryNote(c *gin.Context) {
	var input models.NewDeliveryNote
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateDeliveryNote(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func UpdateDeliveryNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewDeliveryNote
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateDeliveryNote(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteDeliveryNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteDeliveryNote(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetDeliveryNote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetDeliveryNote(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetDeliveryNotes(c *gin.Context) {
	var filter models.DeliveryNoteFilter
	filter.Campaign = queryString(c, "campaign")

	if v := c.Query("type"); v != "" {
		if v != string(models.DeliveryNoteTypeEntrada) && v != string(models.DeliveryNoteTypeSalida) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery note type"})
			return
		}
		noteType := models.DeliveryNoteType(v)
		filter.Type = &noteType
	}

	contractId, err := queryInt(c, "contract_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.ContractId = contractId

	if filter.DateFrom, err = queryDate(c, "date_from"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.DateTo, err = queryDate(c, "date_to"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := models.GetDeliveryNotes(c.Request.Context(), filter)
	if err != nil {
		respondServerError(c, "DeliveryNote", "GetDeliveryNotes", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func GetCampaigns(c *gin.Context) {
	results, err := models.GetCampaigns(c.Request.Context())
	if err != nil {
		respondServerError(c, "DeliveryNote", "GetCampaigns", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
