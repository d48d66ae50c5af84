package handlers

import (
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateParcel(c *gin.Context) {
	var input models.NewParcel
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateParcel(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func UpdateParcel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewParcel
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateParcel(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteParcel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteParcel(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetParcel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetParcel(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetParcels(c *gin.Context) {
	results, err := models.GetParcels(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondServerError(c, "Parcel", "GetParcels", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
