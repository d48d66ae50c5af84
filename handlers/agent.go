package handlers

import (
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateAgent(c *gin.Context) {
	var input models.NewAgent
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateAgent(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func UpdateAgent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewAgent
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateAgent(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteAgent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteAgent(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetAgent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetAgent(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetAgents(c *gin.Context) {
	results, err := models.GetAgents(c.Request.Context(), queryString(c, "name"))
	if err != nil {
		respondServerError(c, "Agent", "GetAgents", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
