package handlers

import (
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/gin-gonic/gin"
)

func CreateContract(c *gin.Context) {
	var input models.NewContract
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateContract(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func UpdateContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewContract
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateContract(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteContract(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetContract(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.GetContract(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetContracts(c *gin.Context) {
	var filter models.ContractFilter
	filter.Campaign = queryString(c, "campaign")
	filter.Crop = queryString(c, "crop")

	if v := c.Query("side"); v != "" {
		side, err := models.ParseContractSide(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		filter.Side = &side
	}
	agentId, err := queryInt(c, "agent_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.AgentId = agentId

	results, err := models.GetContracts(c.Request.Context(), filter)
	if err != nil {
		respondServerError(c, "Contract", "GetContracts", err)
		return
	}
	c.JSON(http.StatusOK, results)
}
