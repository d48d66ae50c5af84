package handlers

import (
	"fmt"
	"net/http"

	"bitbucket.org/terrafocus/campo_backend/models"
	"bitbucket.org/terrafocus/campo_backend/models/reports"
	"github.com/gin-gonic/gin"
)

func commissionFilterFromQuery(c *gin.Context) (models.CommissionReportFilter, bool) {
	var filter models.CommissionReportFilter
	filter.Campaign = queryString(c, "campaign")

	agentId, err := queryInt(c, "agent_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filter, false
	}
	filter.AgentId = agentId

	if v := c.Query("side"); v != "" {
		side, err := models.ParseContractSide(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return filter, false
		}
		filter.Side = &side
	}
	if filter.DateFrom, err = queryDate(c, "date_from"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filter, false
	}
	if filter.DateTo, err = queryDate(c, "date_to"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return filter, false
	}
	return filter, true
}

func GetCommissionReport(c *gin.Context) {
	filter, ok := commissionFilterFromQuery(c)
	if !ok {
		return
	}
	report, err := models.GetCommissionReport(c.Request.Context(), filter)
	if err != nil {
		respondServerError(c, "Commission", "GetCommissionReport", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func GetCommissionAgents(c *gin.Context) {
	results, err := models.GetCommissionAgents(c.Request.Context())
	if err != nil {
		respondServerError(c, "Commission", "GetCommissionAgents", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetCommissionStatement streams one agent's statement as an xlsx download.
func GetCommissionStatement(c *gin.Context) {
	filter, ok := commissionFilterFromQuery(c)
	if !ok {
		return
	}
	if filter.AgentId == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "agent_id is required"})
		return
	}
	if filter.Side == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "side is required"})
		return
	}

	summary, err := models.GetAgentCommissionStatement(c.Request.Context(), *filter.AgentId, *filter.Side, filter)
	if err != nil {
		respondModelError(c, err)
		return
	}

	f, err := reports.BuildCommissionStatementXLSX(summary, filter.Campaign)
	if err != nil {
		respondServerError(c, "Commission", "GetCommissionStatement", err)
		return
	}

	filename := fmt.Sprintf("commission-statement-%d.xlsx", *filter.AgentId)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(c.Writer); err != nil {
		respondServerError(c, "Commission", "GetCommissionStatement", err)
	}
}
