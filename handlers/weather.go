package handlers

import (
	"net/http"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/models"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
)

func CreateWeatherObservation(c *gin.Context) {
	var input models.NewWeatherObservation
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateWeatherObservation(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func CreateWeatherRule(c *gin.Context) {
	var input models.NewWeatherRule
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.CreateWeatherRule(c.Request.Context(), &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func UpdateWeatherRule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewWeatherRule
	if !bindJSON(c, &input) {
		return
	}
	result, err := models.UpdateWeatherRule(c.Request.Context(), id, &input)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func DeleteWeatherRule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	result, err := models.DeleteWeatherRule(c.Request.Context(), id)
	if err != nil {
		respondModelError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func GetWeatherRules(c *gin.Context) {
	results, err := models.GetWeatherRules(c.Request.Context())
	if err != nil {
		respondServerError(c, "Weather", "GetWeatherRules", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func GetWeatherAlerts(c *gin.Context) {
	parcelId, err := queryInt(c, "parcel_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	results, err := models.GetWeatherAlerts(c.Request.Context(), parcelId)
	if err != nil {
		respondServerError(c, "Weather", "GetWeatherAlerts", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// EvaluateWeatherRules runs rule matching over recent observations. A redis
// lock serializes concurrent evaluations; re-running the same window would
// raise duplicate alerts.
func EvaluateWeatherRules(c *gin.Context) {
	ctx := c.Request.Context()

	since, err := queryDate(c, "since")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sinceAt := time.Now().Add(-24 * time.Hour)
	if since != nil {
		sinceAt = *since
	}

	locker := config.GetRedisLock()
	if locker != nil {
		lock, err := locker.Obtain(ctx, "weather:evaluate", 60*time.Second, nil)
		if err == redislock.ErrNotObtained {
			c.JSON(http.StatusConflict, gin.H{"error": "evaluation already in progress"})
			return
		} else if err != nil {
			respondServerError(c, "Weather", "EvaluateWeatherRules", err)
			return
		}
		defer func() {
			_ = lock.Release(ctx)
		}()
	}

	alerts, err := models.EvaluateWeatherRules(ctx, sinceAt)
	if err != nil {
		respondServerError(c, "Weather", "EvaluateWeatherRules", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "raised": len(alerts)})
}
