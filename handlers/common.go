package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"bitbucket.org/terrafocus/campo_backend/config"
	"bitbucket.org/terrafocus/campo_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// bindJSON binds the request body into input, replying 400 on failure.
// Returns false when the handler must stop.
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(validationErrors)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// respondModelError maps model-layer errors onto REST statuses. Missing
// records reply 404, everything else surfaces as a 400 because the model
// layer only returns validation failures and wrapped driver errors.
func respondModelError(c *gin.Context, err error) {
	if errors.Is(err, utils.ErrorRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func respondServerError(c *gin.Context, moduleName string, funcName string, err error) {
	data := map[string]string{"url": c.Request.URL.String()}
	if userName, ok := utils.GetUserNameFromContext(c.Request.Context()); ok {
		data["user"] = userName
	}
	config.LogError(config.GetLogger(), moduleName, funcName, "request failed", data, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func queryString(c *gin.Context, name string) *string {
	if v := c.Query(name); v != "" {
		return &v
	}
	return nil
}

func queryInt(c *gin.Context, name string) (*int, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New(name + " must be an integer")
	}
	return &n, nil
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, errors.New(name + " must be YYYY-MM-DD")
	}
	return &t, nil
}
