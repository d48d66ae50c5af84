package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route group on the engine.
func RegisterRoutes(r *gin.Engine) {

	agents := r.Group("/agents")
	{
		agents.POST("", CreateAgent)
		agents.GET("", GetAgents)
		agents.GET("/:id", GetAgent)
		agents.PUT("/:id", UpdateAgent)
		agents.DELETE("/:id", DeleteAgent)
	}

	contracts := r.Group("/contracts")
	{
		contracts.POST("", CreateContract)
		contracts.GET("", GetContracts)
		contracts.GET("/:id", GetContract)
		contracts.PUT("/:id", UpdateContract)
		contracts.DELETE("/:id", DeleteContract)
	}

	notes := r.Group("/delivery-notes")
	{
		notes.POST("", CreateDeliveryNote)
		notes.GET("", GetDeliveryNotes)
		notes.GET("/:id", GetDeliveryNote)
		notes.PUT("/:id", UpdateDeliveryNote)
		notes.DELETE("/:id", DeleteDeliveryNote)
	}

	r.GET("/campaigns", GetCampaigns)

	commissions := r.Group("/commissions")
	{
		commissions.GET("/report", GetCommissionReport)
		commissions.GET("/agents", GetCommissionAgents)
		commissions.GET("/statement", GetCommissionStatement)
	}

	parcels := r.Group("/parcels")
	{
		parcels.POST("", CreateParcel)
		parcels.GET("", GetParcels)
		parcels.GET("/:id", GetParcel)
		parcels.PUT("/:id", UpdateParcel)
		parcels.DELETE("/:id", DeleteParcel)
	}

	visits := r.Group("/field-visits")
	{
		visits.POST("", CreateFieldVisit)
		visits.GET("", GetFieldVisits)
		visits.GET("/:id", GetFieldVisit)
		visits.PUT("/:id", UpdateFieldVisit)
		visits.DELETE("/:id", DeleteFieldVisit)
	}

	treatments := r.Group("/treatments")
	{
		treatments.POST("", CreateTreatment)
		treatments.GET("", GetTreatments)
		treatments.GET("/:id", GetTreatment)
		treatments.PUT("/:id", UpdateTreatment)
		treatments.DELETE("/:id", DeleteTreatment)
	}

	harvests := r.Group("/harvests")
	{
		harvests.POST("", CreateHarvest)
		harvests.GET("", GetHarvests)
		harvests.GET("/:id", GetHarvest)
		harvests.PUT("/:id", UpdateHarvest)
		harvests.DELETE("/:id", DeleteHarvest)
	}

	irrigations := r.Group("/irrigations")
	{
		irrigations.POST("", CreateIrrigationLog)
		irrigations.GET("", GetIrrigationLogs)
		irrigations.GET("/:id", GetIrrigationLog)
		irrigations.PUT("/:id", UpdateIrrigationLog)
		irrigations.DELETE("/:id", DeleteIrrigationLog)
	}

	weather := r.Group("/weather")
	{
		weather.POST("/observations", CreateWeatherObservation)
		weather.POST("/rules", CreateWeatherRule)
		weather.GET("/rules", GetWeatherRules)
		weather.PUT("/rules/:id", UpdateWeatherRule)
		weather.DELETE("/rules/:id", DeleteWeatherRule)
		weather.POST("/evaluate", EvaluateWeatherRules)
		weather.GET("/alerts", GetWeatherAlerts)
	}
}
