package models

import (
	"log"

	"bitbucket.org/terrafocus/campo_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Agent{},
		&Contract{},
		&DeliveryNote{}, &DeliveryNoteItem{},
		&Parcel{}, &FieldVisit{}, &Treatment{}, &Harvest{}, &IrrigationLog{},
		&WeatherObservation{}, &WeatherRule{}, &WeatherAlert{}, &AlertEventRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
