package database

import (
	"log"

	"festival_portal/constants"
	"festival_portal/docstore"
	"festival_portal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("festival2026"), 10)
	hashPassword := string(bytes)
	if err != nil {
		hashPassword = "festival2026"
	}
	accounts := []model.Account{
		{
			Username:    "administration",
			Password:    hashPassword,
			DisplayName: "Festival Administration",
			Email:       "admin@festival.local",
			Active:      true,
			Role:        constants.ROLE_ADMIN,
		},
	}

	for _, account := range accounts {
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	// Composite indexes the preferred query tier depends on. Removing one
	// here degrades the matching reads to the weaker tiers.
	indexes := []docstore.CompositeIndex{
		{Collection: constants.COLLECTION_COMMENTS, FilterField: "isDeleted", OrderField: "createdAt"},
		{Collection: constants.COLLECTION_COMMENTS, FilterField: "submissionId", OrderField: "createdAt"},
		{Collection: constants.COLLECTION_FILMS, FilterField: "isDeleted", OrderField: "createdAt"},
		{Collection: constants.COLLECTION_FILMS, FilterField: "status", OrderField: "createdAt"},
		{Collection: constants.COLLECTION_PARTNERS, FilterField: "isDeleted", OrderField: "order"},
		{Collection: constants.COLLECTION_ACTIVITIES, FilterField: "isDeleted", OrderField: "startsAt"},
	}
	for _, idx := range indexes {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&idx).Error; err != nil {
			log.Println("failed to seed document index:", idx.Collection, "error:", err)
		}
	}
}
