package database

import (
	"fmt"
	"log"
	"muni_assess_backend/internal/config"
	"muni_assess_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// Release deployments migrate only when asked to; everything else
	// migrates on boot.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Section{},
			&model.Question{},
			&model.Submission{},
			&model.Answer{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	if cfg.Catalog.SeedOnEmpty {
		if err := seedCatalog(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}
