package mysql

import (
	"fmt"
	"time"

	"comanda-service/internal/config"
	"comanda-service/internal/domain"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func NewMySQL(cfg config.MySQL) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "open mysql")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "mysql pool")
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(
		&domain.Category{},
		&domain.RawMaterial{},
		&domain.Recipe{},
		&domain.RecipeItem{},
		&domain.Product{},
		&domain.User{},
		&domain.UnifiedOrder{},
		&domain.Order{},
		&domain.OrderLine{},
		&domain.Payment{},
		&domain.InventoryMovement{},
	); err != nil {
		return nil, errors.Wrap(err, "automigrate")
	}

	return db, nil
}
