package repository

import (
	"errors"
	"fmt"
	"strings"

	"order_manager/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// databaseRepository implements the order contract on top of GORM, as an
// alternative to the workbook for installs that outgrow a flat file.
type databaseRepository struct {
	db *gorm.DB
}

func NewDatabaseRepository(driver, dsn string) (OrderRepository, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &databaseRepository{db: db}, nil
}

func (r *databaseRepository) EnsureInitialized() error {
	return r.db.AutoMigrate(&models.Order{})
}

func (r *databaseRepository) NextID() (string, error) {
	var ids []string
	if err := r.db.Model(&models.Order{}).Order("id").Pluck("order_id", &ids).Error; err != nil {
		return "", err
	}
	return nextOrderID(ids), nil
}

func (r *databaseRepository) Append(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *databaseRepository) Scan() ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.db.Order("id").Find(&orders).Error
	return orders, err
}

func (r *databaseRepository) Find(orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Where("order_id = ?", orderID).Order("id").First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *databaseRepository) Delete(orderID string) (bool, error) {
	result := r.db.Where("order_id = ?", orderID).Delete(&models.Order{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
