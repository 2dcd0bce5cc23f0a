package repository

import (
	"context"
	"errors"
	"strings"

	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/pkg/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockRepository is the durable registry mapping a ticker symbol to its
// latest known price and signal state.
type StockRepository interface {
	Get(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Stock, error)
	List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, error)
	Upsert(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Get(ctx context.Context, symbol string, opts ...utils.DBOption) (*model.Stock, error) {
	db := utils.ApplyOptions(r.db, append(opts, utils.WithWhere("symbol = ?", symbol))...).WithContext(ctx)

	var stock model.Stock
	if err := db.First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dto.ErrStockNotFound
		}
		return nil, err
	}
	return &stock, nil
}

func (r *stockRepository) List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, error) {
	db := r.db.WithContext(ctx).Model(&model.Stock{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where("LOWER(symbol) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern)
	}
	if filter.Signal != "" {
		db = db.Where("last_signal = ?", filter.Signal)
	}

	var stocks []model.Stock
	if err := db.Order("symbol ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Upsert is the single write path: it creates the row when absent and
// otherwise overwrites every mutable field.
func (r *stockRepository) Upsert(ctx context.Context, stock *model.Stock, opts ...utils.DBOption) error {
	db := utils.ApplyOptions(r.db, opts...).WithContext(ctx)

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "last_price", "last_signal", "last_signal_date", "signal_reason", "updated_at",
		}),
	}).Create(stock).Error
}
