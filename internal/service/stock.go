package service

import (
	"context"

	"candlescan/internal/dto"
	"candlescan/internal/model"
	"candlescan/internal/repository"
	"candlescan/pkg/logger"
)

// StockService exposes the registry read paths.
type StockService interface {
	List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, error)
	Get(ctx context.Context, symbol string) (*model.Stock, error)
}

type stockService struct {
	log       *logger.Logger
	stockRepo repository.StockRepository
}

func NewStockService(log *logger.Logger, stockRepo repository.StockRepository) StockService {
	return &stockService{log: log, stockRepo: stockRepo}
}

func (s *stockService) List(ctx context.Context, filter dto.StockFilter) ([]model.Stock, error) {
	return s.stockRepo.List(ctx, filter)
}

func (s *stockService) Get(ctx context.Context, symbol string) (*model.Stock, error) {
	return s.stockRepo.Get(ctx, symbol)
}
