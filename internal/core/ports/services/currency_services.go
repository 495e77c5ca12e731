package services

import (
	"context"

	"github.com/govstack/wallet_service/internal/core/domain"
	"github.com/govstack/wallet_service/internal/dto"
)

// CurrencySvcFacade manages the registry of supported currencies.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
