package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/govstack/wallet_service/internal/apperrors"
	"github.com/govstack/wallet_service/internal/core/domain"
	portsrepo "github.com/govstack/wallet_service/internal/core/ports/repositories"
	portssvc "github.com/govstack/wallet_service/internal/core/ports/services"
	"github.com/govstack/wallet_service/internal/dto"
	"github.com/govstack/wallet_service/internal/middleware"
)

type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new currency service instance.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new supported currency.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    req.Precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
			Version:       1,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, fmt.Sprintf("currency already exists: %s", currency.CurrencyCode), apperrors.ErrDuplicate)
		}
		logger.Error("Failed to save currency", "error", err, "currency", currency.CurrencyCode)
		return nil, err
	}

	logger.Info("Currency registered", "currency", currency.CurrencyCode)
	return &currency, nil
}

// GetCurrencyByCode retrieves a currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("currency not found: %s", code))
		}
		return nil, err
	}
	return currency, nil
}

// ListCurrencies retrieves all supported currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}
