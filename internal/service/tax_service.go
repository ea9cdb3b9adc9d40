package service

import (
	"context"
	"errors"
	"fmt"

	"backend/internal/model"
	"backend/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateTaxRuleRequest struct {
	Name        string `json:"name" binding:"required"`
	Percentage  string `json:"percentage" binding:"required"` // decimal string, e.g. "10" = 10%
	Basis       string `json:"basis" binding:"required,oneof=BASE LADDER"`
	AccountCode string `json:"account_code"`
	Currency    string `json:"currency" binding:"required,len=3"`
	SortOrder   int    `json:"sort_order"`
	Description string `json:"description"`
}

type UpdateTaxRuleRequest struct {
	Name        string `json:"name" binding:"required"`
	Percentage  string `json:"percentage" binding:"required"`
	Basis       string `json:"basis" binding:"required,oneof=BASE LADDER"`
	AccountCode string `json:"account_code"`
	Currency    string `json:"currency" binding:"required,len=3"`
	SortOrder   int    `json:"sort_order"`
	Description string `json:"description"`
}

type TaxRuleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Percentage  string `json:"percentage"`
	Basis       string `json:"basis"`
	AccountCode string `json:"account_code"`
	Currency    string `json:"currency"`
	SortOrder   int    `json:"sort_order"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// TaxPreviewRequest asks for a forward/reverse calculation against the
// hotel's ladder for one currency, without touching any stay.
type TaxPreviewRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Currency  string `json:"currency" binding:"required,len=3"`
	Inclusive bool   `json:"inclusive"` // true: reverse the amount; false: apply the ladder forward
}

type TaxPreviewResponse struct {
	Base       string            `json:"base"`
	Inclusive  string            `json:"inclusive"`
	Factor     string            `json:"factor"`
	TotalTax   string            `json:"total_tax"`
	Lines      []TaxLineResponse `json:"lines"`
	Unresolved []string          `json:"unresolved,omitempty"`
}

type TaxLineResponse struct {
	Name        string `json:"name"`
	Percentage  string `json:"percentage"`
	AccountCode string `json:"account_code"`
	Amount      string `json:"amount"`
}

// --- Interface ---

type TaxService interface {
	ListTaxRules(ctx context.Context, hotelID string, page, limit int) ([]TaxRuleResponse, int64, error)
	CreateTaxRule(ctx context.Context, hotelID string, req CreateTaxRuleRequest) (TaxRuleResponse, error)
	UpdateTaxRule(ctx context.Context, id string, req UpdateTaxRuleRequest) (TaxRuleResponse, error)
	DeleteTaxRule(ctx context.Context, id string) error
	PreviewTax(ctx context.Context, hotelID string, req TaxPreviewRequest) (TaxPreviewResponse, error)
}

type taxService struct {
	taxRuleRepo repository.TaxRuleRepository
}

func NewTaxService(taxRuleRepo repository.TaxRuleRepository) TaxService {
	return &taxService{taxRuleRepo: taxRuleRepo}
}

// --- Implementation ---

func (s *taxService) ListTaxRules(ctx context.Context, hotelID string, page, limit int) ([]TaxRuleResponse, int64, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid hotel id: %w", err)
	}

	rules, total, err := s.taxRuleRepo.List(ctx, hid, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax rules: %w", err)
	}

	res := make([]TaxRuleResponse, 0, len(rules))
	for _, r := range rules {
		res = append(res, toTaxRuleResponse(r))
	}

	return res, total, nil
}

func (s *taxService) CreateTaxRule(ctx context.Context, hotelID string, req CreateTaxRuleRequest) (TaxRuleResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return TaxRuleResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	pct, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		return TaxRuleResponse{}, fmt.Errorf("invalid percentage value: %w", err)
	}
	if pct.IsNegative() {
		return TaxRuleResponse{}, fmt.Errorf("percentage must not be negative")
	}

	rule := model.TaxRule{
		HotelID:     hid,
		Name:        req.Name,
		Percentage:  pct,
		Basis:       req.Basis,
		AccountCode: req.AccountCode,
		Currency:    req.Currency,
		SortOrder:   req.SortOrder,
		Description: req.Description,
	}

	if err := s.taxRuleRepo.Create(ctx, &rule); err != nil {
		return TaxRuleResponse{}, fmt.Errorf("failed to create tax rule: %w", err)
	}

	return toTaxRuleResponse(rule), nil
}

func (s *taxService) UpdateTaxRule(ctx context.Context, id string, req UpdateTaxRuleRequest) (TaxRuleResponse, error) {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return TaxRuleResponse{}, fmt.Errorf("invalid tax rule id: %w", err)
	}

	rule, err := s.taxRuleRepo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxRuleResponse{}, fmt.Errorf("tax rule not found")
		}
		return TaxRuleResponse{}, fmt.Errorf("failed to fetch tax rule: %w", err)
	}

	pct, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		return TaxRuleResponse{}, fmt.Errorf("invalid percentage value: %w", err)
	}
	if pct.IsNegative() {
		return TaxRuleResponse{}, fmt.Errorf("percentage must not be negative")
	}

	rule.Name = req.Name
	rule.Percentage = pct
	rule.Basis = req.Basis
	rule.AccountCode = req.AccountCode
	rule.Currency = req.Currency
	rule.SortOrder = req.SortOrder
	rule.Description = req.Description

	if err := s.taxRuleRepo.Update(ctx, rule); err != nil {
		return TaxRuleResponse{}, fmt.Errorf("failed to update tax rule: %w", err)
	}

	return toTaxRuleResponse(*rule), nil
}

func (s *taxService) DeleteTaxRule(ctx context.Context, id string) error {
	ruleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid tax rule id: %w", err)
	}

	if _, err := s.taxRuleRepo.FindByID(ctx, ruleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tax rule not found")
		}
		return fmt.Errorf("failed to fetch tax rule: %w", err)
	}

	if err := s.taxRuleRepo.Delete(ctx, ruleID); err != nil {
		return fmt.Errorf("failed to delete tax rule: %w", err)
	}

	return nil
}

func (s *taxService) PreviewTax(ctx context.Context, hotelID string, req TaxPreviewRequest) (TaxPreviewResponse, error) {
	hid, err := uuid.Parse(hotelID)
	if err != nil {
		return TaxPreviewResponse{}, fmt.Errorf("invalid hotel id: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return TaxPreviewResponse{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsNegative() {
		return TaxPreviewResponse{}, fmt.Errorf("amount must not be negative")
	}

	rules, err := s.taxRuleRepo.ListForCurrency(ctx, hid, req.Currency)
	if err != nil {
		return TaxPreviewResponse{}, fmt.Errorf("failed to fetch tax rules: %w", err)
	}

	var base decimal.Decimal
	var unresolved []string
	if req.Inclusive {
		rev := ReverseExclusiveFromInclusive(amount, rules)
		base = rev.Base
		unresolved = rev.Unresolved
	} else {
		base = amount
	}

	breakdown := ComputeTaxBreakdown(base, rules)
	factor := ReverseExclusiveFromInclusive(one, rules).Factor

	lines := make([]TaxLineResponse, 0, len(breakdown.Lines))
	for _, l := range breakdown.Lines {
		lines = append(lines, TaxLineResponse{
			Name:        l.Name,
			Percentage:  l.Percentage.StringFixed(4),
			AccountCode: l.AccountCode,
			Amount:      l.Amount.StringFixed(2),
		})
	}

	return TaxPreviewResponse{
		Base:       base.StringFixed(2),
		Inclusive:  base.Add(breakdown.TotalTax).StringFixed(2),
		Factor:     factor.StringFixed(6),
		TotalTax:   breakdown.TotalTax.StringFixed(2),
		Lines:      lines,
		Unresolved: unresolved,
	}, nil
}

// --- Helpers ---

func toTaxRuleResponse(r model.TaxRule) TaxRuleResponse {
	return TaxRuleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Percentage:  r.Percentage.StringFixed(4),
		Basis:       r.Basis,
		AccountCode: r.AccountCode,
		Currency:    r.Currency,
		SortOrder:   r.SortOrder,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
