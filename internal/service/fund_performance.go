package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/chavapalmarubin-lab/fidus-analytics/internal/models"
	"github.com/chavapalmarubin-lab/fidus-analytics/internal/repository"
)

// Account status classifications by individual return.
const (
	AccountStatusExcellent       = "excellent"
	AccountStatusPositive        = "positive"
	AccountStatusUnderperforming = "underperforming"
	AccountStatusPoor            = "poor"
)

var (
	statusExcellentFloor = decimal.NewFromInt(5)
	statusUnderperfFloor = decimal.NewFromInt(-2)
	hundred              = decimal.NewFromInt(100)
)

// FundAccountPerformance is one sub-account's slice of a fund result. All
// decimal fields are rounded to 2 places.
type FundAccountPerformance struct {
	AccountID    int64           `json:"account_id"`
	ManagerName  string          `json:"manager_name,omitempty"`
	Broker       string          `json:"broker,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	TruePnL      decimal.Decimal `json:"true_pnl"`
	ReturnPct    decimal.Decimal `json:"return_pct"`
	Weight       decimal.Decimal `json:"weight"`
	Contribution decimal.Decimal `json:"contribution"`
	Status       string          `json:"status"`
}

// FundPerformance is the blended result for one fund, weighted by each
// account's allocation share. It is computed on demand and never persisted.
type FundPerformance struct {
	FundCode           string                   `json:"fund_code"`
	TotalAUM           decimal.Decimal          `json:"total_aum"`
	WeightedReturn     decimal.Decimal          `json:"weighted_return"`
	TotalTruePnL       decimal.Decimal          `json:"total_true_pnl"`
	Accounts           []FundAccountPerformance `json:"accounts"`
	BestPerformer      *FundAccountPerformance  `json:"best_performer,omitempty"`
	WorstPerformer     *FundAccountPerformance  `json:"worst_performer,omitempty"`
	LargestContributor *FundAccountPerformance  `json:"largest_contributor,omitempty"`
	CalculatedAt       time.Time                `json:"calculated_at"`
}

// PortfolioPerformance is the all-funds view with an AUM-weighted blend of the
// per-fund weighted returns.
type PortfolioPerformance struct {
	TotalAUM       decimal.Decimal   `json:"total_aum"`
	WeightedReturn decimal.Decimal   `json:"weighted_return"`
	TotalTruePnL   decimal.Decimal   `json:"total_true_pnl"`
	Funds          []FundPerformance `json:"funds"`
	CalculatedAt   time.Time         `json:"calculated_at"`
}

type FundPerformanceService struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	FundCodes []string
}

// CalculateFundWeightedPerformance blends the fund's sub-account returns,
// weighting each by its share of the fund's AUM. Accounts with a zero balance
// are skipped entirely: they neither appear in the output nor dilute the
// denominator. A fund with no allocated accounts yields a well-formed zero
// result, not an error.
func (s *FundPerformanceService) CalculateFundWeightedPerformance(ctx context.Context, fundCode string) (FundPerformance, error) {
	result, _, _, err := s.calculate(ctx, fundCode)
	return result, err
}

// calculate also returns the un-rounded weighted return and AUM for
// portfolio-level blending; only the boundary result carries rounded values.
func (s *FundPerformanceService) calculate(ctx context.Context, fundCode string) (FundPerformance, decimal.Decimal, decimal.Decimal, error) {
	code := strings.ToUpper(strings.TrimSpace(fundCode))
	result := FundPerformance{
		FundCode:     code,
		Accounts:     []FundAccountPerformance{},
		CalculatedAt: time.Now().UTC(),
	}
	if s == nil || s.Repo == nil {
		return result, decimal.Zero, decimal.Zero, fmt.Errorf("fund performance service not configured")
	}

	accounts, err := s.Repo.ListAccountsByFund(ctx, code)
	if err != nil {
		return result, decimal.Zero, decimal.Zero, fmt.Errorf("list accounts for fund %s: %w", code, err)
	}

	totalAUM := decimal.Zero
	for i := range accounts {
		totalAUM = totalAUM.Add(accounts[i].Balance)
	}
	result.TotalAUM = totalAUM.Round(2)
	if len(accounts) == 0 || !totalAUM.IsPositive() {
		return result, decimal.Zero, totalAUM, nil
	}

	type scored struct {
		entry        FundAccountPerformance
		returnPct    decimal.Decimal
		contribution decimal.Decimal
	}
	rows := make([]scored, 0, len(accounts))
	weightedReturn := decimal.Zero
	totalTruePnL := decimal.Zero
	for i := range accounts {
		acct := &accounts[i]
		if !acct.Balance.IsPositive() {
			continue
		}
		returnPct := acct.TruePnL.Div(acct.Balance).Mul(hundred)
		weightFraction := acct.Balance.Div(totalAUM)
		contribution := weightFraction.Mul(returnPct)

		weightedReturn = weightedReturn.Add(contribution)
		totalTruePnL = totalTruePnL.Add(acct.TruePnL)

		rows = append(rows, scored{
			entry: FundAccountPerformance{
				AccountID:    acct.AccountID,
				ManagerName:  acct.ManagerName,
				Broker:       acct.Broker,
				Balance:      acct.Balance.Round(2),
				TruePnL:      acct.TruePnL.Round(2),
				ReturnPct:    returnPct.Round(2),
				Weight:       weightFraction.Mul(hundred).Round(2),
				Contribution: contribution.Round(2),
				Status:       classifyReturn(returnPct),
			},
			returnPct:    returnPct,
			contribution: contribution,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].contribution.GreaterThan(rows[j].contribution)
	})

	result.Accounts = make([]FundAccountPerformance, 0, len(rows))
	for i := range rows {
		result.Accounts = append(result.Accounts, rows[i].entry)
	}
	result.WeightedReturn = weightedReturn.Round(2)
	result.TotalTruePnL = totalTruePnL.Round(2)

	if len(rows) > 0 {
		best, worst, largest := 0, 0, 0
		for i := 1; i < len(rows); i++ {
			if rows[i].returnPct.GreaterThan(rows[best].returnPct) {
				best = i
			}
			if rows[i].returnPct.LessThan(rows[worst].returnPct) {
				worst = i
			}
			// Largest by absolute contribution, so a big negative contributor
			// is still surfaced.
			if rows[i].contribution.Abs().GreaterThan(rows[largest].contribution.Abs()) {
				largest = i
			}
		}
		result.BestPerformer = entryCopy(rows[best].entry)
		result.WorstPerformer = entryCopy(rows[worst].entry)
		result.LargestContributor = entryCopy(rows[largest].entry)
	}

	return result, weightedReturn, totalAUM, nil
}

// GetAllFundsPerformance runs the weighted calculation for every known fund
// code and blends the per-fund weighted returns by each fund's share of the
// total portfolio AUM. Funds with zero AUM appear in the list but do not
// enter the blend.
func (s *FundPerformanceService) GetAllFundsPerformance(ctx context.Context) (PortfolioPerformance, error) {
	portfolio := PortfolioPerformance{
		Funds:        []FundPerformance{},
		CalculatedAt: time.Now().UTC(),
	}
	if s == nil || s.Repo == nil {
		return portfolio, fmt.Errorf("fund performance service not configured")
	}

	codes := s.FundCodes
	if len(codes) == 0 {
		codes = []string{models.FundCore, models.FundBalance, models.FundDynamic, models.FundUnlimited}
	}

	type fundRow struct {
		result   FundPerformance
		aum      decimal.Decimal
		weighted decimal.Decimal
	}
	rows := make([]fundRow, 0, len(codes))
	totalAUM := decimal.Zero
	totalTruePnL := decimal.Zero
	for _, code := range codes {
		result, rawWeighted, aum, err := s.calculate(ctx, code)
		if err != nil {
			return portfolio, err
		}
		totalAUM = totalAUM.Add(aum)
		totalTruePnL = totalTruePnL.Add(result.TotalTruePnL)
		rows = append(rows, fundRow{result: result, aum: aum, weighted: rawWeighted})
	}

	portfolioReturn := decimal.Zero
	for i := range rows {
		portfolio.Funds = append(portfolio.Funds, rows[i].result)
		if totalAUM.IsPositive() && rows[i].aum.IsPositive() {
			portfolioReturn = portfolioReturn.Add(rows[i].aum.Div(totalAUM).Mul(rows[i].weighted))
		}
	}
	portfolio.TotalAUM = totalAUM.Round(2)
	portfolio.WeightedReturn = portfolioReturn.Round(2)
	portfolio.TotalTruePnL = totalTruePnL.Round(2)

	if s.Logger != nil {
		s.Logger.Debug("portfolio performance computed",
			zap.Int("funds", len(rows)),
			zap.String("total_aum", portfolio.TotalAUM.String()),
		)
	}
	return portfolio, nil
}

// classifyReturn buckets an account's individual return. Boundaries: above 5
// is excellent, zero to 5 positive, -2 to below zero underperforming, below
// -2 poor.
func classifyReturn(returnPct decimal.Decimal) string {
	switch {
	case returnPct.GreaterThan(statusExcellentFloor):
		return AccountStatusExcellent
	case returnPct.GreaterThanOrEqual(decimal.Zero):
		return AccountStatusPositive
	case returnPct.GreaterThanOrEqual(statusUnderperfFloor):
		return AccountStatusUnderperforming
	default:
		return AccountStatusPoor
	}
}

func entryCopy(entry FundAccountPerformance) *FundAccountPerformance {
	out := entry
	return &out
}
