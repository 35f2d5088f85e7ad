// Package report renders charts and AI summaries from the computed
// portfolio aggregates.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/interfaces"
	"github.com/rferreira/patrimo/internal/models"
)

// defaultChartsDir is used when no output directory is configured; it
// resolves under the data path.
const defaultChartsDir = "charts"

// Compile-time interface check
var _ interfaces.ReportService = (*Service)(nil)

// Service implements ReportService.
type Service struct {
	storage   interfaces.StorageManager
	holdings  interfaces.HoldingsService
	ledger    interfaces.LedgerService
	advice    interfaces.AdviceClient
	outputDir string
	logger    *common.Logger
}

// NewService creates a new report service. Charts land in outputDir (relative
// paths resolve under the data path). The advice client may be nil when no
// API key is configured; Advise then returns an error.
func NewService(storage interfaces.StorageManager, holdings interfaces.HoldingsService, ledger interfaces.LedgerService, advice interfaces.AdviceClient, outputDir string, logger *common.Logger) *Service {
	if outputDir == "" {
		outputDir = defaultChartsDir
	}
	return &Service{
		storage:   storage,
		holdings:  holdings,
		ledger:    ledger,
		advice:    advice,
		outputDir: outputDir,
		logger:    logger,
	}
}

// RenderAllocationChart writes the asset-allocation PNG and returns its path.
func (s *Service) RenderAllocationChart(ctx context.Context) (string, error) {
	nw, err := s.holdings.NetWorth(ctx)
	if err != nil {
		return "", err
	}
	png, err := renderAllocationChart(nw)
	if err != nil {
		return "", err
	}
	path, err := s.storage.WriteRaw(s.outputDir, "allocation.png", png)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Msg("Allocation chart rendered")
	return path, nil
}

// RenderRecurringIncomeChart writes the recurring-income PNG and returns its
// path.
func (s *Service) RenderRecurringIncomeChart(ctx context.Context) (string, error) {
	nw, err := s.holdings.NetWorth(ctx)
	if err != nil {
		return "", err
	}
	png, err := renderRecurringIncomeChart(nw)
	if err != nil {
		return "", err
	}
	path, err := s.storage.WriteRaw(s.outputDir, "recurring.png", png)
	if err != nil {
		return "", err
	}
	s.logger.Info().Str("path", path).Msg("Recurring income chart rendered")
	return path, nil
}

// Advise asks the configured model for a short portfolio summary built from
// the current aggregates.
func (s *Service) Advise(ctx context.Context) (string, error) {
	if s.advice == nil {
		return "", fmt.Errorf("advice client not configured: set a Gemini API key")
	}

	nw, err := s.holdings.NetWorth(ctx)
	if err != nil {
		return "", err
	}
	totals, err := s.ledger.Totals(ctx, models.FilterAll, models.FilterAll)
	if err != nil {
		return "", err
	}

	prompt := buildAdvicePrompt(nw, totals)
	s.logger.Debug().Int("prompt_len", len(prompt)).Msg("Requesting portfolio summary")

	return s.advice.GenerateContent(ctx, prompt)
}

// buildAdvicePrompt flattens the aggregates into a plain-text briefing.
func buildAdvicePrompt(nw *models.NetWorthSummary, totals models.TradeTotals) string {
	var sb strings.Builder
	sb.WriteString("You are a personal finance assistant. Summarize this portfolio in a few short paragraphs, ")
	sb.WriteString("flagging concentration risks and commenting on the recurring income. Do not give buy/sell orders.\n\n")

	fmt.Fprintf(&sb, "Net worth: %.2f (cash %.2f)\n", nw.NetWorth, nw.CashBalance)
	fmt.Fprintf(&sb, "Stocks: invested %.2f, current %.2f (%.1f%%)\n", nw.Stocks.Invested, nw.Stocks.Current, nw.Stocks.ProfitPct)
	fmt.Fprintf(&sb, "Crypto: invested %.2f, current %.2f (%.1f%%)\n", nw.Crypto.Invested, nw.Crypto.Current, nw.Crypto.ProfitPct)
	fmt.Fprintf(&sb, "P2P loans: invested %.2f, projected final %.2f (avg %.1f%%)\n", nw.P2P.Invested, nw.P2P.FinalValue, nw.P2P.AvgPct)
	fmt.Fprintf(&sb, "Parked funds: %.2f at %.2f%% effective\n", nw.Funds.Total, nw.Funds.AvgRatePct)
	fmt.Fprintf(&sb, "Recurring income: %.2f/year, %.2f/month\n", nw.RecurringYear, nw.RecurringMonth)
	fmt.Fprintf(&sb, "Realized trades: %d, profit %.2f (%.1f%%), net after tax %.2f\n",
		totals.Count, totals.Profit, totals.ProfitPct, totals.Net)

	return sb.String()
}
