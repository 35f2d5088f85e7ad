package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rferreira/patrimo/internal/app"
	"github.com/rferreira/patrimo/internal/common"
	"github.com/rferreira/patrimo/internal/models"
)

const usage = `patrimo - local portfolio and realized-trade tracker

Usage:
  patrimo [flags] <command> [args]

Commands:
  summary              print the net worth summary
  trades [year|all] [class|all]
                       print the realized-trade totals
  sell <date> <class> <ticker> <qty> <buy> <sell> [fees]
                       record a realized trade and deduct it from holdings
  unsell <id>          roll a trade back and delete it (asks first)
  clear-trades         roll back and delete every trade (asks first)
  export <file>        write both stores to a JSON backup
  import <file>        replace both stores from a JSON backup
  demo                 load the demo dataset (empty portfolio only)
  wipe all             reset both stores to empty defaults
  charts               render the allocation and income charts
  advise               ask the configured model for a portfolio summary
  version              print version information

Flags:
  -config <path>       config file (default: $PATRIMO_CONFIG, then patrimo.toml)
`

func main() {
	configPath := flag.String("config", "", "config file path")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	command, rest := args[0], args[1:]

	if command == "version" {
		fmt.Printf("patrimo %s (build %s, commit %s)\n", common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return
	}

	a, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	common.PrintBanner(a.Config)

	ctx := context.Background()
	if err := run(ctx, a, command, rest, os.Stdin, os.Stdout); err != nil {
		a.Logger.Error().Err(err).Str("command", command).Msg("Command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, command string, args []string, in io.Reader, out io.Writer) error {
	switch command {
	case "summary":
		return printSummary(ctx, a, out)
	case "trades":
		year, class := models.FilterAll, models.FilterAll
		if len(args) > 0 {
			year = args[0]
		}
		if len(args) > 1 {
			class = args[1]
		}
		return printTrades(ctx, a, out, year, class)
	case "sell":
		return recordSale(ctx, a, out, args)
	case "unsell":
		if len(args) != 1 {
			return fmt.Errorf("usage: patrimo unsell <id>")
		}
		if !confirm(in, out, fmt.Sprintf("Remove trade %s and restore its holdings?", args[0])) {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
		if err := a.LedgerService.Remove(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Trade %s removed, holdings restored\n", args[0])
		return nil
	case "clear-trades":
		if !confirm(in, out, "Remove ALL trades and restore their holdings?") {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
		if err := a.LedgerService.ClearAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Ledger cleared, holdings restored")
		return nil
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: patrimo export <file>")
		}
		n, err := a.Export(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d bytes to %s\n", n, args[0])
		return nil
	case "import":
		if len(args) != 1 {
			return fmt.Errorf("usage: patrimo import <file>")
		}
		if err := a.Import(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Imported %s\n", args[0])
		return nil
	case "demo":
		if err := a.LoadDemoData(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Demo dataset loaded")
		return nil
	case "wipe":
		if len(args) != 1 || args[0] != "all" {
			return fmt.Errorf("refusing to wipe without explicit confirmation: patrimo wipe all")
		}
		if err := a.WipeAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "All data wiped")
		return nil
	case "charts":
		for _, render := range []func(context.Context) (string, error){
			a.ReportService.RenderAllocationChart,
			a.ReportService.RenderRecurringIncomeChart,
		} {
			path, err := render(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Chart written: %s\n", path)
		}
		return nil
	case "advise":
		text, err := a.ReportService.Advise(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// confirm prompts for a destructive action; only an explicit yes proceeds.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func printSummary(ctx context.Context, a *app.App, out io.Writer) error {
	nw, err := a.HoldingsService.NetWorth(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Net worth:        %12.2f\n", nw.NetWorth)
	fmt.Fprintf(out, "  Stocks:         %12.2f  (invested %.2f, %+.1f%%)\n", nw.Stocks.Current, nw.Stocks.Invested, nw.Stocks.ProfitPct)
	fmt.Fprintf(out, "  Crypto:         %12.2f  (invested %.2f, %+.1f%%)\n", nw.Crypto.Current, nw.Crypto.Invested, nw.Crypto.ProfitPct)
	fmt.Fprintf(out, "  P2P loans:      %12.2f  (invested %.2f, avg %.1f%%)\n", nw.P2P.FinalValue, nw.P2P.Invested, nw.P2P.AvgPct)
	fmt.Fprintf(out, "  Parked funds:   %12.2f  (%.2f%% effective)\n", nw.Funds.Total, nw.Funds.AvgRatePct)
	fmt.Fprintf(out, "  Cash:           %12.2f\n", nw.CashBalance)
	fmt.Fprintf(out, "Recurring income: %12.2f /year  (%.2f /month, %.2f /day)\n", nw.RecurringYear, nw.RecurringMonth, nw.RecurringDay)
	fmt.Fprintf(out, "Realized profit:  %12.2f  (%.2f this year)\n", nw.RealizedProfitTotal, nw.RealizedProfitYTD)
	return nil
}

func printTrades(ctx context.Context, a *app.App, out io.Writer, year, class string) error {
	totals, err := a.LedgerService.Totals(ctx, year, class)
	if err != nil {
		return err
	}
	settings := ledgerSettings(ctx, a)

	fmt.Fprintf(out, "Trades (%s / %s): %d\n", year, class, totals.Count)
	fmt.Fprintf(out, "  Invested: %12.2f\n", totals.Invested)
	fmt.Fprintf(out, "  Received: %12.2f\n", totals.Received)
	fmt.Fprintf(out, "  Profit:   %12.2f  (%+.2f%%)\n", totals.Profit, totals.ProfitPct)
	if settings.ShowTax {
		fmt.Fprintf(out, "  Tax:      %12.2f  (%.0f%% flat estimate)\n", totals.Tax, settings.TaxRatePct)
		fmt.Fprintf(out, "  Net:      %12.2f\n", totals.Net)
	}
	return nil
}

func recordSale(ctx context.Context, a *app.App, out io.Writer, args []string) error {
	if len(args) < 6 || len(args) > 7 {
		return fmt.Errorf("usage: patrimo sell <date> <class> <ticker> <qty> <buy> <sell> [fees]")
	}

	input := models.TradeInput{
		Date:        args[0],
		AssetClass:  args[1],
		Ticker:      args[2],
		Qty:         common.ToNumber(args[3]),
		AvgBuyPrice: common.ToNumber(args[4]),
		SellPrice:   common.ToNumber(args[5]),
	}
	if len(args) == 7 {
		input.Fees = common.ToNumber(args[6])
	}

	trade, err := a.LedgerService.Upsert(ctx, input, "")
	if err != nil {
		return err
	}

	settings := ledgerSettings(ctx, a)
	derived := models.ComputeTradeDerived(*trade, settings.TaxRatePct)
	if settings.ShowTax {
		fmt.Fprintf(out, "Recorded %s %s x%s: profit %.2f, net %.2f\n",
			trade.Ticker, trade.Date, strconv.FormatFloat(trade.Qty, 'f', -1, 64), derived.Profit, derived.Net)
	} else {
		fmt.Fprintf(out, "Recorded %s %s x%s: profit %.2f\n",
			trade.Ticker, trade.Date, strconv.FormatFloat(trade.Qty, 'f', -1, 64), derived.Profit)
	}
	return nil
}

// ledgerSettings returns the persisted view settings, falling back to the
// configured defaults when the ledger cannot be read.
func ledgerSettings(ctx context.Context, a *app.App) models.LedgerSettings {
	ledger, err := a.LedgerService.GetLedger(ctx)
	if err != nil {
		return models.LedgerSettings{
			ShowTax:    a.Config.Ledger.ShowTax,
			TaxRatePct: a.Config.Ledger.TaxRatePct,
		}
	}
	return ledger.Settings
}
