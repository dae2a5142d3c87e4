package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// WriteEquityCSV writes the per-bar equity curve. This is the primary
// artifact for "what happened" in a run.
func WriteEquityCSV(path string, equity []EquityPoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"timestamp",
		"cash",
		"holdings_value",
		"total_equity",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range equity {
		row := []string{
			fmtTime(p.Timestamp),
			fmtFloat(p.Cash),
			fmtFloat(p.HoldingsValue),
			fmtFloat(p.TotalEquity),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// WriteTradesCSV writes the trade log, one completed round trip per row.
func WriteTradesCSV(path string, trades []Trade) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"entry_time",
		"entry_price",
		"exit_time",
		"exit_price",
		"shares",
		"gross_pnl",
		"commission_paid",
		"net_pnl",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, t := range trades {
		row := []string{
			fmtTime(t.EntryTime),
			fmtFloat(t.EntryPrice),
			fmtTime(t.ExitTime),
			fmtFloat(t.ExitPrice),
			strconv.FormatInt(t.Shares, 10),
			fmtFloat(t.GrossPnL),
			fmtFloat(t.CommissionPaid),
			fmtFloat(t.NetPnL),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
