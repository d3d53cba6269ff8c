package journal

import (
	"context"
	"fmt"

	"roulette_lab/internal/model"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// Summary Итоги по сессиям, подходящим под фильтр
func (s *serv) Summary(ctx context.Context, filter model.JournalFilter) (*model.JournalSummary, error) {
	const op = "journal.Summary"

	list, err := s.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return summarize(list), nil
}

func summarize(list []model.JournalSession) *model.JournalSummary {
	sum := &model.JournalSummary{
		Sessions:     len(list),
		TotalBuyIn:   decimal.Zero,
		TotalCashOut: decimal.Zero,
		Net:          decimal.Zero,
	}
	for _, sess := range list {
		sum.TotalBuyIn = sum.TotalBuyIn.Add(sess.BuyIn)
		sum.TotalCashOut = sum.TotalCashOut.Add(sess.CashOut)
		sum.TotalMinutes += sess.DurationMinutes
	}
	sum.Net = sum.TotalCashOut.Sub(sum.TotalBuyIn)

	if sum.TotalMinutes > 0 {
		hours := decimal.NewFromInt(int64(sum.TotalMinutes)).Div(sixty)
		sum.NetPerHour = decimal.NewNullDecimal(sum.Net.Div(hours).Round(2))
	}
	return sum
}
