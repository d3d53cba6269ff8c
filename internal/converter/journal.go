package converter

import (
	"fmt"
	"time"

	"roulette_lab/internal/api/dto/journal"
	"roulette_lab/internal/model"
)

func ToJournalSession(req journal.SessionRequest) (model.JournalSession, error) {
	date, err := time.Parse(model.DateLayout, req.Date)
	if err != nil {
		return model.JournalSession{}, fmt.Errorf("bad date %q: %w", req.Date, err)
	}
	return model.JournalSession{
		Date:            date,
		Venue:           req.Venue,
		Game:            model.Game(req.Game),
		BuyIn:           req.BuyIn,
		CashOut:         req.CashOut,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}, nil
}

func ToSessionResponse(s model.JournalSession) journal.SessionResponse {
	return journal.SessionResponse{
		ID:              s.ID.String(),
		Date:            s.Date.Format(model.DateLayout),
		Venue:           s.Venue,
		Game:            string(s.Game),
		BuyIn:           s.BuyIn,
		CashOut:         s.CashOut,
		Net:             s.Net(),
		DurationMinutes: s.DurationMinutes,
		Notes:           s.Notes,
	}
}

func ToSessionResponses(list []model.JournalSession) []journal.SessionResponse {
	result := make([]journal.SessionResponse, len(list))
	for i, s := range list {
		result[i] = ToSessionResponse(s)
	}
	return result
}

func ToSummaryResponse(s model.JournalSummary) journal.SummaryResponse {
	return journal.SummaryResponse{
		Sessions:     s.Sessions,
		TotalBuyIn:   s.TotalBuyIn,
		TotalCashOut: s.TotalCashOut,
		Net:          s.Net,
		TotalMinutes: s.TotalMinutes,
		NetPerHour:   s.NetPerHour,
	}
}
