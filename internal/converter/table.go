package converter

import (
	"roulette_lab/internal/api/dto/table"
	"roulette_lab/internal/model"
	"roulette_lab/internal/roulette"

	"github.com/shopspring/decimal"
)

func ToTableResponse(v model.TableView) table.TableResponse {
	history := v.History
	if history == nil {
		history = []roulette.HistoryEntry{}
	}
	return table.TableResponse{
		ID:         v.ID.String(),
		Variant:    string(v.Variant),
		Bets:       toBetResponses(v.Bets),
		TotalStake: v.TotalStake,
		History:    history,
		PnL:        v.PnL,
		HouseEdge:  v.HouseEdge.Round(4),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func toBetResponses(bets []model.BetView) []table.BetResponse {
	result := make([]table.BetResponse, len(bets))
	for i, b := range bets {
		result[i] = table.BetResponse{
			SpotID: b.SpotID,
			Kind:   string(b.Kind),
			Label:  b.Label,
			Payout: b.Payout,
			Stake:  b.Stake,
		}
	}
	return result
}

func ToSpinResponse(o model.SpinOutcome) table.SpinResponse {
	return table.SpinResponse{
		Outcome:    o.Entry.Outcome.String(),
		Color:      string(o.Color),
		Stake:      o.Entry.Stake,
		Net:        o.Entry.Net,
		Cumulative: o.Entry.Cumulative,
		Winners:    toBetResponses(o.Winners),
		Table:      ToTableResponse(o.Table),
	}
}

func ToSimulateResponse(r model.SimulationResult) table.SimulateResponse {
	return table.SimulateResponse{
		Spins: r.Spins,
		PnL:   r.PnL,
		Stats: r.Stats,
		Table: ToTableResponse(r.Table),
	}
}

func ToVariantResponse(c model.VariantChange) table.VariantResponse {
	dropped := c.Dropped
	if dropped == nil {
		dropped = []string{}
	}
	return table.VariantResponse{
		Dropped: dropped,
		Table:   ToTableResponse(c.Table),
	}
}

func ToStatsResponse(s model.TableStats) table.StatsResponse {
	return table.StatsResponse{
		RunStats:        s.RunStats,
		StakePerSpin:    s.StakePerSpin,
		TheoreticalEdge: s.TheoreticalEdge.Round(4),
	}
}

func ToCatalogResponse(v roulette.Variant, chips []decimal.Decimal, spots []roulette.Spot) table.CatalogResponse {
	return table.CatalogResponse{
		Variant:   string(v),
		HouseEdge: v.HouseEdge().Round(4),
		Chips:     chips,
		Spots:     spots,
	}
}

func ToHouseStatsResponse(s model.HouseState) table.HouseStatsResponse {
	res := table.HouseStatsResponse{
		TotalSpins:      s.TotalSpins,
		TotalStaked:     s.TotalStaked,
		PlayerNet:       s.PlayerNet,
		RealizedEdge:    s.RealizedEdge,
		TheoreticalEdge: s.TheoreticalEdge,
		WindowSize:      s.WindowSize,
		WindowSpins:     s.WindowSpins,
		WindowEdge:      s.WindowEdge,
		Drifting:        s.Drifting,
		DriftLog:        make([]table.DriftLogResponse, len(s.DriftLog)),
	}
	for i, d := range s.DriftLog {
		res.DriftLog[i] = table.DriftLogResponse(d)
	}
	if !s.LastUpdateAt.IsZero() {
		t := s.LastUpdateAt
		res.LastUpdateAt = &t
	}
	return res
}
