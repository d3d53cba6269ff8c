package house_stats_repo

import (
	"sync"
	"time"

	"roulette_lab/internal/model"
	repoModel "roulette_lab/internal/repository/house_stats_repo/model"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// periodSpinsToCheck Периодичность проверки отклонения (каждые N спинов)
	periodSpinsToCheck = 25
	// minWindowSpins Сколько спинов должно накопиться в окне до первой проверки
	minWindowSpins = 100
	// maxDriftLog Сколько последних изменений флага храним
	maxDriftLog = 50
)

var two = decimal.NewFromInt(2)

// StateRepo Реализация репозитория для сводной статистики казино
type StateRepo struct {
	mtx       sync.RWMutex
	state     repoModel.HouseState
	tolerance decimal.Decimal
	log       *zap.Logger
}

// NewHouseStatsRepository Конструктор с пустым состоянием.
// tolerance - допустимое отклонение преимущества в окне от теоретического
func NewHouseStatsRepository(windowSize int, tolerance decimal.Decimal, log *zap.Logger) *StateRepo {
	if windowSize < 1 {
		windowSize = 1
	}
	r := &StateRepo{
		tolerance: tolerance,
		log:       log.With(zap.String("component", "house_stats_repo")),
	}
	r.state = emptyState(windowSize)
	return r
}

func emptyState(windowSize int) repoModel.HouseState {
	return repoModel.HouseState{
		TotalStaked:    decimal.Zero,
		PlayerNet:      decimal.Zero,
		ExpectedTake:   decimal.Zero,
		Adjustments:    make([]repoModel.DriftLog, 0),
		Window:         make([]repoModel.SpinResult, 0, windowSize),
		WindowSize:     windowSize,
		WindowStaked:   decimal.Zero,
		WindowNet:      decimal.Zero,
		WindowExpected: decimal.Zero,
	}
}

// HouseState Копия текущего состояния для чтения
func (r *StateRepo) HouseState() model.HouseState {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st := r.state
	out := model.HouseState{
		TotalSpins:   st.TotalSpins,
		TotalStaked:  st.TotalStaked,
		PlayerNet:    st.PlayerNet,
		WindowSize:   st.WindowSize,
		WindowSpins:  len(st.Window),
		Drifting:     st.Drifting,
		DriftLog:     make([]model.DriftLog, len(st.Adjustments)),
		LastUpdateAt: st.LastUpdatedAt,
	}
	if st.TotalStaked.IsPositive() {
		out.RealizedEdge = decimal.NewNullDecimal(st.PlayerNet.Neg().Div(st.TotalStaked))
		out.TheoreticalEdge = decimal.NewNullDecimal(st.ExpectedTake.Div(st.TotalStaked))
	}
	if st.WindowStaked.IsPositive() {
		out.WindowEdge = decimal.NewNullDecimal(st.WindowNet.Neg().Div(st.WindowStaked))
	}
	for i, a := range st.Adjustments {
		out.DriftLog[i] = model.DriftLog(a)
	}
	return out
}

// Record Обновление состояния после спина или симуляции
func (r *StateRepo) Record(spins []model.HouseSpin) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, s := range spins {
		expected := s.Stake.Mul(s.Edge)

		r.state.TotalSpins++
		r.state.TotalStaked = r.state.TotalStaked.Add(s.Stake)
		r.state.PlayerNet = r.state.PlayerNet.Add(s.Net)
		r.state.ExpectedTake = r.state.ExpectedTake.Add(expected)

		// Добавляем спин в окно, суммы ведем инкрементально
		r.state.Window = append(r.state.Window, repoModel.SpinResult{
			Stake:    s.Stake,
			Net:      s.Net,
			Expected: expected,
		})
		r.state.WindowStaked = r.state.WindowStaked.Add(s.Stake)
		r.state.WindowNet = r.state.WindowNet.Add(s.Net)
		r.state.WindowExpected = r.state.WindowExpected.Add(expected)

		// Поддерживаем размер окна
		if len(r.state.Window) > r.state.WindowSize {
			old := r.state.Window[0]
			r.state.Window = r.state.Window[1:]
			r.state.WindowStaked = r.state.WindowStaked.Sub(old.Stake)
			r.state.WindowNet = r.state.WindowNet.Sub(old.Net)
			r.state.WindowExpected = r.state.WindowExpected.Sub(old.Expected)
		}

		if r.state.TotalSpins%periodSpinsToCheck == 0 {
			r.checkDrift()
		}
	}
	if len(spins) > 0 {
		r.state.LastUpdatedAt = time.Now().UTC()
	}
}

// Reset Сброс статистики, размер окна сохраняется
func (r *StateRepo) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.state = emptyState(r.state.WindowSize)
}

// checkDrift Сравнивает преимущество в окне с ожидаемым для текущего набора ставок.
// Флаг поднимается при отклонении больше tolerance и снимается при возврате в tolerance/2
func (r *StateRepo) checkDrift() {
	if len(r.state.Window) < minWindowSpins || !r.state.WindowStaked.IsPositive() {
		return
	}

	windowEdge := r.state.WindowNet.Neg().Div(r.state.WindowStaked)
	expected := r.state.WindowExpected.Div(r.state.WindowStaked)
	diff := windowEdge.Sub(expected).Abs()

	switch {
	case !r.state.Drifting && diff.GreaterThan(r.tolerance):
		reason := "преимущество в окне ниже ожидаемого"
		if windowEdge.GreaterThan(expected) {
			reason = "преимущество в окне выше ожидаемого"
		}
		r.setDrift(true, reason, windowEdge, expected)
	case r.state.Drifting && diff.LessThan(r.tolerance.Div(two)):
		r.setDrift(false, "преимущество вернулось к ожидаемому", windowEdge, expected)
	}
}

// Применение флага и логирование
func (r *StateRepo) setDrift(drifting bool, reason string, windowEdge, expected decimal.Decimal) {
	r.state.Drifting = drifting
	r.state.Adjustments = append(r.state.Adjustments, repoModel.DriftLog{
		Timestamp:  time.Now().UTC(),
		Drifting:   drifting,
		Reason:     reason,
		WindowEdge: windowEdge,
		Expected:   expected,
	})
	if len(r.state.Adjustments) > maxDriftLog {
		r.state.Adjustments = r.state.Adjustments[len(r.state.Adjustments)-maxDriftLog:]
	}

	r.log.Info("house edge drift changed",
		zap.Bool("drifting", drifting),
		zap.String("reason", reason),
		zap.String("window_edge", windowEdge.StringFixed(4)),
		zap.String("expected", expected.StringFixed(4)),
		zap.Int("total_spins", r.state.TotalSpins),
	)
}
