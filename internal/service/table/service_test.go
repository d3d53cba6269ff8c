package table

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"roulette_lab/internal/model"
	"roulette_lab/internal/repository"
	"roulette_lab/internal/repository/house_stats_repo"
	"roulette_lab/internal/roulette"
	"roulette_lab/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeCfg struct {
	maxSpins int
}

func (c fakeCfg) Chips() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, 7)
	for _, v := range []int64{1, 2, 5, 10, 25, 50, 100} {
		out = append(out, decimal.NewFromInt(v))
	}
	return out
}
func (c fakeCfg) MaxSimulationSpins() int { return c.maxSpins }
func (c fakeCfg) DefaultVariant() roulette.Variant { return roulette.European }
func (c fakeCfg) RecentSpins() int { return roulette.DefaultRecentSpins }

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTableRepo struct {
	mu     sync.Mutex
	tables map[uuid.UUID]model.Table
	saves  int
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uuid.UUID]model.Table)}
}

func (r *fakeTableRepo) Create(_ context.Context, t *model.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables[t.ID] = *t
	return nil
}

func (r *fakeTableRepo) Get(_ context.Context, id uuid.UUID) (*model.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTableRepo) Save(_ context.Context, t *model.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[t.ID]; !ok {
		return repository.ErrNotFound
	}
	r.tables[t.ID] = *t
	r.saves++
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tables, id)
	return nil
}

type fixture struct {
	serv  service.TableService
	repo  *fakeTableRepo
	house *house_stats_repo.StateRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	repo := newFakeTableRepo()
	house := house_stats_repo.NewHouseStatsRepository(1000, decimal.RequireFromString("0.02"), zap.NewNop())
	var seed uint64
	s := NewTableService(fakeCfg{maxSpins: 500}, repo, house, fakeTxManager{}, zap.NewNop(),
		WithWheelFactory(func(v roulette.Variant) *roulette.Wheel {
			seed++
			return roulette.NewSeededWheel(v, seed, seed)
		}),
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }),
	)
	return fixture{serv: s, repo: repo, house: house}
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCreateUsesDefaultVariant(t *testing.T) {
	f := newFixture(t)

	tv, err := f.serv.Create(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if tv.Variant != roulette.European || len(tv.Bets) != 0 || len(tv.History) != 0 {
		t.Fatalf("unexpected table %+v", tv)
	}
	if _, ok := f.repo.tables[tv.ID]; !ok {
		t.Fatal("table was not stored")
	}
}

func TestCreateRejectsUnknownVariant(t *testing.T) {
	f := newFixture(t)
	if _, err := f.serv.Create(context.Background(), "FR"); !errors.Is(err, service.ErrInvalidVariant) {
		t.Fatalf("err = %v, want ErrInvalidVariant", err)
	}
}

func TestGetUnknownTable(t *testing.T) {
	f := newFixture(t)
	if _, err := f.serv.Get(context.Background(), uuid.New()); !errors.Is(err, service.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
}

func TestPlaceAndRemove(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)

	if _, err := f.serv.Place(ctx, tv.ID, "n:17", dec(5)); err != nil {
		t.Fatal(err)
	}
	got, err := f.serv.Place(ctx, tv.ID, "n:17", dec(10))
	if err != nil {
		t.Fatal(err)
	}
	if !got.TotalStake.Equal(dec(15)) || len(got.Bets) != 1 || got.Bets[0].Payout != 35 {
		t.Fatalf("unexpected bets %+v", got.Bets)
	}

	got, err = f.serv.Remove(ctx, tv.ID, "n:17", dec(100))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bets) != 0 {
		t.Fatalf("stake should be floored and removed, got %+v", got.Bets)
	}
}

func TestPlaceRejectsOddChip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)

	if _, err := f.serv.Place(ctx, tv.ID, "n:1", dec(3)); !errors.Is(err, service.ErrInvalidChip) {
		t.Fatalf("err = %v, want ErrInvalidChip", err)
	}
}

func TestPlaceUnknownSpotIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)

	got, err := f.serv.Place(ctx, tv.ID, "n:00", dec(5))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Bets) != 0 {
		t.Fatalf("bets = %+v", got.Bets)
	}
	if f.repo.saves != 0 {
		t.Fatalf("no-op must not be saved, saves = %d", f.repo.saves)
	}
}

func TestSetVariantDropsDoubleZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.American)

	_, _ = f.serv.Place(ctx, tv.ID, "n:00", dec(10))
	_, _ = f.serv.Place(ctx, tv.ID, "even:red", dec(5))
	_, _ = f.serv.Spin(ctx, tv.ID)

	ch, err := f.serv.SetVariant(ctx, tv.ID, roulette.European)
	if err != nil {
		t.Fatal(err)
	}
	if len(ch.Dropped) != 1 || ch.Dropped[0] != "n:00" {
		t.Fatalf("dropped = %v", ch.Dropped)
	}
	if ch.Table.Variant != roulette.European || !ch.Table.TotalStake.Equal(dec(5)) {
		t.Fatalf("table = %+v", ch.Table)
	}
	if len(ch.Table.History) != 1 {
		t.Fatalf("history must survive a variant switch, got %d", len(ch.Table.History))
	}

	if _, err := f.serv.SetVariant(ctx, tv.ID, "XX"); !errors.Is(err, service.ErrInvalidVariant) {
		t.Fatalf("err = %v, want ErrInvalidVariant", err)
	}
}

func TestSpinAppendsAndFeedsHouse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)
	_, _ = f.serv.Place(ctx, tv.ID, "even:black", dec(10))

	var cum decimal.Decimal
	for i := 0; i < 3; i++ {
		out, err := f.serv.Spin(ctx, tv.ID)
		if err != nil {
			t.Fatal(err)
		}
		cum = cum.Add(out.Entry.Net)
		if !out.Table.PnL.Equal(cum) || len(out.Table.History) != i+1 {
			t.Fatalf("spin %d: pnl %s history %d", i, out.Table.PnL, len(out.Table.History))
		}
		black := roulette.ColorOf(out.Entry.Outcome) == roulette.Black
		if black != (len(out.Winners) == 1) {
			t.Fatalf("spin %d: outcome %s, winners %+v", i, out.Entry.Outcome, out.Winners)
		}
	}

	hs := f.house.HouseState()
	if hs.TotalSpins != 3 || !hs.TotalStaked.Equal(dec(30)) || !hs.PlayerNet.Equal(cum) {
		t.Fatalf("house = %+v", hs)
	}
}

func TestSimulateClampsAndReplaces(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)
	_, _ = f.serv.Place(ctx, tv.ID, "dozen:1", dec(5))
	_, _ = f.serv.Spin(ctx, tv.ID)

	res, err := f.serv.Simulate(ctx, tv.ID, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Spins != 500 || len(res.Table.History) != 500 || res.Stats.Spins != 500 {
		t.Fatalf("spins = %d, history = %d", res.Spins, len(res.Table.History))
	}
	if !res.Stats.FinalPnL.Equal(res.PnL) {
		t.Fatalf("stats pnl %s, run pnl %s", res.Stats.FinalPnL, res.PnL)
	}

	res, err = f.serv.Simulate(ctx, tv.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Spins != 1 || len(res.Table.History) != 1 {
		t.Fatalf("simulate(0) ran %d spins", res.Spins)
	}

	if got := f.house.HouseState().TotalSpins; got != 502 {
		t.Fatalf("house spins = %d, want 502", got)
	}
}

func TestResetKeepsBets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)
	_, _ = f.serv.Place(ctx, tv.ID, "col:2", dec(25))
	_, _ = f.serv.Simulate(ctx, tv.ID, 50)

	got, err := f.serv.Reset(ctx, tv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.History) != 0 || !got.PnL.IsZero() || !got.TotalStake.Equal(dec(25)) {
		t.Fatalf("unexpected table after reset %+v", got)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.American)
	_, _ = f.serv.Place(ctx, tv.ID, "n:00", dec(1))
	_, _ = f.serv.Simulate(ctx, tv.ID, 200)

	st, err := f.serv.Stats(ctx, tv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if st.Spins != 200 || len(st.Recent) != roulette.DefaultRecentSpins {
		t.Fatalf("spins %d, recent %d", st.Spins, len(st.Recent))
	}
	if !st.TheoreticalEdge.Equal(roulette.American.HouseEdge()) || !st.Wagered.Equal(dec(200)) {
		t.Fatalf("edge %s wagered %s", st.TheoreticalEdge, st.Wagered)
	}
}

func TestStatsUsesStakeOfEachSpin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)

	_, _ = f.serv.Place(ctx, tv.ID, "even:red", dec(10))
	for i := 0; i < 20; i++ {
		if _, err := f.serv.Spin(ctx, tv.ID); err != nil {
			t.Fatal(err)
		}
	}
	_, _ = f.serv.Clear(ctx, tv.ID)
	_, _ = f.serv.Place(ctx, tv.ID, "n:17", dec(100))

	st, err := f.serv.Stats(ctx, tv.ID)
	if err != nil {
		t.Fatal(err)
	}
	if st.Spins != 20 || !st.Wagered.Equal(dec(200)) || !st.StakePerSpin.Equal(dec(100)) {
		t.Fatalf("spins %d, wagered %s, stake per spin %s", st.Spins, st.Wagered, st.StakePerSpin)
	}

	// Оборот стола совпадает с оборотом в статистике казино
	house := f.house.HouseState()
	if !house.TotalStaked.Equal(st.Wagered) {
		t.Fatalf("house staked %s, table wagered %s", house.TotalStaked, st.Wagered)
	}
	wantEdge := st.FinalPnL.Neg().Div(dec(200))
	if !st.RealizedEdge.Valid || !st.RealizedEdge.Decimal.Equal(wantEdge) {
		t.Fatalf("realized edge %+v, want %s", st.RealizedEdge, wantEdge)
	}
}

func TestRemoveRejectsOddChip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)
	_, _ = f.serv.Place(ctx, tv.ID, "n:1", dec(5))

	if _, err := f.serv.Remove(ctx, tv.ID, "n:1", dec(3)); !errors.Is(err, service.ErrInvalidChip) {
		t.Fatalf("err = %v, want ErrInvalidChip", err)
	}
	got, _ := f.serv.Get(ctx, tv.ID)
	if !got.TotalStake.Equal(dec(5)) {
		t.Fatalf("stake = %s, want 5", got.TotalStake)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tv, _ := f.serv.Create(ctx, roulette.European)

	if err := f.serv.Delete(ctx, tv.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.serv.Delete(ctx, tv.ID); !errors.Is(err, service.ErrTableNotFound) {
		t.Fatalf("err = %v, want ErrTableNotFound", err)
	}
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)

	v, spots, err := f.serv.Catalog(roulette.American)
	if err != nil {
		t.Fatal(err)
	}
	if v != roulette.American || len(spots) != 152 {
		t.Fatalf("%s catalog = %d spots", v, len(spots))
	}
	if v, _, _ := f.serv.Catalog(""); v != roulette.European {
		t.Fatalf("default variant = %s", v)
	}
	if _, _, err := f.serv.Catalog("nope"); !errors.Is(err, service.ErrInvalidVariant) {
		t.Fatalf("err = %v", err)
	}
}
