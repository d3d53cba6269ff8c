package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Состояние казино по всем столам
type HouseState struct {
	TotalSpins    int             // Сколько всего спинов сделано
	TotalStaked   decimal.Decimal // Сумма всех ставок
	PlayerNet     decimal.Decimal // Итог игроков, положительный - казино в минусе
	ExpectedTake  decimal.Decimal // Ожидаемый доход казино = Σ ставка*преимущество
	Drifting      bool            // Флаг отклонения преимущества в окне
	Adjustments   []DriftLog      // Лог переключений флага
	LastUpdatedAt time.Time

	Window         []SpinResult    // Окно последних спинов для анализа
	WindowSize     int             // Размер окна
	WindowStaked   decimal.Decimal // Сумма ставок в окне
	WindowNet      decimal.Decimal // Итог игроков в окне
	WindowExpected decimal.Decimal // Ожидаемый доход казино в окне
}

// Лог переключений флага отклонения
type DriftLog struct {
	Timestamp  time.Time
	Drifting   bool
	Reason     string
	WindowEdge decimal.Decimal
	Expected   decimal.Decimal
}

// Результат спина для окна
type SpinResult struct {
	Stake    decimal.Decimal
	Net      decimal.Decimal
	Expected decimal.Decimal
}
