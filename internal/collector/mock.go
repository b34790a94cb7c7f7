package collector

import (
	"time"

	"CrossWatch/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price      float64
	DailyData  []model.OHLCV
	HourlyData []model.OHLCV
	Err        error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ string, interval model.Interval, lookback int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if interval == model.IntervalHourly {
		if m.HourlyData != nil {
			return m.HourlyData, nil
		}
		return generateMockBars(m.Price, lookback), nil
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, lookback), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Price, nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
