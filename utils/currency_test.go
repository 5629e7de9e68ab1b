package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizeToUSDCentsUSD(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     int64
	}{
		{12.34, "USD", 1234},
		{12.34, "usd", 1234},
		{12.34, "", 1234},
		{0.01, "USD", 1},
		{100, "USD", 10000},
	}
	for _, tt := range tests {
		got, err := NormalizeToUSDCents(nil, tt.amount, tt.currency)
		if err != nil {
			t.Fatalf("неожиданная ошибка для %f %s: %v", tt.amount, tt.currency, err)
		}
		if got != tt.want {
			t.Errorf("NormalizeToUSDCents(%f, %q) = %d, ожидали %d", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestNormalizeToUSDCentsForeignCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{"EUR":0.9,"RUB":90}}`))
	}))
	defer srv.Close()
	t.Setenv("EXCHANGE_RATE_URL", srv.URL)
	t.Setenv("EXCHANGE_RATE_FALLBACK_URL", srv.URL)

	if err := FetchExchangeRates(); err != nil {
		t.Fatalf("ошибка загрузки курсов: %v", err)
	}

	// 9 EUR при курсе 0.9 за доллар = 10 USD
	got, err := NormalizeToUSDCents(nil, 9, "EUR")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got != 1000 {
		t.Errorf("получили %d, ожидали 1000", got)
	}

	// 90 RUB при курсе 90 за доллар = 1 USD
	got, err = NormalizeToUSDCents(nil, 90, "rub")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if got != 100 {
		t.Errorf("получили %d, ожидали 100", got)
	}
}

func TestFetchExchangeRatesFallback(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer primary.Close()
	fallback := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"conversion_rates":{"GBP":0.8}}`))
	}))
	defer fallback.Close()
	t.Setenv("EXCHANGE_RATE_URL", primary.URL)
	t.Setenv("EXCHANGE_RATE_FALLBACK_URL", fallback.URL)

	if err := FetchExchangeRates(); err != nil {
		t.Fatalf("резервный API должен был сработать: %v", err)
	}
	rate, err := GetCurrencyRate("GBP")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if rate != 0.8 {
		t.Errorf("получили курс %f", rate)
	}
}
