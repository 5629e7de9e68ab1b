package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/database"
)

type CurrencyRate struct {
	Code string  `json:"currency"`
	Rate float64 `json:"rate"`
}

var (
	cachedRates  = sync.Map{}
	lastFetch    time.Time
	cacheTimeout = 1 * time.Hour
)

func primaryAPIURL() string {
	if url := os.Getenv("EXCHANGE_RATE_URL"); url != "" {
		return url
	}
	return "https://api.exchangerate-api.com/v4/latest/USD"
}

func fallbackAPIURL() string {
	if url := os.Getenv("EXCHANGE_RATE_FALLBACK_URL"); url != "" {
		return url
	}
	return "https://api.fxratesapi.com/latest?base=USD"
}

// GetCurrencyRate возвращает курс валюты к USD (сколько единиц валюты за доллар).
// Кэш в памяти, при устаревании — перезапрос у API, при ошибке — старый кэш.
func GetCurrencyRate(currencyCode string) (float64, error) {
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))

	if rate, ok := cachedRates.Load(currencyCode); ok {
		if time.Since(lastFetch) < cacheTimeout {
			return rate.(CurrencyRate).Rate, nil
		}
	}

	if time.Since(lastFetch) >= cacheTimeout {
		if err := FetchExchangeRates(); err != nil {
			log.Printf("Не удалось обновить курсы валют: %v", err)
			// Используем устаревший кэш, если он есть
			if rate, ok := cachedRates.Load(currencyCode); ok {
				log.Printf("Используем устаревший курс для валюты %s", currencyCode)
				return rate.(CurrencyRate).Rate, nil
			}
			return 0, err
		}
	}

	if rate, ok := cachedRates.Load(currencyCode); ok {
		return rate.(CurrencyRate).Rate, nil
	}

	return 0, errors.New("валюта не найдена")
}

// FetchExchangeRates обновляет кэш курсов: сначала основной API, потом резервный.
func FetchExchangeRates() error {
	client := http.Client{Timeout: 10 * time.Second}

	var lastErr error
	for _, url := range []string{primaryAPIURL(), fallbackAPIURL()} {
		for i := 0; i < 3; i++ {
			resp, err := client.Get(url)
			if err != nil {
				lastErr = err
				log.Printf("Ошибка запроса курсов (попытка %d): %v", i+1, err)
				time.Sleep(2 * time.Second)
				continue
			}

			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				lastErr = fmt.Errorf("API вернул статус %d", resp.StatusCode)
				log.Printf("API курсов вернул статус %d (попытка %d)", resp.StatusCode, i+1)
				time.Sleep(2 * time.Second)
				continue
			}

			var response struct {
				Rates           map[string]float64 `json:"rates"`
				ConversionRates map[string]float64 `json:"conversion_rates"`
			}
			err = json.NewDecoder(resp.Body).Decode(&response)
			resp.Body.Close()
			if err != nil {
				lastErr = err
				log.Printf("Ошибка разбора ответа API (попытка %d): %v", i+1, err)
				time.Sleep(2 * time.Second)
				continue
			}

			rates := response.Rates
			if len(rates) == 0 {
				rates = response.ConversionRates
			}
			if len(rates) > 0 {
				for code, rate := range rates {
					if rate > 0 {
						cachedRates.Store(code, CurrencyRate{Code: code, Rate: rate})
					}
				}
				lastFetch = time.Now()
				log.Println("Кэш курсов валют обновлён")
				return nil
			}

			lastErr = errors.New("ответ API не содержит курсов")
			time.Sleep(2 * time.Second)
		}
	}

	return lastErr
}

// RefreshRates обновляет кэш и сохраняет курсы в ai-meta-db (CRON-задача).
func RefreshRates(pool *pgxpool.Pool) error {
	if err := FetchExchangeRates(); err != nil {
		return err
	}
	var saveErr error
	cachedRates.Range(func(key, value interface{}) bool {
		rate := value.(CurrencyRate)
		if err := database.UpsertExchangeRate(pool, rate.Code, rate.Rate); err != nil {
			saveErr = err
			return false
		}
		return true
	})
	return saveErr
}

// NormalizeToUSDCents переводит сумму в валюте currencyCode в центы USD.
// Порядок поиска курса: кэш в памяти/API, затем кэш в БД, затем устаревший кэш БД.
func NormalizeToUSDCents(pool *pgxpool.Pool, amount float64, currencyCode string) (int64, error) {
	currencyCode = strings.ToUpper(strings.TrimSpace(currencyCode))
	if currencyCode == "" || currencyCode == "USD" {
		return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
	}

	rate, err := GetCurrencyRate(currencyCode)
	if err != nil && pool != nil {
		if cached, dbErr := database.GetExchangeRate(pool, currencyCode, cacheTimeout, false); dbErr == nil {
			rate, err = cached.RateToUSD, nil
		} else if cached, dbErr := database.GetExchangeRate(pool, currencyCode, 0, true); dbErr == nil {
			log.Printf("Используем устаревший курс из БД для валюты %s", currencyCode)
			rate, err = cached.RateToUSD, nil
		}
	}
	if err != nil {
		return 0, fmt.Errorf("не удалось получить курс для валюты %s: %v", currencyCode, err)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("некорректный курс для валюты %s", currencyCode)
	}

	// Курс хранится как "единиц валюты за USD", поэтому делим
	usd := decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(rate))
	return usd.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}
