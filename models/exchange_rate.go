package models

import "time"

type ExchangeRate struct {
	CurrencyCode string    `json:"currency_code" db:"currency_code"`
	RateToUSD    float64   `json:"rate_to_usd" db:"rate_to_usd"`
	FetchedAt    time.Time `json:"fetched_at" db:"fetched_at"`
}
