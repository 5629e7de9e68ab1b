package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func UpsertExchangeRate(pool *pgxpool.Pool, code string, rateToUSD float64) error {
	query := `
		INSERT INTO exchange_rates (currency_code, rate_to_usd, fetched_at)
		VALUES ($1, $2, now())
		ON CONFLICT (currency_code)
		DO UPDATE SET rate_to_usd = EXCLUDED.rate_to_usd, fetched_at = now()`

	_, err := pool.Exec(context.Background(), query, code, rateToUSD)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении курса %s: %v", code, err)
	}
	return nil
}

// GetExchangeRate возвращает закэшированный курс не старше maxAge.
// allowStale снимает ограничение по возрасту (аварийный fallback).
func GetExchangeRate(pool *pgxpool.Pool, code string, maxAge time.Duration, allowStale bool) (*models.ExchangeRate, error) {
	query := `
		SELECT currency_code, rate_to_usd, fetched_at
		FROM exchange_rates
		WHERE currency_code = $1`

	rate := &models.ExchangeRate{}
	err := pool.QueryRow(context.Background(), query, code).Scan(
		&rate.CurrencyCode,
		&rate.RateToUSD,
		&rate.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("курс для валюты %s не найден", code)
		}
		return nil, fmt.Errorf("ошибка при получении курса: %v", err)
	}

	if !allowStale && time.Since(rate.FetchedAt) > maxAge {
		return nil, fmt.Errorf("курс для валюты %s устарел", code)
	}
	return rate, nil
}
