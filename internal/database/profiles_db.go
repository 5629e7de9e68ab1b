package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func CreateUserProfile(pool *pgxpool.Pool, profile *models.UserProfile) error {
	query := `
		INSERT INTO user_profiles (account_id, mean_txn_amount_cents, stddev_txn_amount_cents, active_hours, email_for_alerts)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING profile_id, created_at`

	err := pool.QueryRow(context.Background(), query,
		profile.AccountID,
		profile.MeanTxnAmountCents,
		profile.StddevTxnAmountCents,
		profile.ActiveHours,
		profile.EmailForAlerts).Scan(&profile.ProfileID, &profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании профиля: %v", err)
	}
	return nil
}

func GetUserProfileByAccountID(pool *pgxpool.Pool, accountID string) (*models.UserProfile, error) {
	query := `
		SELECT profile_id, account_id, mean_txn_amount_cents, stddev_txn_amount_cents, active_hours, COALESCE(email_for_alerts, ''), created_at
		FROM user_profiles
		WHERE account_id = $1`

	profile := &models.UserProfile{}
	err := pool.QueryRow(context.Background(), query, accountID).Scan(
		&profile.ProfileID,
		&profile.AccountID,
		&profile.MeanTxnAmountCents,
		&profile.StddevTxnAmountCents,
		&profile.ActiveHours,
		&profile.EmailForAlerts,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("профиль для счёта %s не найден", accountID)
		}
		return nil, fmt.Errorf("ошибка при получении профиля: %v", err)
	}

	return profile, nil
}

// GetOrCreateUserProfile возвращает профиль счёта, создавая его с дефолтами
// ($50 средняя, $25 отклонение, активные часы 8-22), если профиля ещё нет.
func GetOrCreateUserProfile(pool *pgxpool.Pool, accountID string) (*models.UserProfile, error) {
	profile, err := GetUserProfileByAccountID(pool, accountID)
	if err == nil {
		return profile, nil
	}

	hours := make([]int, 0, 15)
	for h := 8; h < 23; h++ {
		hours = append(hours, h)
	}
	profile = &models.UserProfile{
		AccountID:            accountID,
		MeanTxnAmountCents:   5000,
		StddevTxnAmountCents: 2500,
		ActiveHours:          hours,
	}
	if err := CreateUserProfile(pool, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func UpdateUserProfile(pool *pgxpool.Pool, profile *models.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET mean_txn_amount_cents = $1, stddev_txn_amount_cents = $2, active_hours = $3, email_for_alerts = $4
		WHERE account_id = $5`

	result, err := pool.Exec(context.Background(), query,
		profile.MeanTxnAmountCents,
		profile.StddevTxnAmountCents,
		profile.ActiveHours,
		profile.EmailForAlerts,
		profile.AccountID)
	if err != nil {
		return fmt.Errorf("ошибка обновления профиля: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("профиль для счёта %s не найден", profile.AccountID)
	}
	return nil
}
