package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

// Пороги принятия решения по итоговому счёту риска.
const (
	FraudThreshold      = 5.0
	SuspiciousThreshold = 3.0
)

const (
	StatusNormal     = "normal"
	StatusSuspicious = "suspicious"
	StatusFraud      = "fraud"

	ActionAllow   = "allow"
	ActionConfirm = "confirm"
	ActionBlock   = "block"
)

// Score вычисляет счёт риска и список причин для предлагаемой транзакции.
// recentTxns — метки времени последних транзакций счёта (для частотного сигнала).
func Score(profile *models.UserProfile, req *models.AnomalyCheckRequest, recentTxns []time.Time, now time.Time) (float64, []string) {
	var components []float64
	var reasons []string

	// Отклонение суммы от среднего (z-счёт)
	if profile.StddevTxnAmountCents > 0 {
		z := math.Abs(float64(req.AmountCents-profile.MeanTxnAmountCents) / float64(profile.StddevTxnAmountCents))
		components = append(components, z)
		if z > 1.5 {
			reasons = append(reasons, fmt.Sprintf("Amount deviates from mean (z=%.2f)", z))
		}
	}

	// Транзакция вне активных часов
	ts := now
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	hour := ts.UTC().Hour()
	if len(profile.ActiveHours) > 0 {
		active := false
		for _, h := range profile.ActiveHours {
			if h == hour {
				active = true
				break
			}
		}
		if !active {
			components = append(components, 0.8)
			reasons = append(reasons, fmt.Sprintf("Transaction at hour %d outside active hours", hour))
		}
	}

	// Частота транзакций за сегодня
	today := 0
	y, m, d := now.UTC().Date()
	for _, t := range recentTxns {
		ty, tm, td := t.UTC().Date()
		if ty == y && tm == m && td == d {
			today++
		}
	}
	if today > 10 {
		components = append(components, 1.0)
		reasons = append(reasons, fmt.Sprintf("High transactions today: %d", today))
	} else if today > 5 {
		components = append(components, 0.5)
		reasons = append(reasons, fmt.Sprintf("Elevated transactions today: %d", today))
	}

	// Абсолютные пороги по сумме
	if req.AmountCents > 100000 {
		components = append(components, 0.8)
		reasons = append(reasons, "Very large amount")
	} else if req.AmountCents > 50000 {
		components = append(components, 0.4)
		reasons = append(reasons, "Large amount")
	}

	if len(components) == 0 {
		return 0, reasons
	}

	// Итог: доминирующий сигнал плюс небольшая добавка от остальных
	primary := 0.0
	sum := 0.0
	for _, c := range components {
		if c > primary {
			primary = c
		}
		sum += c
	}
	return primary + sum*0.1, reasons
}

// Decide переводит счёт риска в статус и действие.
func Decide(score float64) (status, action string) {
	switch {
	case score >= FraudThreshold:
		return StatusFraud, ActionBlock
	case score >= SuspiciousThreshold:
		return StatusSuspicious, ActionConfirm
	default:
		return StatusNormal, ActionAllow
	}
}
