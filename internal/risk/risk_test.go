package risk_test

import (
	"testing"
	"time"

	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/internal/risk"
	"github.com/SHUB-8/Bank-of-Anthos-AI-AGENTS/models"
)

func testProfile() *models.UserProfile {
	hours := make([]int, 0, 15)
	for h := 8; h < 23; h++ {
		hours = append(hours, h)
	}
	return &models.UserProfile{
		AccountID:            "1234567890",
		MeanTxnAmountCents:   5000,
		StddevTxnAmountCents: 2500,
		ActiveHours:          hours,
	}
}

func TestScoreNormalTransaction(t *testing.T) {
	// 12:00 UTC, сумма равна средней — никаких сигналов
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	req := &models.AnomalyCheckRequest{
		AccountID:   "1234567890",
		AmountCents: 5000,
	}

	score, reasons := risk.Score(testProfile(), req, nil, now)
	if score >= risk.SuspiciousThreshold {
		t.Errorf("обычная транзакция получила счёт %f", score)
	}
	if len(reasons) != 0 {
		t.Errorf("ожидался пустой список причин, получили %v", reasons)
	}

	status, action := risk.Decide(score)
	if status != risk.StatusNormal || action != risk.ActionAllow {
		t.Errorf("ожидали normal/allow, получили %s/%s", status, action)
	}
}

func TestScoreLargeDeviation(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	req := &models.AnomalyCheckRequest{
		AccountID:   "1234567890",
		AmountCents: 50000, // z = (50000-5000)/2500 = 18
	}

	score, reasons := risk.Score(testProfile(), req, nil, now)
	if score < risk.FraudThreshold {
		t.Errorf("сильное отклонение суммы получило счёт %f", score)
	}
	if len(reasons) == 0 {
		t.Error("ожидались причины для аномальной суммы")
	}

	status, action := risk.Decide(score)
	if status != risk.StatusFraud || action != risk.ActionBlock {
		t.Errorf("ожидали fraud/block, получили %s/%s", status, action)
	}
}

func TestScoreOutsideActiveHours(t *testing.T) {
	// 03:00 UTC — вне активных часов 8-22
	now := time.Date(2025, 6, 10, 3, 0, 0, 0, time.UTC)
	req := &models.AnomalyCheckRequest{
		AccountID:   "1234567890",
		AmountCents: 5000,
	}

	_, reasons := risk.Score(testProfile(), req, nil, now)
	found := false
	for _, r := range reasons {
		if r == "Transaction at hour 3 outside active hours" {
			found = true
		}
	}
	if !found {
		t.Errorf("не найдена причина про неактивные часы: %v", reasons)
	}
}

func TestScoreRequestTimestampOverridesNow(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	ts := time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC)
	req := &models.AnomalyCheckRequest{
		AccountID:   "1234567890",
		AmountCents: 5000,
		Timestamp:   &ts,
	}

	_, reasons := risk.Score(testProfile(), req, nil, now)
	if len(reasons) == 0 {
		t.Error("метка времени запроса должна была попасть вне активных часов")
	}
}

func TestScoreHighFrequency(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	req := &models.AnomalyCheckRequest{
		AccountID:   "1234567890",
		AmountCents: 5000,
	}

	var txns []time.Time
	for i := 0; i < 12; i++ {
		txns = append(txns, now.Add(-time.Duration(i)*time.Minute))
	}
	// Вчерашние транзакции считаться не должны
	txns = append(txns, now.AddDate(0, 0, -1))

	_, reasons := risk.Score(testProfile(), req, txns, now)
	found := false
	for _, r := range reasons {
		if r == "High transactions today: 12" {
			found = true
		}
	}
	if !found {
		t.Errorf("не найдена причина про частоту: %v", reasons)
	}
}

func TestScoreAbsoluteAmountThresholds(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	profile := &models.UserProfile{AccountID: "1234567890"} // без статистики

	tests := []struct {
		amount int64
		reason string
	}{
		{150000, "Very large amount"},
		{60000, "Large amount"},
	}
	for _, tt := range tests {
		req := &models.AnomalyCheckRequest{AccountID: "1234567890", AmountCents: tt.amount}
		_, reasons := risk.Score(profile, req, nil, now)
		found := false
		for _, r := range reasons {
			if r == tt.reason {
				found = true
			}
		}
		if !found {
			t.Errorf("для суммы %d не найдена причина %q: %v", tt.amount, tt.reason, reasons)
		}
	}
}

func TestDecideThresholds(t *testing.T) {
	tests := []struct {
		score  float64
		status string
		action string
	}{
		{0, risk.StatusNormal, risk.ActionAllow},
		{2.99, risk.StatusNormal, risk.ActionAllow},
		{3.0, risk.StatusSuspicious, risk.ActionConfirm},
		{4.99, risk.StatusSuspicious, risk.ActionConfirm},
		{5.0, risk.StatusFraud, risk.ActionBlock},
		{9.5, risk.StatusFraud, risk.ActionBlock},
	}
	for _, tt := range tests {
		status, action := risk.Decide(tt.score)
		if status != tt.status || action != tt.action {
			t.Errorf("Decide(%f) = %s/%s, ожидали %s/%s", tt.score, status, action, tt.status, tt.action)
		}
	}
}
