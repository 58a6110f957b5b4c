package dto

import "github.com/hongminglow/labubu-portal/internal/models"

type ReferralStatsResult struct {
	Status
	ReferralCode string                `json:"referral_code"`
	Stats        *models.ReferralStats `json:"stats,omitempty"`
}

type ReferralListResult struct {
	Status
	Referrals []models.Referral `json:"referrals"`
}

type BonusHistoryResult struct {
	Status
	Bonuses []models.ReferralBonus `json:"bonuses"`
}
