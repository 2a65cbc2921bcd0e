package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Types de réduction
const (
	DiscountTypePercent = "PERCENT"
	DiscountTypeAmount  = "AMOUNT"
)

// Rangs de fidélité, du plus bas au plus haut
const (
	RankMember  = "MEMBER"
	RankSilver  = "SILVER"
	RankGold    = "GOLD"
	RankDiamond = "DIAMOND"
)

type Voucher struct {
	ID gocql.UUID `json:"id"`
	// Code est toujours stocké en majuscules, forme canonique
	Code string `json:"code"`
	// DiscountType : "PERCENT" ou "AMOUNT"
	DiscountType  string  `json:"discountType"`
	DiscountValue float64 `json:"discountValue"`
	// DiscountMaxValue plafonne la remise, PERCENT uniquement
	DiscountMaxValue *float64  `json:"discountMaxValue,omitempty"`
	MinOrderTotal    float64   `json:"minOrderTotal"`
	MinRank          string    `json:"minRank"`
	StartsAt         time.Time `json:"startsAt"`
	EndsAt           time.Time `json:"endsAt"`
	IsActive         bool      `json:"isActive"`
}

// UserVoucher est une entrée du portefeuille : un voucher réclamé par un utilisateur
type UserVoucher struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"userId"`
	VoucherID gocql.UUID `json:"voucherId"`
	IsUsed    bool       `json:"isUsed"`
	ClaimedAt time.Time  `json:"claimedAt"`
}

// Codes de raison d'inéligibilité (affichés côté client près du sélecteur de voucher)
const (
	VoucherReasonNotFound         = "not_found"
	VoucherReasonInactive         = "inactive"
	VoucherReasonNotStarted       = "not_started"
	VoucherReasonExpired          = "expired"
	VoucherReasonRankInsufficient = "rank_insufficient"
	VoucherReasonBelowMinimum     = "below_minimum"
	VoucherReasonAlreadyUsed      = "already_used"
)

// VoucherValidation est le résultat de l'évaluation d'un voucher.
// L'inéligibilité n'est jamais une erreur : Discount = 0 + une raison lisible.
type VoucherValidation struct {
	IsValid      bool    `json:"is_valid"`
	Reason       string  `json:"reason,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Discount     float64 `json:"discount"`
	Code         string  `json:"code,omitempty"`
}
