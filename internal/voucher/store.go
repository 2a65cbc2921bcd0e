package voucher

import (
	"strings"
	"time"

	"github.com/gocql/gocql"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
)

const voucherColumns = `voucher_id, code, discount_type, discount_value, discount_max_value,
	min_order_total, min_rank, starts_at, ends_at, is_active`

func scanVoucher(scan func(...interface{}) error) (models.Voucher, error) {
	var v models.Voucher
	err := scan(&v.ID, &v.Code, &v.DiscountType, &v.DiscountValue, &v.DiscountMaxValue,
		&v.MinOrderTotal, &v.MinRank, &v.StartsAt, &v.EndsAt, &v.IsActive)
	return v, err
}

// GetByCode récupère un voucher par code (canonique majuscules)
func GetByCode(code string) (models.Voucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.Voucher{}, err
	}

	query := session.Query(database.StmtGetVoucherByCode,
		strings.ToUpper(strings.TrimSpace(code)))
	return scanVoucher(query.Scan)
}

// GetByID récupère un voucher par identifiant
func GetByID(voucherID gocql.UUID) (models.Voucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.Voucher{}, err
	}

	query := session.Query(`SELECT `+voucherColumns+` FROM vouchers WHERE voucher_id = ?`, voucherID)
	return scanVoucher(query.Scan)
}

// ListActive retourne les vouchers actifs dont la fenêtre couvre now
func ListActive(now time.Time) ([]models.Voucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT ` + voucherColumns + ` FROM vouchers`).Iter()
	defer iter.Close()

	var vouchers []models.Voucher
	var v models.Voucher
	for iter.Scan(&v.ID, &v.Code, &v.DiscountType, &v.DiscountValue, &v.DiscountMaxValue,
		&v.MinOrderTotal, &v.MinRank, &v.StartsAt, &v.EndsAt, &v.IsActive) {
		if IsValid(v, now) {
			voucher := v
			if v.DiscountMaxValue != nil {
				maxValue := *v.DiscountMaxValue
				voucher.DiscountMaxValue = &maxValue
			}
			vouchers = append(vouchers, voucher)
		}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return vouchers, nil
}

// Claim ajoute un voucher au portefeuille de l'utilisateur
func Claim(userID string, voucherID gocql.UUID) (models.UserVoucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.UserVoucher{}, err
	}

	entry := models.UserVoucher{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		VoucherID: voucherID,
		IsUsed:    false,
		ClaimedAt: time.Now(),
	}

	err = session.Query(`INSERT INTO user_vouchers (user_id, voucher_id, user_voucher_id, is_used, claimed_at)
		VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.VoucherID, entry.ID, entry.IsUsed, entry.ClaimedAt,
	).Exec()
	return entry, err
}

// WalletEntry retourne l'entrée du portefeuille pour un voucher donné.
// gocql.ErrNotFound si le voucher n'a jamais été réclamé par l'utilisateur.
func WalletEntry(userID string, voucherID gocql.UUID) (models.UserVoucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return models.UserVoucher{}, err
	}

	var entry models.UserVoucher
	err = session.Query(`SELECT user_id, voucher_id, user_voucher_id, is_used, claimed_at
		FROM user_vouchers WHERE user_id = ? AND voucher_id = ?`, userID, voucherID,
	).Scan(&entry.UserID, &entry.VoucherID, &entry.ID, &entry.IsUsed, &entry.ClaimedAt)
	return entry, err
}

// ListWallet retourne le portefeuille complet de l'utilisateur
func ListWallet(userID string) ([]models.UserVoucher, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT user_id, voucher_id, user_voucher_id, is_used, claimed_at
		FROM user_vouchers WHERE user_id = ?`, userID).Iter()

	var wallet []models.UserVoucher
	var entry models.UserVoucher
	for iter.Scan(&entry.UserID, &entry.VoucherID, &entry.ID, &entry.IsUsed, &entry.ClaimedAt) {
		wallet = append(wallet, entry)
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return wallet, nil
}

// MarkUsed marque l'entrée du portefeuille comme consommée par une commande
func MarkUsed(userID string, voucherID gocql.UUID) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	return session.Query(`UPDATE user_vouchers SET is_used = true WHERE user_id = ? AND voucher_id = ?`,
		userID, voucherID,
	).Exec()
}
