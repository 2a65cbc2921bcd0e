package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// CQL des chemins chauds du checkout. Les stores réutilisent ces constantes
// telles quelles : le cache de prepared statements de gocql est indexé par le
// texte exact de la requête, donc le préchauffage au démarrage profite à
// toutes les exécutions suivantes du même texte.
const (
	StmtGetOrderByID = `SELECT order_id, user_id, address_id, payment_method, status, payment_status,
		items_json, subtotal, shipping_fee, discount, total, voucher_code, note, transaction_id, created_at
		FROM orders WHERE order_id = ?`

	StmtInsertOrder = `INSERT INTO orders (order_id, user_id, address_id, payment_method, status, payment_status,
		items_json, subtotal, shipping_fee, discount, total, voucher_code, note, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	StmtInsertOrderByUser = `INSERT INTO orders_by_user (user_id, created_at, order_id, status, payment_method, total)
		VALUES (?, ?, ?, ?, ?, ?)`

	StmtUpdateOrderStatus = `UPDATE orders SET status = ?, payment_status = ?, transaction_id = ? WHERE order_id = ?`

	StmtUpdateOrderByUserStatus = `UPDATE orders_by_user SET status = ? WHERE user_id = ? AND created_at = ? AND order_id = ?`

	StmtListOrdersByUser = `SELECT order_id, status, payment_method, total, created_at
		FROM orders_by_user WHERE user_id = ? ORDER BY created_at DESC`

	StmtGetVoucherByCode = `SELECT voucher_id, code, discount_type, discount_value, discount_max_value,
		min_order_total, min_rank, starts_at, ends_at, is_active
		FROM vouchers_by_code WHERE code = ? LIMIT 1`
)

var preparedOnce sync.Once

// InitPreparedStatements préchauffe les lectures fréquentes : une exécution
// à vide suffit pour que gocql prépare la requête sur les connexions du pool,
// et la latence de préparation ne tombe pas sur la première requête client.
// Les écritures sont préparées à leur premier usage.
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		warmups := map[string]*gocql.Query{
			"orders":           session.Query(StmtGetOrderByID, gocql.UUID{}),
			"orders_by_user":   session.Query(StmtListOrdersByUser, ""),
			"vouchers_by_code": session.Query(StmtGetVoucherByCode, ""),
		}
		for name, query := range warmups {
			if err := query.Iter().Close(); err != nil {
				log.Printf("⚠️ Préchauffage prepared statement %s: %v", name, err)
			}
		}

		log.Println("✅ Prepared statements initialisés")
	})
}
