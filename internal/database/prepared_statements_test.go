package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Le nombre de placeholders de chaque statement partagé doit rester aligné
// sur les arguments que les stores lui passent : un écart casserait toutes
// les requêtes du chemin chaud d'un coup.
func TestCheckoutStatements_PlaceholderArity(t *testing.T) {
	tests := []struct {
		name string
		stmt string
		want int
	}{
		{"get order by id", StmtGetOrderByID, 1},
		{"insert order", StmtInsertOrder, 15},
		{"insert order by user", StmtInsertOrderByUser, 6},
		{"update order status", StmtUpdateOrderStatus, 4},
		{"update order by user status", StmtUpdateOrderByUserStatus, 4},
		{"list orders by user", StmtListOrdersByUser, 1},
		{"get voucher by code", StmtGetVoucherByCode, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, strings.Count(tt.stmt, "?"), tt.name)
	}
}

func TestCheckoutStatements_ColumnsMatchInsert(t *testing.T) {
	// La projection de lecture et la liste d'insertion doivent porter les
	// mêmes colonnes : GetByID scanne dans l'ordre de StmtGetOrderByID ce
	// que Insert a écrit via StmtInsertOrder.
	for _, column := range []string{
		"order_id", "user_id", "address_id", "payment_method", "status", "payment_status",
		"items_json", "subtotal", "shipping_fee", "discount", "total",
		"voucher_code", "note", "transaction_id", "created_at",
	} {
		assert.Contains(t, StmtGetOrderByID, column)
		assert.Contains(t, StmtInsertOrder, column)
	}
}
