package orders

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"

	"lumina_back_end/internal/database"
	"lumina_back_end/internal/models"
)

// Insert écrit la commande dans les deux tables : orders (par id) et
// orders_by_user (liste datée d'un utilisateur).
func Insert(order models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	if err := session.Query(database.StmtInsertOrder,
		order.ID, order.UserID, order.AddressID, order.PaymentMethod, order.Status, order.PaymentStatus,
		string(itemsJSON), order.Subtotal, order.ShippingFee, order.Discount, order.Total,
		order.VoucherCode, order.Note, order.TransactionID, order.CreatedAt,
	).Exec(); err != nil {
		return err
	}

	return session.Query(database.StmtInsertOrderByUser,
		order.UserID, order.CreatedAt, order.ID, order.Status, order.PaymentMethod, order.Total,
	).Exec()
}

// GetByID relit une commande. gocql.ErrNotFound si elle n'existe pas.
func GetByID(orderID gocql.UUID) (models.Order, error) {
	var order models.Order
	var itemsJSON string

	session, err := database.GetOrdersSession()
	if err != nil {
		return order, err
	}

	if err := session.Query(database.StmtGetOrderByID, orderID).Scan(
		&order.ID, &order.UserID, &order.AddressID, &order.PaymentMethod, &order.Status, &order.PaymentStatus,
		&itemsJSON, &order.Subtotal, &order.ShippingFee, &order.Discount, &order.Total,
		&order.VoucherCode, &order.Note, &order.TransactionID, &order.CreatedAt,
	); err != nil {
		return order, err
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
			return order, err
		}
	}
	return order, nil
}

// UpdateStatus applique un nouveau statut dans les deux tables.
// La validité de la transition est vérifiée par l'appelant via CanTransition.
func UpdateStatus(order models.Order, status, paymentStatus, transactionID string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return err
	}

	if err := session.Query(database.StmtUpdateOrderStatus,
		status, paymentStatus, transactionID, order.ID,
	).Exec(); err != nil {
		return err
	}

	return session.Query(database.StmtUpdateOrderByUserStatus,
		status, order.UserID, order.CreatedAt, order.ID,
	).Exec()
}

// ListByUser retourne une page des commandes d'un utilisateur, du plus récent
// au plus ancien, avec filtre de statut optionnel. Le filtre et la pagination
// s'appliquent en mémoire sur la partition de l'utilisateur.
func ListByUser(userID, status string, page, limit int) ([]models.OrderSummary, int, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, 0, err
	}

	iter := session.Query(database.StmtListOrdersByUser, userID).Iter()

	var all []models.OrderSummary
	var summary models.OrderSummary
	for iter.Scan(&summary.OrderID, &summary.Status, &summary.PaymentMethod, &summary.Total, &summary.CreatedAt) {
		if status == "" || summary.Status == status {
			all = append(all, summary)
		}
	}
	if err := iter.Close(); err != nil {
		return nil, 0, err
	}

	total := len(all)
	start := (page - 1) * limit
	if start >= total {
		return []models.OrderSummary{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// statusEvent est le message poussé sur le canal websocket d'un utilisateur
type statusEvent struct {
	Type          string  `json:"type"`
	OrderID       string  `json:"order_id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	Total         float64 `json:"total"`
}

// PublishStatusChange notifie les abonnés websocket d'un changement de statut
func PublishStatusChange(ctx context.Context, rdb *redis.Client, order models.Order, status, paymentStatus string) {
	event := statusEvent{
		Type:          "order_status",
		OrderID:       order.ID.String(),
		Status:        status,
		PaymentStatus: paymentStatus,
		Total:         order.Total,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := rdb.Publish(ctx, "orders:"+order.UserID, data).Err(); err != nil {
		log.Printf("⚠️ Publication statut commande échouée: %v", err)
	}
}
