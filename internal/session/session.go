// Package session est la frontière de sérialisation de l'état de session
// client : panier et sélection vivent dans Redis en JSON, derrière des
// accesseurs explicites plutôt que des accès ambiants éparpillés.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"lumina_back_end/internal/cart"
	"lumina_back_end/internal/models"
)

const (
	cartTTL      = 30 * 24 * time.Hour
	selectionTTL = 7 * 24 * time.Hour
)

func cartKey(userID string) string      { return "cart:" + userID }
func selectionKey(userID string) string { return "selection:" + userID }

// LoadCart retourne le panier de l'utilisateur, vide si aucune clé
func LoadCart(ctx context.Context, rdb *redis.Client, userID string) ([]models.CartItem, error) {
	data, err := rdb.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) || data == "" {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SaveCart remplace le panier et notifie les abonnés websocket
func SaveCart(ctx context.Context, rdb *redis.Client, userID string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := rdb.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return err
	}
	rdb.Publish(ctx, cartKey(userID), "updated")
	return nil
}

// ClearCart supprime panier et sélection
func ClearCart(ctx context.Context, rdb *redis.Client, userID string) error {
	if err := rdb.Del(ctx, cartKey(userID), selectionKey(userID)).Err(); err != nil {
		return err
	}
	rdb.Publish(ctx, cartKey(userID), "cleared")
	return nil
}

// LoadSelection retourne la sélection courante, vide si aucune clé
func LoadSelection(ctx context.Context, rdb *redis.Client, userID string) (cart.SelectionSet, error) {
	data, err := rdb.Get(ctx, selectionKey(userID)).Result()
	if errors.Is(err, redis.Nil) || data == "" {
		return cart.NewSelection(), nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return cart.NewSelection(ids...), nil
}

// SaveSelection persiste la sélection
func SaveSelection(ctx context.Context, rdb *redis.Client, userID string, sel cart.SelectionSet) error {
	data, err := json.Marshal(sel.IDs())
	if err != nil {
		return err
	}
	return rdb.Set(ctx, selectionKey(userID), data, selectionTTL).Err()
}

// ClearSelection vide la sélection (après une commande placée avec succès)
func ClearSelection(ctx context.Context, rdb *redis.Client, userID string) error {
	return rdb.Del(ctx, selectionKey(userID)).Err()
}

// LoadPrunedSelection charge panier et sélection, élague les identifiants
// périmés et re-persiste la sélection si elle a changé. C'est le seul chemin
// de lecture autorisé : l'invariant sélection ⊆ panier tient toujours.
func LoadPrunedSelection(ctx context.Context, rdb *redis.Client, userID string) ([]models.CartItem, cart.SelectionSet, error) {
	items, err := LoadCart(ctx, rdb, userID)
	if err != nil {
		return nil, nil, err
	}

	sel, err := LoadSelection(ctx, rdb, userID)
	if err != nil {
		return nil, nil, err
	}

	if sel.Prune(items) {
		if err := SaveSelection(ctx, rdb, userID, sel); err != nil {
			return nil, nil, err
		}
	}
	return items, sel, nil
}
