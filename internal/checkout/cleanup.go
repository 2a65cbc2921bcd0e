package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/session"
)

const (
	cleanupQueueKey  = "queue:cart_cleanup"
	cleanupMaxTries  = 3
	cleanupRetryWait = 2 * time.Second
)

// CleanupJob retire du panier les lignes consommées par une commande placée.
// Le nettoyage est détaché : il ne bloque jamais la navigation et son échec
// n'est jamais remonté comme un échec de commande.
type CleanupJob struct {
	UserID   string   `json:"user_id"`
	ItemIDs  []string `json:"item_ids"`
	Attempts int      `json:"attempts"`
}

// CleanupQueue est une file Redis consommée par un worker en arrière-plan
type CleanupQueue struct {
	rdb *redis.Client
}

func NewCleanupQueue(rdb *redis.Client) *CleanupQueue {
	return &CleanupQueue{rdb: rdb}
}

// Enqueue publie un job de nettoyage. Best-effort : une erreur est loggée,
// jamais retournée à l'appelant du checkout.
func (q *CleanupQueue) Enqueue(ctx context.Context, userID string, itemIDs []string) {
	job := CleanupJob{UserID: userID, ItemIDs: itemIDs}
	data, err := json.Marshal(job)
	if err != nil {
		log.Printf("⚠️ Job nettoyage panier non sérialisable: %v", err)
		return
	}
	if err := q.rdb.LPush(ctx, cleanupQueueKey, data).Err(); err != nil {
		log.Printf("⚠️ Enqueue nettoyage panier échoué pour %s: %v", userID, err)
	}
}

// StartWorker consomme la file jusqu'à annulation du contexte
func (q *CleanupQueue) StartWorker(ctx context.Context) {
	log.Println("🧹 Worker nettoyage panier démarré")
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Println("🧹 Worker nettoyage panier arrêté")
				return
			default:
			}

			res, err := q.rdb.BRPop(ctx, 5*time.Second, cleanupQueueKey).Result()
			if err != nil {
				// redis.Nil = timeout du BRPop, la boucle peut repartir
				// immédiatement. Toute autre erreur (Redis indisponible)
				// impose une pause pour ne pas tourner à vide.
				if shouldBackoff(err) {
					time.Sleep(cleanupRetryWait)
				}
				continue
			}

			var job CleanupJob
			if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
				log.Printf("⚠️ Job nettoyage illisible, abandonné: %v", err)
				continue
			}

			q.process(ctx, job)
		}
	}()
}

func shouldBackoff(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}

// process retire les lignes du panier ; en cas d'échec le job est re-enfilé
// avec un compteur de tentatives borné.
func (q *CleanupQueue) process(ctx context.Context, job CleanupJob) {
	if err := q.removeItems(ctx, job); err != nil {
		job.Attempts++
		if job.Attempts >= cleanupMaxTries {
			log.Printf("❌ Nettoyage panier abandonné pour %s après %d tentatives: %v",
				job.UserID, job.Attempts, err)
			return
		}
		log.Printf("⚠️ Nettoyage panier échoué pour %s (tentative %d): %v", job.UserID, job.Attempts, err)
		time.Sleep(cleanupRetryWait)
		if data, mErr := json.Marshal(job); mErr == nil {
			q.rdb.LPush(ctx, cleanupQueueKey, data)
		}
		return
	}
	log.Printf("🧹 Panier nettoyé pour %s (%d lignes)", job.UserID, len(job.ItemIDs))
}

func (q *CleanupQueue) removeItems(ctx context.Context, job CleanupJob) error {
	items, err := session.LoadCart(ctx, q.rdb, job.UserID)
	if err != nil {
		return err
	}

	consumed := make(map[string]bool, len(job.ItemIDs))
	for _, id := range job.ItemIDs {
		consumed[id] = true
	}

	remaining := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if !consumed[item.ID] {
			remaining = append(remaining, item)
		}
	}

	return session.SaveCart(ctx, q.rdb, job.UserID, remaining)
}
