package checkout

import (
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestShouldBackoff(t *testing.T) {
	// redis.Nil signale un BRPop qui expire sans job : la boucle repart
	// tout de suite. Une vraie erreur (Redis coupé) impose une pause.
	assert.False(t, shouldBackoff(nil))
	assert.False(t, shouldBackoff(redis.Nil))
	assert.True(t, shouldBackoff(errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")))
}
