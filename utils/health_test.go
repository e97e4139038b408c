package utils

import (
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agritrust/config"
)

// unreachableMongo returns a client that was never connected, so pings
// fail without touching the network.
func unreachableMongo(t *testing.T) *mongo.Client {
	t.Helper()
	client, err := mongo.NewClient(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	return client
}

func TestProbeDependencies_RecordsSnapshot(t *testing.T) {
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer down.Close()

	before := time.Now()
	probeDependencies([]*redis.Client{down}, unreachableMongo(t))

	status := GetHealthStatus()
	assert.False(t, status.Mongo)
	require.Len(t, status.Redis, 1)
	assert.False(t, status.Redis[0])
	assert.False(t, status.CheckedAt.Before(before))
}

func TestStartHealthMonitor_ProbesImmediately(t *testing.T) {
	healthMu.Lock()
	currentHealth = HealthStatus{}
	healthMu.Unlock()

	// A long interval means only the startup probe can fill the snapshot.
	config.AppConfig.HealthCheckSeconds = 3600
	StartHealthMonitor(nil, unreachableMongo(t))

	assert.Eventually(t, func() bool {
		return !GetHealthStatus().CheckedAt.IsZero()
	}, 2*time.Second, 20*time.Millisecond)
}
