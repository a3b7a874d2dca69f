package config

import (
	"testing"

	"github.com/slighter12/go-lib/database/postgres"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey(t *testing.T) {
	existing := map[string]any{
		"listing": map[string]any{
			"maxLimit":                100,
			"nearbyDefaultDistanceKm": 10,
		},
		"uploads": map[string]any{
			"bucketUrl": "",
		},
		"rateLimit": map[string]any{
			"redis": map[string]any{
				"keyPrefix": "",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "LISTING_MAXLIMIT", want: "listing.maxLimit"},
		{envKey: "LISTING_NEARBYDEFAULTDISTANCEKM", want: "listing.nearbyDefaultDistanceKm"},
		{envKey: "UPLOADS_BUCKETURL", want: "uploads.bucketUrl"},
		{envKey: "RATELIMIT_REDIS_KEYPREFIX", want: "rateLimit.redis.keyPrefix"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "LISTING__MAXLIMIT", want: "listing.maxLimit"},
		{envKey: "MONGO_URI", want: "mongo.uri"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "replica-a")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")
	t.Setenv("POSTGRES_REPLICAS_1_HOST", "replica-b")
	t.Setenv("POSTGRES_REPLICAS_1_PORT", "5433")
	// Index 2 lacks a port, which ends the list.
	t.Setenv("POSTGRES_REPLICAS_2_HOST", "replica-c")

	assert.Equal(t, []postgres.ConnectionConfig{
		{Host: "replica-a", Port: "5432", UserName: "reader"},
		{Host: "replica-b", Port: "5433"},
	}, buildReplicasFromEnv())
}
