package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "3001")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("WS_PING_INTERVAL_SEC", "not-a-number")

	cfg := LoadConfig()

	assert.Equal(t, "3001", cfg.AppPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 30, cfg.WSPingIntervalSec)
	assert.Equal(t, 30*time.Second, cfg.PingInterval())
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "database url wins",
			cfg:  Config{DBDriver: DriverPostgres, DatabaseURL: "postgres://u:p@db/nexora", DBHost: "ignored"},
			want: "postgres://u:p@db/nexora",
		},
		{
			name: "sqlite path",
			cfg:  Config{DBDriver: DriverSQLite, SQLitePath: "local.db"},
			want: "local.db",
		},
		{
			name: "postgres parts",
			cfg: Config{
				DBDriver: DriverPostgres, DBHost: "db", DBUser: "u", DBPassword: "p",
				DBName: "nexora", DBPort: "5433", DBSSLMode: "require",
			},
			want: "host=db user=u password=p dbname=nexora port=5433 sslmode=require TimeZone=UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestPingIntervalFromEnv(t *testing.T) {
	t.Setenv("WS_PING_INTERVAL_SEC", "5")
	t.Setenv("REDIS_HOST", "cache")

	cfg := LoadConfig()

	assert.Equal(t, 5*time.Second, cfg.PingInterval())
	assert.True(t, cfg.RedisEnabled())
}
