package config

import (
	"time"
)

type DatabaseConfig struct {
	URI             string
	Database        string
	SpinCollection  string
	LoginCollection string
	MaxPoolSize     int
	MinPoolSize     int
	ConnectTimeout  time.Duration
	SocketTimeout   time.Duration
	QueryTimeout    time.Duration
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:             getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		Database:        getEnv("MONGODB_DATABASE", "spin-and-win"),
		SpinCollection:  getEnv("MONGODB_SPIN_COLLECTION", "spinResults"),
		LoginCollection: getEnv("MONGODB_LOGIN_COLLECTION", "login"),
		MaxPoolSize:     getEnvAsInt("MONGODB_MAX_POOL_SIZE", 50),
		MinPoolSize:     getEnvAsInt("MONGODB_MIN_POOL_SIZE", 2),
		ConnectTimeout:  getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:   getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		QueryTimeout:    getEnvAsDuration("MONGODB_QUERY_TIMEOUT", 20*time.Second),
	}
}
