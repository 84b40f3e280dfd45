package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type DatabaseType string

const (
	MongoDB DatabaseType = "mongodb"
	SQLite  DatabaseType = "sqlite"
)

type Config struct {
	Port         string
	JwtKey       []byte
	DatabaseType DatabaseType
	// MongoDB config
	MongoURI string
	// SQLite config
	SQLitePath string
	// Common configs
	DatabaseName string
	// Optional region dataset override (GeoJSON FeatureCollection); the
	// built-in boundaries are used when unset.
	RegionDatasetPath string
	// Optional Redis cache for the leaderboard; disabled when unset.
	RedisAddr string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, err
	}

	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return nil, fmt.Errorf("DATABASE_NAME is not set in .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is not set in .env file")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	// Determine database type
	dbType := os.Getenv("DATABASE_TYPE")
	if dbType == "" {
		dbType = string(SQLite) // Default to SQLite
	}

	config := &Config{
		Port:              port,
		JwtKey:            []byte(jwtSecret),
		DatabaseType:      DatabaseType(dbType),
		DatabaseName:      databaseName,
		RegionDatasetPath: os.Getenv("REGION_DATASET_PATH"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	// Configure based on database type
	if config.DatabaseType == MongoDB {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI is not set in .env file")
		}
		config.MongoURI = mongoURI
	} else if config.DatabaseType == SQLite {
		sqlitePath := os.Getenv("SQLITE_PATH")
		if sqlitePath == "" {
			// Default to a data directory in the current directory
			sqlitePath = filepath.Join("data", fmt.Sprintf("%s.db", databaseName))
		}
		config.SQLitePath = sqlitePath
	} else {
		return nil, fmt.Errorf("unsupported DATABASE_TYPE: %s", dbType)
	}

	return config, nil
}
