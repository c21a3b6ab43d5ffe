package config

import (
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"infostore/models"
)

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type JWTConfig struct {
	PrivateKeyPath string        `yaml:"private_key_path"`
	PublicKeyPath  string        `yaml:"public_key_path"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Server   ServerConfig   `yaml:"server"`
	JWT      JWTConfig      `yaml:"jwt"`
}

// Load reads the yaml config file. The path defaults to config/config.yaml
// and can be overridden with CONFIG_PATH (set directly or through .env).
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	var config Config
	file, err := os.Open(path)
	if err != nil {
		return config, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return config, fmt.Errorf("decode config: %w", err)
	}
	if config.Server.Port == "" {
		config.Server.Port = "3000"
	}
	if config.JWT.TokenTTL == 0 {
		config.JWT.TokenTTL = 24 * time.Hour
	}
	return config, nil
}

// buildDSN assembles the MySQL connection string. clientFoundRows makes
// UPDATE report matched rows rather than changed rows; repositories treat
// zero affected rows as a missing record, so without it a no-change update
// would read as not found.
func buildDSN(cfg DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
	)
}

func SetupDatabase(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(buildDSN(cfg)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Surfaces unique violations as gorm.ErrDuplicatedKey, which the
		// code generators rely on to retry on collision.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.WishlistItem{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func SetupRedis(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.Database,
	})
}
