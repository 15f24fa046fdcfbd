package database

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"surveikita_web/internals/configs"
)

// DB nil berarti aplikasi jalan tanpa database (lead & audit relay dimatikan).
var DB *gorm.DB

// ConnectDB membuka koneksi PostgreSQL kalau DB_HOST diset.
func ConnectDB() {
	log := zap.L()
	if os.Getenv("DB_HOST") == "" {
		log.Warn("⚠️ DB_HOST kosong, jalan tanpa database")
		return
	}
	log.Info("🔌 Koneksi ke PostgreSQL...")

	sslmode := configs.GetEnv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=surveikita&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		configs.GetEnv("DB_PORT", "5432"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatal("❌ Gagal konek DB", zap.Error(err))
	}
	DB = db
	log.Info("✅ DB connected.")
}

func TunePool() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		zap.L().Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk model yang dimiliki aplikasi ini.
func Migrate(models ...interface{}) {
	if DB == nil {
		return
	}
	if err := DB.AutoMigrate(models...); err != nil {
		zap.L().Fatal("❌ AutoMigrate gagal", zap.Error(err))
	}
}

func WarmUpQueries() {
	if DB == nil {
		return
	}
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(); err != nil {
			zap.L().Warn("warm-up ping err", zap.Error(err))
		}
	}()
}

// Ping reports whether the database answers; nil DB is an error.
func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not configured")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
