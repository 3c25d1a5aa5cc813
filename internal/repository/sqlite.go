package repository

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/funildigital/prelander/internal/models"
	"github.com/funildigital/prelander/pkg/logger"
)

// activeTokenIndex keeps at most one unconsumed token per (user, plano)
// pair. Concurrent issuers that both pass the lookup collide here instead
// of creating two live tokens.
const activeTokenIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_tokens_active
ON tokens ("user", plano) WHERE used IS NULL`

type SQLiteDB struct {
	logger *logger.Logger

	Conn *gorm.DB
}

func NewSQLiteDB(path string, logger *logger.Logger) (models.Repository, error) {
	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use standard logger
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond, // Log queries slower than this
			LogLevel:                  gormLogger.Warn,        // Only log warnings or errors
			IgnoreRecordNotFoundError: true,                   // Suppress "record not found" errors
			Colorful:                  true,                   // Enable colorful logs
		},
	)
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %s", err)
	}

	if err := db.AutoMigrate(&models.Token{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %s", err)
	}

	if err := db.Exec(activeTokenIndex).Error; err != nil {
		return nil, fmt.Errorf("failed to create active token index: %s", err)
	}

	logger.Info("Successfully opened token database: ", path)
	return &SQLiteDB{Conn: db, logger: logger}, nil
}

func (db *SQLiteDB) Close() error {
	sqlDB, err := db.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %s", err)
	}
	return sqlDB.Close()
}

func (db *SQLiteDB) FindActiveToken(user, plano string) (*models.Token, error) {
	var token models.Token
	if err := db.Conn.Where(`"user" = ? AND plano = ? AND used IS NULL`, user, plano).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active token: %s", err)
	}

	return &token, nil
}

func (db *SQLiteDB) CreateToken(token *models.Token) error {
	if err := db.Conn.Create(token).Error; err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateActiveToken
		}
		return fmt.Errorf("failed to create token: %s", err)
	}

	return nil
}

func (db *SQLiteDB) GetToken(token string) (*models.Token, error) {
	var row models.Token
	if err := db.Conn.Where("token = ?", token).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %s", err)
	}

	return &row, nil
}

func (db *SQLiteDB) ConsumeToken(token string, at time.Time) (int64, error) {
	// Conditional update: the used IS NULL predicate makes the transition
	// exactly-once, the affected-row count detects a lost race.
	res := db.Conn.Model(&models.Token{}).
		Where("token = ? AND used IS NULL", token).
		Update("used", at)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to consume token: %s", res.Error)
	}

	return res.RowsAffected, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
