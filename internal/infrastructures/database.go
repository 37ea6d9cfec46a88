package infrastructures

import (
	"github.com/safatanc/vidtube/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the PostgreSQL pool. The returned func closes it.
func NewDatabase(cfg *AppConfig) (*gorm.DB, func(), error) {
	db, err := gorm.Open(postgres.Open(cfg.DATABASE_URL), NewGormConfig())
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			logrus.Errorf("failed to close database: %v", err)
		}
	}
	return db, cleanup, nil
}

// NewGormConfig is shared with the test databases so duplicate keys map to
// gorm.ErrDuplicatedKey on every driver.
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(),
	}
}

// Models lists every table the application owns, in dependency order.
func Models() []any {
	return []any{
		&models.User{},
		&models.Video{},
		&models.Comment{},
		&models.Tweet{},
		&models.Like{},
		&models.Subscription{},
		&models.Playlist{},
		&models.PlaylistVideo{},
		&models.WatchHistory{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
