package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/kasmoni/payment-service/internal/config"
	"github.com/kasmoni/payment-service/internal/entities"
	"github.com/kasmoni/payment-service/internal/logging"
	"github.com/kasmoni/payment-service/internal/repository/database"
)

var _ database.Repository = (*mysqlConnector)(nil)

const queryTimeout = 20 * time.Second

type mysqlConnector struct {
	logger logging.Logger
	db     *gorm.DB
	inTx   bool
}

func NewMySQLConnector(conf config.DatabaseConfig, logger logging.Logger) (database.Repository, error) {
	dsn, err := buildMySQLDSN(conf.Username, conf.Password, conf.Database, conf.Parameters)
	if err != nil {
		return nil, err
	}

	connector, err := open(mysql.Open(dsn), logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := connector.db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(time.Minute * 10)

	return connector, nil
}

func open(dialector gorm.Dialector, logger logging.Logger) (*mysqlConnector, error) {
	gormConfig := gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: "pay_",
		},
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}
	db, err := gorm.Open(dialector, &gormConfig)
	if err != nil {
		return nil, err
	}

	return &mysqlConnector{
		logger: logger,
		db:     db,
	}, nil
}

func (m *mysqlConnector) Migrate() error {
	err := m.db.AutoMigrate(
		&entities.Payment{},
		&entities.ArchivedPayment{},
		&entities.TrashedPayment{},
		&entities.PaymentLog{},
		&entities.Group{},
		&entities.Member{},
	)

	if err != nil {
		return err
	}

	return nil
}

func (m *mysqlConnector) Transaction(ctx context.Context, fn func(tx database.Repository) error) error {
	if m.inTx {
		return fn(m)
	}

	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&mysqlConnector{
			logger: m.logger,
			db:     tx,
			inTx:   true,
		})
	})
}

func (m *mysqlConnector) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	tCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	return m.db.WithContext(tCtx), cancel
}

// locking makes single row reads inside a unit of work SELECT ... FOR UPDATE, so the
// second of two competing moves waits and then finds the row gone.
func (m *mysqlConnector) locking(db *gorm.DB) *gorm.DB {
	if m.inTx {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return database.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return database.ErrDuplicateKey
	default:
		return err
	}
}

func buildMySQLDSN(username, password, database string, parameters []string) (string, error) {
	vals := []struct {
		name  string
		value string
	}{
		{"username", username},
		{"password", password},
		{"database", database},
	}

	for _, v := range vals {
		if err := checkValue(v.name, v.value); err != nil {
			return "", err
		}
	}

	paramStr := func() string {
		if len(parameters) == 0 {
			return ""
		}

		return fmt.Sprintf("?%s", strings.Join(parameters, "&"))
	}

	return fmt.Sprintf("%s:%s@%s%s", username, password, database, paramStr()), nil
}

func checkValue(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", name)
	}

	return nil
}
