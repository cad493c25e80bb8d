package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/amidarace/catalog"
	"github.com/padraicbc/amidarace/config"
	"github.com/padraicbc/amidarace/models"
)

// Open connects to the database selected by cfg.DBDriver and pings it.
func Open(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.DBDriver {
	case config.DriverPostgres, "":
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverSQLite:
		var err error
		db, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
	case config.DriverMySQL:
		var err error
		db, err = OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("open database: unknown driver %q", cfg.DBDriver)
	}

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}

// OpenSQLite opens a SQLite database through the pure Go modernc driver.
// ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one connection keeps an in-memory database alive and serialises writers
	sqldb.SetMaxOpenConns(1)
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// OpenMySQL opens a MySQL database. parseTime is forced on so DATETIME
// columns scan into time.Time.
func OpenMySQL(dsn string) (*bun.DB, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	mc.ParseTime = true
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	return bun.NewDB(sql.OpenDB(connector), mysqldialect.New()), nil
}

// Setup opens the configured database or exits.
func Setup(cfg *config.Config) *bun.DB {
	db, err := Open(context.Background(), cfg)
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}
	return db
}

// CreateTables creates all tables in dependency order.
func CreateTables(ctx context.Context, db *bun.DB) error {
	tables := []interface{}{
		(*models.User)(nil),
		(*models.Horse)(nil),
		(*models.Preset)(nil),
	}

	for _, model := range tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}
	return nil
}

// SeedRoster upserts profiles into the horses table. Existing rows with the
// same id are overwritten, retirement is left alone.
func SeedRoster(ctx context.Context, db *bun.DB, roster []catalog.HorseProfile) (int, error) {
	if len(roster) == 0 {
		return 0, nil
	}
	rows := make([]*models.Horse, 0, len(roster))
	for _, p := range roster {
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("seed roster: %w", err)
		}
		rows = append(rows, models.HorseFromProfile(p))
	}

	res, err := upsert(db.NewInsert().Model(&rows), "horse_id",
		"name", "category", "speed", "intelligence", "power", "stamina", "ability", "color").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed roster: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// upsert turns q into an insert that overwrites cols when key already
// exists, in the syntax of the query's dialect.
func upsert(q *bun.InsertQuery, key string, cols ...string) *bun.InsertQuery {
	if q.DB().Dialect().Name() == dialect.MySQL {
		q = q.On("DUPLICATE KEY UPDATE")
		for _, c := range cols {
			q = q.Set(c + " = VALUES(" + c + ")")
		}
		return q
	}
	q = q.On("CONFLICT (" + key + ") DO UPDATE")
	for _, c := range cols {
		q = q.Set(c + " = EXCLUDED." + c)
	}
	return q
}

// LoadRoster returns the horses still racing, by id. Rows that fail
// validation are skipped.
func LoadRoster(ctx context.Context, db *bun.DB) ([]catalog.HorseProfile, error) {
	var rows []models.Horse
	err := db.NewSelect().Model(&rows).
		Where("retired = ?", false).
		OrderExpr("horse_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	out := make([]catalog.HorseProfile, 0, len(rows))
	for i := range rows {
		p := rows[i].Profile()
		if err := p.Validate(); err != nil {
			log.Printf("roster: skipping %s: %v", rows[i].Name, err)
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// FindPreset looks a preset up by name.
func FindPreset(ctx context.Context, db *bun.DB, name string) (*models.Preset, error) {
	p := &models.Preset{}
	if err := db.NewSelect().Model(p).Where("name = ?", name).Scan(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// SaveUser inserts the user or replaces the password of an existing one.
func SaveUser(ctx context.Context, db *bun.DB, user *models.User) error {
	_, err := upsert(db.NewInsert().Model(user), "username", "password").Exec(ctx)
	if err != nil {
		return fmt.Errorf("save user %q: %w", user.Username, err)
	}
	return nil
}

// FindUser looks a user up by name.
func FindUser(ctx context.Context, db *bun.DB, username string) (*models.User, error) {
	user := &models.User{}
	err := db.NewSelect().Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}
