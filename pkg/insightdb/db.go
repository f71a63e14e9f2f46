package insightdb

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/materials-commons/mcinsight/pkg/config"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	SqliteDriver = "sqlite"
	MysqlDriver  = "mysql"
)

const maxDBRetries = 5

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Open opens a database for the given driver. For sqlite the dsn is a file path
// or sqlite URI; for mysql it is a go-sql-driver DSN.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case SqliteDriver, "":
		dialector = sqlite.Open(dsn)
	case MysqlDriver:
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown database driver '%s'", driver)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s database", driver)
	}

	if db.Dialector.Name() == SqliteDriver {
		// A single connection keeps sqlite from reporting a locked table when
		// several goroutines share the pool.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// OpenSqliteFile opens the sqlite file at path, creating it if it doesn't exist.
func OpenSqliteFile(path string) (*gorm.DB, error) {
	uri, err := sqliteFileURI(path, "rwc")
	if err != nil {
		return nil, err
	}

	return Open(SqliteDriver, uri)
}

// OpenExistingSqliteFile opens the sqlite file at path in read only mode. Unlike
// OpenSqliteFile it fails when the file is missing instead of creating an empty
// database.
func OpenExistingSqliteFile(path string) (*gorm.DB, error) {
	finfo, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "database file %s", path)
	}

	if finfo.IsDir() {
		return nil, fmt.Errorf("database path %s is a directory", path)
	}

	uri, err := sqliteFileURI(path, "ro")
	if err != nil {
		return nil, err
	}

	return Open(SqliteDriver, uri)
}

// sqliteFileURI turns path into an absolute file: URI with the given open mode.
// Characters such as ?, # and % in path are percent encoded so sqlite reads
// them as part of the file name.
func sqliteFileURI(path, mode string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "unable to resolve %s", path)
	}

	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(absPath),
		RawQuery: url.Values{"mode": []string{mode}}.Encode(),
	}

	return u.String(), nil
}

// Close closes the connection pool underneath db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// MustConnectToDB opens the database named by the configuration, trying up to
// maxDBRetries times, 3 seconds apart. If every attempt fails it calls
// log.Fatalf(), which exits the process.
func MustConnectToDB() *gorm.DB {
	driver := config.GetKeyWithDefault(config.DBDriverKey, SqliteDriver)
	dsn := config.GetKey(config.DBDSNKey)
	if dsn == "" {
		dsn = config.MustGetKey(config.DBPathKey)
	}

	retryCount := 1
	for {
		db, err := Open(driver, dsn)
		switch {
		case err == nil:
			return db
		case retryCount >= maxDBRetries:
			log.Fatalf("Failed to open %s db: %s", driver, err)
		default:
			retryCount++
			time.Sleep(3 * time.Second)
		}
	}
}

// RunMigrations creates every table that is missing.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(imodel.All()...)
}

// RecreateDatabaseFile removes any existing database at path and opens a fresh,
// migrated one in its place.
func RecreateDatabaseFile(path string) (*gorm.DB, error) {
	if finfo, err := os.Stat(path); err == nil {
		if finfo.IsDir() {
			return nil, fmt.Errorf("database path %s is a directory", path)
		}

		log.Infof("Database %s already exists, it will be replaced", path)
		if err := os.Remove(path); err != nil {
			return nil, errors.Wrapf(err, "unable to remove %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrapf(err, "unable to create directory for %s", path)
	}

	db, err := OpenSqliteFile(path)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db); err != nil {
		_ = Close(db)
		return nil, errors.Wrapf(err, "unable to create tables in %s", path)
	}

	return db, nil
}
