package db

import (
	"strconv"
	"time"

	drivermysql "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"PowerLine/internal/shared/logs"
	"PowerLine/internal/shared/serverconfig"
	"PowerLine/modules/kit/logx"
)

const (
	slowQuery      = 200 * time.Millisecond
	connMaxIdle    = 30 * time.Minute
	defaultCharset = "utf8mb4"
)

// DB 是战绩库连接。
type DB struct {
	*gorm.DB
}

// Open 连接战绩库，连接池参数取自配置。
func Open(cfg serverconfig.MySQLConfig) (*DB, error) {
	gdb, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logs.NewGormLogger(logx.NewZapLogger(logs.Logger()), logger.Warn, slowQuery),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}
	sqlDB.SetConnMaxIdleTime(connMaxIdle)

	logs.Info("mysql connected",
		zap.String("addr", addr(cfg)),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return &DB{DB: gdb}, nil
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// DSN 由驱动自己拼装，密码里的特殊字符不用手工转义。
func DSN(cfg serverconfig.MySQLConfig) string {
	c := drivermysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = addr(cfg)
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Loc = time.Local
	charset := cfg.Charset
	if charset == "" {
		charset = defaultCharset
	}
	c.Params = map[string]string{"charset": charset}
	return c.FormatDSN()
}

func addr(cfg serverconfig.MySQLConfig) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	return cfg.Host + ":" + strconv.Itoa(port)
}
