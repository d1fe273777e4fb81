package app

import (
	"context"
	"fmt"

	"github.com/haierkeys/note-keeper-service/internal/dao"
	"github.com/haierkeys/note-keeper-service/internal/domain"
	"github.com/haierkeys/note-keeper-service/pkg/writequeue"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Store 进程级笔记存储
// 由 OpenStore 按配置选定一次，配置热重载时沿用同一个实例
type Store struct {
	Repo domain.NoteRepository
	DB   *gorm.DB // 内存存储时为 nil

	writeQueueMgr *writequeue.Manager // 仅 sqlite 存储使用
	dbURL         string
	logger        *zap.Logger
}

// OpenStore 按配置创建存储：database.url 非空时使用数据库存储，否则使用内存存储
// URL 无法识别或数据库无法连接时返回错误
func OpenStore(cfg *AppConfig, logger *zap.Logger) (*Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	st := &Store{logger: logger}
	if !cfg.UseDatabase() {
		st.Repo = dao.NewMemoryNoteRepository()
		return st, nil
	}

	dbConfig := cfg.GetDatabaseConfig()
	driver, _, err := dao.BuildDSN(dbConfig)
	if err != nil {
		return nil, errors.Wrap(err, "database not configured")
	}

	db, err := dao.NewDBEngineWithConfig(dbConfig, logger)
	if err != nil {
		return nil, errors.Wrap(err, "database not configured")
	}
	st.DB = db
	st.dbURL = dbConfig.URL

	var opts []dao.Option
	if driver == dao.DriverSQLite {
		wqConfig := cfg.GetWriteQueueConfig()
		st.writeQueueMgr = writequeue.New(&wqConfig, logger)
		opts = append(opts, dao.WithWriteQueue(st.writeQueueMgr))
	}
	st.Repo = dao.NewNoteRepository(db, opts...)
	return st, nil
}

// Kind 存储实现名称
func (st *Store) Kind() string {
	return st.Repo.Kind()
}

// Matches 新配置是否仍指向当前存储
func (st *Store) Matches(cfg *AppConfig) bool {
	if !cfg.UseDatabase() {
		return st.DB == nil
	}
	return st.DB != nil && cfg.Database.URL == st.dbURL
}

// Ping 检查存储可用性，内存存储总是可用
func (st *Store) Ping(ctx context.Context) error {
	if st.DB == nil {
		return nil
	}
	sqlDB, err := st.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 排空写队列并关闭数据库连接
func (st *Store) Close(ctx context.Context) error {
	var errs []error

	if st.writeQueueMgr != nil {
		if err := st.writeQueueMgr.Shutdown(ctx); err != nil {
			st.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	if st.DB != nil {
		sqlDB, err := st.DB.DB()
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to get sql.DB: %w", err))
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			st.logger.Info("Database connection closed")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("store close completed with %d errors: %v", len(errs), errs)
	}
	return nil
}
