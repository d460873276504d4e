package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"countyapi/internal/models"
)

const defaultTimeout = 5 * time.Second

// Gateway — единственная точка доступа к хранилищу.
// Каждый вызов ограничен таймаутом; конкурентные записи разруливает сама БД.
type Gateway struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGateway оборачивает открытое соединение.
func NewGateway(db *gorm.DB, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Gateway{db: db, timeout: timeout}
}

// bounded отвязывает вызов от отмены запроса: начатая операция
// завершается или падает по таймауту, обрыв клиента её не прерывает.
func (g *Gateway) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
}

func (g *Gateway) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := g.bounded(ctx)
	return g.db.WithContext(ctx), cancel
}

func (g *Gateway) fail(op string, err error) error {
	se := &StorageError{Op: op, Err: err}
	if t, ok := g.db.Dialector.(gorm.ErrorTranslator); ok {
		se.Constraint = errors.Is(t.Translate(err), gorm.ErrDuplicatedKey)
	}
	return se
}

// Ping проверяет доступность хранилища.
func (g *Gateway) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return g.fail("ping", err)
	}
	ctx, cancel := g.bounded(ctx)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return g.fail("ping", err)
	}
	return nil
}

// InsertUser добавляет пользователя и возвращает присвоенный id.
func (g *Gateway) InsertUser(ctx context.Context, name, email string) (uint, error) {
	if name == "" || email == "" {
		return 0, ErrValidation
	}
	tx, cancel := g.conn(ctx)
	defer cancel()
	u := models.User{Name: name, Email: email}
	if err := tx.Create(&u).Error; err != nil {
		return 0, g.fail("insert user", err)
	}
	return u.ID, nil
}

// ListUsers возвращает всех пользователей в порядке добавления.
func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	tx, cancel := g.conn(ctx)
	defer cancel()
	users := []models.User{}
	if err := tx.Order("id").Find(&users).Error; err != nil {
		return nil, g.fail("list users", err)
	}
	return users, nil
}

// InsertItemsBatch вставляет позиции по одной, без транзакции:
// при ошибке в середине уже вставленные строки остаются.
func (g *Gateway) InsertItemsBatch(ctx context.Context, items []models.Item) (int, error) {
	inserted := 0
	for i := range items {
		tx, cancel := g.conn(ctx)
		err := tx.Create(&items[i]).Error
		cancel()
		if err != nil {
			return inserted, g.fail("insert item", err)
		}
		inserted++
	}
	return inserted, nil
}

// ListItems возвращает все позиции в порядке добавления.
func (g *Gateway) ListItems(ctx context.Context) ([]models.Item, error) {
	tx, cancel := g.conn(ctx)
	defer cancel()
	items := []models.Item{}
	if err := tx.Order("id").Find(&items).Error; err != nil {
		return nil, g.fail("list items", err)
	}
	return items, nil
}

// Close закрывает соединение с хранилищем.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
