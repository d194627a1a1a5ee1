package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"roopshree-backend/kafka"
	"roopshree-backend/models"
	"roopshree-backend/repository"
	"roopshree-backend/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A plain ":memory:" DSN gives every pooled connection its own empty
	// database; a named shared-cache DSN keeps one database per test.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.Address{},
		&models.Product{}, &models.Stock{}, &models.StockHistory{}, &models.Wishlist{},
		&models.Banner{}, &models.Offer{},
		&models.Order{}, &models.OrderOtp{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role, email string) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Sup3r!secret"), bcrypt.MinCost)
	user := &models.User{
		ID:            uuid.New(),
		Email:         email,
		Name:          "Test " + string(role),
		Password:      string(hashed),
		Role:          role,
		EmailVerified: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, price int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:       uuid.New(),
		Title:    "Rose Glow Serum",
		Price:    price,
		Category: "skincare",
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func identityOf(u *models.User) models.Identity {
	return models.Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// mockSender records outbound mail and can be told to fail.
type mockSender struct {
	mu       sync.Mutex
	sent     []mockEmail
	failNext bool
}

type mockEmail struct {
	To      string
	Subject string
	Body    string
}

func (m *mockSender) SendEmail(ctx context.Context, to, subject, body string) (sender.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return sender.SendResult{}, fmt.Errorf("smtp send failed: connection refused")
	}
	m.sent = append(m.sent, mockEmail{To: to, Subject: subject, Body: body})
	return sender.SendResult{MessageID: "mock"}, nil
}

func (m *mockSender) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockSender) last() mockEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent[len(m.sent)-1]
}

// mockProducer records published order events.
type mockProducer struct {
	mu     sync.Mutex
	events []kafka.OrderEvent
}

func (m *mockProducer) PublishOrderEvent(ctx context.Context, evt kafka.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *mockProducer) Close() error { return nil }

func newStockService(db *gorm.DB) *StockService {
	return NewStockService(db, repository.NewStockRepository(db))
}

func newOrderService(db *gorm.DB, producer kafka.ProducerAPI) *OrderService {
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		newStockService(db),
		producer,
		zap.NewNop(),
	)
}
