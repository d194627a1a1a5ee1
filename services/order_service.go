package services

import (
	"context"
	"errors"
	"time"

	"roopshree-backend/common/apperrors"
	"roopshree-backend/kafka"
	"roopshree-backend/models"
	"roopshree-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
	AddressID *uuid.UUID `json:"address_id"`
}

type OrderListResponse struct {
	Orders []models.Order `json:"orders"`
	Meta   MetaData       `json:"meta"`
}

type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderService owns the order lifecycle: PLACED -> OUTOFDELIVERY ->
// DELIVERED, with CANCELLED reachable from either non-terminal state.
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	stockSvc    *StockService
	producer    kafka.ProducerAPI
	log         *zap.Logger
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	stockSvc *StockService,
	producer kafka.ProducerAPI,
	log *zap.Logger,
) *OrderService {
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		stockSvc:    stockSvc,
		producer:    producer,
		log:         log,
	}
}

// Checkout creates a PLACED order for the caller. Stock is reserved at order
// time by the storefront flow, not decremented here.
func (s *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *CheckoutRequest) (*models.Order, error) {
	if req.Quantity <= 0 {
		return nil, apperrors.InvalidInput("Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Internal(err)
	}

	order := &models.Order{
		ID:          uuid.New(),
		UserID:      userID,
		ProductID:   product.ID,
		Quantity:    req.Quantity,
		TotalAmount: product.Price * req.Quantity,
		Status:      models.OrderPlaced,
		AddressID:   req.AddressID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.publishEvent(ctx, "order.placed", order)
	return order, nil
}

// Cancel moves a non-terminal order to CANCELLED and restocks its quantity.
// Allowed for an admin, or for the owning user. Both writes commit together.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, actor models.Identity) (*models.Order, error) {
	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Order not found")
			}
			return err
		}

		if actor.Role != models.RoleAdmin && order.UserID != actor.UserID {
			return apperrors.Forbidden("You cannot cancel another user's order")
		}

		if order.Status.Terminal() {
			return apperrors.InvalidState("Order is already " + string(order.Status))
		}

		order.Status = models.OrderCancelled
		if err := s.orderRepo.Save(ctx, tx, order); err != nil {
			return err
		}

		return s.stockSvc.Restock(ctx, tx, order.ProductID, order.Quantity)
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}

	s.publishEvent(ctx, "order.status_changed", order)
	return order, nil
}

// SetStatus performs an admin-driven transition. Moving to OUTOFDELIVERY
// requires a delivery agent; cancellation goes through Cancel so the restock
// always happens.
func (s *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, newStatus models.OrderStatus, actor models.Identity, deliveryBoyID *uuid.UUID) (*models.Order, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("Admin access required")
	}
	if !newStatus.Valid() {
		return nil, apperrors.InvalidInput("Unknown order status")
	}
	if newStatus == models.OrderCancelled {
		return nil, apperrors.InvalidInput("Use the cancel endpoint to cancel an order")
	}
	if newStatus == models.OrderPlaced {
		return nil, apperrors.InvalidState("Order cannot return to PLACED")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Order not found")
			}
			return err
		}

		if order.Status.Terminal() {
			return apperrors.InvalidState("Order is already " + string(order.Status))
		}

		if newStatus == models.OrderOutOfDelivery {
			if deliveryBoyID == nil && order.DeliveryBoyID == nil {
				return apperrors.InvalidState("A delivery agent must be assigned before dispatch")
			}
			if deliveryBoyID != nil {
				if err := s.checkDeliveryBoy(ctx, *deliveryBoyID); err != nil {
					return err
				}
				order.DeliveryBoyID = deliveryBoyID
			}
		}

		order.Status = newStatus
		return s.orderRepo.Save(ctx, tx, order)
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}

	s.publishEvent(ctx, "order.status_changed", order)
	return order, nil
}

// AssignDelivery binds a delivery agent to an order without changing status.
func (s *OrderService) AssignDelivery(ctx context.Context, orderID, deliveryBoyID uuid.UUID, actor models.Identity) (*models.Order, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("Admin access required")
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.orderRepo.FindByIDForUpdate(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Order not found")
			}
			return err
		}

		if order.Status.Terminal() {
			return apperrors.InvalidState("Order is already " + string(order.Status))
		}

		if err := s.checkDeliveryBoy(ctx, deliveryBoyID); err != nil {
			return err
		}

		order.DeliveryBoyID = &deliveryBoyID
		return s.orderRepo.Save(ctx, tx, order)
	})
	if err != nil {
		return nil, wrapServiceErr(err)
	}
	return order, nil
}

// GetOrder returns one order, visible to its owner, its delivery agent, or an
// admin.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, actor models.Identity) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Order not found")
		}
		return nil, apperrors.Internal(err)
	}

	switch {
	case actor.Role == models.RoleAdmin:
	case order.UserID == actor.UserID:
	case order.DeliveryBoyID != nil && *order.DeliveryBoyID == actor.UserID:
	default:
		return nil, apperrors.Forbidden("Access denied")
	}
	return order, nil
}

// ListForUser retrieves paginated orders for a specific user
func (s *OrderService) ListForUser(ctx context.Context, userID uuid.UUID, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return buildListResponse(orders, total, page, limit), nil
}

// ListAll retrieves paginated orders for all users (admin only)
func (s *OrderService) ListAll(ctx context.Context, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return buildListResponse(orders, total, page, limit), nil
}

// ListForDeliveryBoy retrieves orders assigned to a delivery agent.
func (s *OrderService) ListForDeliveryBoy(ctx context.Context, deliveryBoyID uuid.UUID, page, limit int) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindByDeliveryBoyID(ctx, deliveryBoyID, page, limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return buildListResponse(orders, total, page, limit), nil
}

func (s *OrderService) checkDeliveryBoy(ctx context.Context, id uuid.UUID) error {
	agent, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Delivery agent not found")
		}
		return err
	}
	if agent.Role != models.RoleDeliveryBoy {
		return apperrors.InvalidInput("User is not a delivery agent")
	}
	return nil
}

// publishEvent emits a lifecycle event. Failures are logged and swallowed;
// the order mutation has already committed.
func (s *OrderService) publishEvent(ctx context.Context, eventType string, order *models.Order) {
	if s.producer == nil {
		return
	}
	evt := kafka.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Status:    string(order.Status),
		Timestamp: time.Now(),
	}
	if err := s.producer.PublishOrderEvent(ctx, evt); err != nil {
		s.log.Warn("Order event publish failed",
			zap.String("order_id", evt.OrderID),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

func buildListResponse(orders []models.Order, total int64, page, limit int) *OrderListResponse {
	return &OrderListResponse{
		Orders: orders,
		Meta: MetaData{
			Page:        page,
			Limit:       limit,
			TotalOrders: total,
			TotalPages:  calculateTotalPages(total, limit),
			HasMore:     total > int64(page*limit),
		},
	}
}

func calculateTotalPages(total int64, limit int) int64 {
	if limit == 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
