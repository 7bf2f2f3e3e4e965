package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Heytechmate/overtime-cafe/internal/domain"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/jackc/pgx/v5"
)

var (
	ErrStoreClosed   = errors.New("store is closed")
	ErrEmptyOrder    = errors.New("order has no items")
	ErrUnknownOption = errors.New("unknown size or add-on")
)

// OrderService drives the order workflow from placement through collection,
// including the loyalty accrual that rides on the collect transaction.
type OrderService struct {
	Orders        repository.OrderRepository
	Menu          repository.MenuRepository
	Users         repository.UserRepository
	Settings      repository.SettingsRepository
	Loyalty       repository.LoyaltyRepository
	Notifications repository.NotificationRepository
	Logs          repository.ActivityLogRepository
	Logger        *slog.Logger
}

type PlaceOrderInput struct {
	DeliveryMethod domain.DeliveryMethod
	DeskLocation   string
	Items          []PlaceOrderItem
}

type PlaceOrderItem struct {
	MenuItemID int64
	Qty        int
	Size       *string
	AddOns     []string
}

// Place validates the cart against the live menu, snapshots prices and
// creates the order with its per-day number.
func (s OrderService) Place(ctx context.Context, userID int64, in PlaceOrderInput) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	switch in.DeliveryMethod {
	case domain.DeliveryPickup:
	case domain.DeliveryDesk:
		if in.DeskLocation == "" {
			return nil, fmt.Errorf("desk location is required for delivery")
		}
	default:
		return nil, fmt.Errorf("unknown delivery method %q", in.DeliveryMethod)
	}

	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.StoreOpen {
		return nil, ErrStoreClosed
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		lines []repository.CreateOrderItem
		total int64
	)
	for _, cartItem := range in.Items {
		if cartItem.Qty <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
		menuItem, err := s.Menu.GetByID(ctx, cartItem.MenuItemID)
		if err != nil {
			return nil, err
		}
		unit, err := priceLine(menuItem, cartItem.Size, cartItem.AddOns)
		if err != nil {
			return nil, err
		}
		total += unit * int64(cartItem.Qty)
		lines = append(lines, repository.CreateOrderItem{
			Name:      menuItem.Name,
			Category:  menuItem.Category,
			Size:      cartItem.Size,
			AddOns:    cartItem.AddOns,
			UnitPrice: unit,
			Qty:       cartItem.Qty,
		})
	}

	order, err := s.Orders.Create(ctx, repository.CreateOrderInput{
		UserID:         user.ID,
		UserName:       user.Name,
		DeliveryMethod: in.DeliveryMethod,
		DeskLocation:   in.DeskLocation,
		Total:          total,
		Items:          lines,
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("order placed", "order_id", order.ID, "number", order.OrderNumber, "user_id", user.ID)
	return order, nil
}

// priceLine resolves the unit price: base price plus the selected size and
// add-on surcharges, looked up by name on the menu item's options.
func priceLine(item *domain.MenuItem, size *string, addOns []string) (int64, error) {
	unit := item.Price.Amount
	if size != nil && *size != "" {
		opt, ok := findOption(item.Sizes, *size)
		if !ok {
			return 0, fmt.Errorf("%w: size %q on %s", ErrUnknownOption, *size, item.Name)
		}
		unit += opt.Price.Amount
	}
	for _, name := range addOns {
		opt, ok := findOption(item.AddOns, name)
		if !ok {
			return 0, fmt.Errorf("%w: add-on %q on %s", ErrUnknownOption, name, item.Name)
		}
		unit += opt.Price.Amount
	}
	return unit, nil
}

func findOption(options []domain.MenuOption, name string) (domain.MenuOption, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt, true
		}
	}
	return domain.MenuOption{}, false
}

// StartPrep moves Pending → Preparing.
func (s OrderService) StartPrep(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.Orders.UpdateStatus(ctx, orderID, domain.OrderPending, domain.OrderPreparing); err != nil {
		return nil, err
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Notifications.Create(ctx, repository.CreateNotificationInput{
		UserID:  order.UserID,
		Title:   fmt.Sprintf("Order #%d is being prepared", order.OrderNumber),
		Message: "The barista has started on your order.",
		Type:    domain.NotificationOrder,
	}); err != nil {
		s.Logger.Warn("preparing notification failed", "order_id", orderID, "error", err)
	}
	return order, nil
}

// MarkReady moves Preparing → Ready and tells the member to come collect.
func (s OrderService) MarkReady(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.Orders.UpdateStatus(ctx, orderID, domain.OrderPreparing, domain.OrderReady); err != nil {
		return nil, err
	}
	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Notifications.Create(ctx, repository.CreateNotificationInput{
		UserID:  order.UserID,
		Title:   fmt.Sprintf("Order #%d is ready", order.OrderNumber),
		Message: "Your order is ready at the counter.",
		Type:    domain.NotificationOrder,
	}); err != nil {
		s.Logger.Warn("ready notification failed", "order_id", orderID, "error", err)
	}
	return order, nil
}

// Cancel voids a Pending order before the kitchen picks it up.
func (s OrderService) Cancel(ctx context.Context, orderID int64) (*domain.Order, error) {
	if err := s.Orders.UpdateStatus(ctx, orderID, domain.OrderPending, domain.OrderCancelled); err != nil {
		return nil, err
	}
	return s.Orders.GetByID(ctx, orderID)
}

// Collect flips Ready → Collected for the owning member and accrues loyalty
// stamps in the same transaction, so the order cannot land in Collected with
// the stamps lost.
func (s OrderService) Collect(ctx context.Context, orderID, userID int64) (*domain.Order, error) {
	settings, err := s.Settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	order, err := s.Orders.Collect(ctx, orderID, userID, func(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
		points := domain.OrderPoints(order.Items)
		if points == 0 {
			return nil
		}
		bal, err := s.Loyalty.AddPointsWithTx(ctx, tx, userID, points, settings.CoffeeGoal)
		if err != nil {
			return err
		}
		if bal.FreeEarned > 0 {
			if _, err := s.Notifications.CreateWithTx(ctx, tx, repository.CreateNotificationInput{
				UserID:  userID,
				Title:   "Free coffee unlocked!",
				Message: "You completed your stamp card. Your next coffee is on us.",
				Type:    domain.NotificationInfo,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("order collected", "order_id", order.ID, "number", order.OrderNumber, "user_id", userID)
	return order, nil
}

func (s OrderService) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	return s.Orders.GetByID(ctx, orderID)
}

func (s OrderService) ActiveForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return s.Orders.ListActiveByUser(ctx, userID)
}

func (s OrderService) Queue(ctx context.Context) ([]domain.Order, error) {
	return s.Orders.ListQueue(ctx)
}
