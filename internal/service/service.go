package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/cb9060218-del/thunder-res-backend/internal/domain"
)

var (
	ErrInvalidOrder    = errors.New("invalid order payload")
	ErrInvalidMenuItem = errors.New("invalid menu item payload")
	ErrOrderNotFound   = errors.New("order not found")
)

type MenuService struct {
	repo  MenuRepository
	cache MenuCache
}

func NewMenuService(repo MenuRepository, cache MenuCache) *MenuService {
	return &MenuService{repo: repo, cache: cache}
}

func (s *MenuService) List(ctx context.Context, includeUnavailable bool) ([]domain.MenuItem, error) {
	var key string
	if s.cache != nil {
		key = s.cache.Key(includeUnavailable)
		if payload, err := s.cache.Get(ctx, key); err == nil && payload != nil {
			var items []domain.MenuItem
			if err := json.Unmarshal(payload, &items); err == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.ListMenu(ctx, includeUnavailable)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.cache.Set(ctx, key, payload); err != nil {
				log.Printf("Warning: failed to cache menu: %v", err)
			}
		}
	}
	return items, nil
}

func (s *MenuService) Add(ctx context.Context, item *domain.MenuItem) error {
	if item.Name == "" || item.Price < 0 {
		return ErrInvalidMenuItem
	}
	if err := s.repo.AddMenuItem(ctx, item); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("Warning: failed to invalidate menu cache: %v", err)
		}
	}
	return nil
}

type OrderOptions struct {
	// TrustClientPrice keeps the client-submitted unit price (price-lock at
	// order time). When false the current menu price wins.
	TrustClientPrice bool
	// StrictReadyUpdate turns "zero rows updated" on the ready transition
	// into ErrOrderNotFound instead of a silent no-op.
	StrictReadyUpdate bool
	// Timeout bounds the order transaction; zero means no bound.
	Timeout time.Duration
}

type OrderService struct {
	repo      OrderRepository
	menu      MenuRepository
	publisher OrderPublisher
	opts      OrderOptions
}

func NewOrderService(repo OrderRepository, menu MenuRepository, publisher OrderPublisher, opts OrderOptions) *OrderService {
	return &OrderService{repo: repo, menu: menu, publisher: publisher, opts: opts}
}

func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error) {
	if req.TableNo <= 0 || req.Items == nil {
		return nil, ErrInvalidOrder
	}
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, ErrInvalidOrder
		}
	}

	lines := req.Items
	if !s.opts.TrustClientPrice && len(lines) > 0 {
		ids := make([]int, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ItemID)
		}
		prices, err := s.menu.GetMenuPrices(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].Price = domain.LenientPrice(prices[lines[i].ItemID])
		}
	}

	var total float64
	for _, line := range lines {
		total += float64(line.Price) * float64(line.Quantity)
	}

	order := &domain.Order{
		TableNo: req.TableNo,
		Total:   total,
		Status:  domain.StatusPending,
		Items:   []domain.OrderItem{},
	}

	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	if err := s.repo.CreateOrder(ctx, order, lines); err != nil {
		return nil, err
	}

	s.publish(ctx, domain.OrderEvent{
		Type:      "order_created",
		OrderID:   order.ID,
		TableNo:   order.TableNo,
		Total:     order.Total,
		Status:    order.Status,
		Timestamp: time.Now(),
	})
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListOrders(ctx)
}

func (s *OrderService) MarkReady(ctx context.Context, orderID int) error {
	rows, err := s.repo.MarkOrderReady(ctx, orderID)
	if err != nil {
		return err
	}
	if rows == 0 {
		if s.opts.StrictReadyUpdate {
			return ErrOrderNotFound
		}
		return nil
	}

	s.publish(ctx, domain.OrderEvent{
		Type:      "order_ready",
		OrderID:   orderID,
		Status:    domain.StatusReady,
		Timestamp: time.Now(),
	})
	return nil
}

// publish emits lifecycle events best-effort; a missing broker never fails
// the order itself.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event for order %d: %v", event.Type, event.OrderID, err)
	}
}
