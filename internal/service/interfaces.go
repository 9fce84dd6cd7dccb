package service

import (
	"context"

	"github.com/cb9060218-del/thunder-res-backend/internal/domain"
)

type MenuRepository interface {
	ListMenu(ctx context.Context, includeUnavailable bool) ([]domain.MenuItem, error)
	AddMenuItem(ctx context.Context, item *domain.MenuItem) error
	GetMenuPrices(ctx context.Context, ids []int) (map[int]float64, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order, lines []domain.OrderLine) error
	ListOrders(ctx context.Context) ([]domain.Order, error)
	MarkOrderReady(ctx context.Context, orderID int) (int64, error)
}

type MenuCache interface {
	Key(includeUnavailable bool) string
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte) error
	Invalidate(ctx context.Context) error
}

type OrderPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type MenuServiceInterface interface {
	List(ctx context.Context, includeUnavailable bool) ([]domain.MenuItem, error)
	Add(ctx context.Context, item *domain.MenuItem) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	MarkReady(ctx context.Context, orderID int) error
}

var _ MenuServiceInterface = (*MenuService)(nil)
var _ OrderServiceInterface = (*OrderService)(nil)
