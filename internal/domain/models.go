package domain

import (
	"bytes"
	"strconv"
	"time"
)

const (
	StatusPending = "pending"
	StatusReady   = "ready"
)

type MenuItem struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	ImageURL  string  `json:"image_url"`
	Available bool    `json:"available"`
}

type Order struct {
	ID        int         `json:"order_id"`
	TableNo   int         `json:"table_no"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LenientPrice tolerates clients that send the price as a quoted string or
// omit it entirely; anything that does not parse as a number counts as zero.
type LenientPrice float64

func (p *LenientPrice) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*p = 0
		return nil
	}
	value, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = LenientPrice(value)
	return nil
}

type OrderLine struct {
	ItemID   int          `json:"id"`
	Quantity int          `json:"qty"`
	Price    LenientPrice `json:"price"`
}

type CreateOrderRequest struct {
	TableNo int         `json:"table_no"`
	Items   []OrderLine `json:"items"`
}

type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	TableNo   int       `json:"table_no,omitempty"`
	Total     float64   `json:"total,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
