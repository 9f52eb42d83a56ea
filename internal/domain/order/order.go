package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// validTransitions encodes the forward-only lifecycle. Cancellation is
// only reachable from pending; delivered and cancelled are terminal.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// IsValid reports whether s is a known order status
func (s Status) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the lifecycle allows moving to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is an immutable-once-placed purchase record. Its items are
// created atomically with it; afterwards only status and payment fields
// change until deletion from a terminal state.
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	Status          Status          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ShippingAddress string          `gorm:"type:varchar(500)" json:"shipping_address"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"payment_method"`
	IsPaid          bool            `gorm:"not null;default:false" json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single product line of an order with the unit price
// snapshotted at order time
type OrderItem struct {
	shared.BaseEntity
	OrderID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int64            `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Product    *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a pending order without items
func NewOrder(userID uuid.UUID, shippingAddress, paymentMethod string) (*Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		TotalAmount:     decimal.Zero,
		Status:          StatusPending,
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
	}, nil
}

// AddItem appends a line with the given unit price snapshot and folds
// the line total into the order amount. Only valid before the order is
// saved for the first time.
func (o *Order) AddItem(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	item := OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(quantity)),
	}
	o.Items = append(o.Items, item)
	o.TotalAmount = o.TotalAmount.Add(item.TotalPrice)
	return nil
}

// ChangeStatus moves the order along the lifecycle, rejecting illegal
// jumps with InvalidState
func (o *Order) ChangeStatus(next Status) error {
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(next))
	}
	if !o.Status.CanTransitionTo(next) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(next))
	}
	o.Status = next
	o.Touch()
	return nil
}

// Cancel marks the order cancelled. Only pending orders can be
// cancelled; stock restoration is the caller's responsibility and must
// happen in the same transaction.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}
	o.Status = StatusCancelled
	o.Touch()
	return nil
}

// SetShippingAddress changes the destination of an order that has not
// shipped yet
func (o *Order) SetShippingAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Shipping address cannot be empty")
	}
	if o.Status == StatusShipped || o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Shipping address can no longer be changed")
	}
	o.ShippingAddress = address
	o.Touch()
	return nil
}

// SetPaymentMethod changes the payment method of an unpaid order
func (o *Order) SetPaymentMethod(method string) error {
	if strings.TrimSpace(method) == "" {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	if o.IsPaid {
		return shared.NewDomainError("INVALID_STATE", "Payment method cannot change after payment")
	}
	o.PaymentMethod = method
	o.Touch()
	return nil
}

// CanDelete reports whether the order is in a terminal state and may be
// removed together with its items
func (o *Order) CanDelete() bool {
	return o.Status == StatusCancelled || o.Status == StatusDelivered
}

// EnsureDeletable returns InvalidState unless the order can be deleted
func (o *Order) EnsureDeletable() error {
	if !o.CanDelete() {
		return shared.NewDomainError("INVALID_STATE", "Only cancelled or delivered orders can be deleted")
	}
	return nil
}

// MarkPaid sets the paid flag and records the payment time once
func (o *Order) MarkPaid(at time.Time) {
	if o.IsPaid {
		return
	}
	o.IsPaid = true
	o.PaidAt = &at
	o.Touch()
}
