// Package checkout turns the cart into a paid, recorded order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"storefront/command"
	"storefront/document"
	"storefront/entity"
	"storefront/event"
	"storefront/proof"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultParallelism = 4

	messageCompleted     = "Payment successful, your tickets are booked"
	messagePersistFailed = "Your payment was accepted but the order could not be saved. It will be refunded, please try again"
	refundReason         = "purchases could not be recorded"
)

type Cart interface {
	Snapshot() ([]entity.CartItem, decimal.Decimal)
	// RemoveLines subtracts the ordered quantities, keeping anything added since.
	RemoveLines(items []entity.CartItem)
}

type Orders interface {
	Add(order entity.Order)
}

type Authorizer interface {
	Authorize(ctx context.Context, details entity.PaymentDetails) error
}

type PurchaseStore interface {
	Add(ctx context.Context, purchase entity.Purchase) (entity.Purchase, error)
	Delete(ctx context.Context, purchaseID string) error
}

type InventoryStore interface {
	DecrementAvailable(ctx context.Context, ticketID string, quantity int) error
	IncrementAvailable(ctx context.Context, ticketID string, quantity int) error
}

type ProofGenerator interface {
	Generate(payload proof.Payload) (string, error)
}

type DocumentGenerator interface {
	TicketsPDF(t document.Tickets) ([]byte, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

type CommandSender interface {
	Send(ctx context.Context, cmd any) error
}

type Deps struct {
	Cart      Cart
	Orders    Orders
	Payments  Authorizer
	Purchases PurchaseStore
	Inventory InventoryStore
	Proofs    ProofGenerator
	Documents DocumentGenerator
	Events    EventPublisher
	Commands  CommandSender

	// Parallelism bounds the lines recorded at the same time. Defaults to DefaultParallelism.
	Parallelism int
	Now         func() time.Time
	NewID       func() string
}

type Request struct {
	Customer entity.CustomerInfo
	// Card is charged the cart total; its Amount is ignored.
	Card entity.PaymentDetails
}

type Result struct {
	State    State
	Order    entity.Order
	Document []byte
	Message  string
}

type Checkout struct {
	deps    Deps
	running atomic.Bool
}

func New(deps Deps) *Checkout {
	if deps.Parallelism < 1 {
		deps.Parallelism = DefaultParallelism
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &Checkout{deps: deps}
}

// InProgress reports whether an attempt is running.
func (c *Checkout) InProgress() bool {
	return c.running.Load()
}

// Run performs one checkout attempt. The returned Result is always in a terminal
// state; the error is nil only when the state is StateCompleted.
func (c *Checkout) Run(ctx context.Context, req Request) (Result, error) {
	if !c.running.CompareAndSwap(false, true) {
		return Result{State: StateDeclined, Message: Message(ErrCheckoutInProgress)}, ErrCheckoutInProgress
	}
	defer c.running.Store(false)

	a := &attempt{id: c.deps.NewID(), state: StateIdle}
	logger := log.FromContext(ctx).WithField("order_id", a.id)

	a.moveTo(StateValidating)
	items, total := c.deps.Cart.Snapshot()
	if err := validate(items, req.Customer); err != nil {
		a.moveTo(StateDeclined)
		return a.result(Message(err)), err
	}

	a.moveTo(StatePayingSimulated)
	details := req.Card
	details.Amount = total
	if err := c.deps.Payments.Authorize(ctx, details); err != nil {
		a.moveTo(StateDeclined)
		declined := &DeclinedError{Err: err}
		return a.result(Message(declined)), declined
	}

	a.moveTo(StateSucceeded)
	a.moveTo(StatePersisting)

	now := c.deps.Now()
	purchases, err := c.persist(ctx, a.id, items, total, req.Customer, now)
	if err != nil {
		logger.WithError(err).Error("Checkout could not be recorded")
		a.moveTo(StatePartiallyPersistedFailure)
		return a.result(Message(err)), err
	}

	order := entity.Order{
		ID:           a.id,
		Date:         now,
		CustomerName: req.Customer.FullName(),
		Email:        req.Customer.Email,
		Items:        items,
		Total:        total,
		Purchases:    purchases,
	}
	c.deps.Orders.Add(order)
	c.deps.Cart.RemoveLines(items)

	res := a.result(Message(nil))
	res.Order = order

	doc, err := c.deps.Documents.TicketsPDF(TicketsDocument(order))
	if err != nil {
		logger.WithError(err).Warn("Failed to render tickets document")
	} else {
		res.Document = doc
	}

	if err := c.deps.Events.Publish(ctx, event.NewOrderPlaced(order.ID, order)); err != nil {
		logger.WithError(err).Warn("Failed to publish OrderPlaced")
	}

	a.moveTo(StateCompleted)
	res.State = a.state

	logger.Info("Checkout completed")

	return res, nil
}

// TicketsDocument is the printable content of a completed order.
func TicketsDocument(order entity.Order) document.Tickets {
	return document.Tickets{
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Email:        order.Email,
		Items:        order.Items,
		Purchases:    order.Purchases,
		Total:        order.Total,
		IssuedAt:     order.Date,
	}
}

func validate(items []entity.CartItem, customer entity.CustomerInfo) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}

	if strings.TrimSpace(customer.FirstName) == "" ||
		strings.TrimSpace(customer.LastName) == "" ||
		strings.TrimSpace(customer.Email) == "" {
		return ErrInvalidCustomer
	}

	return nil
}

type lineOutcome struct {
	purchase    *entity.Purchase
	decremented bool
	err         error
}

// persist records every line, waiting for all of them even after a failure, so
// that whatever was written can be undone.
func (c *Checkout) persist(
	ctx context.Context,
	orderID string,
	items []entity.CartItem,
	total decimal.Decimal,
	customer entity.CustomerInfo,
	now time.Time,
) ([]entity.Purchase, error) {
	outcomes := make([]lineOutcome, len(items))

	var g errgroup.Group
	g.SetLimit(c.deps.Parallelism)

	for i, item := range items {
		g.Go(func() error {
			outcomes[i] = c.persistLine(ctx, item, customer, now)
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	purchases := make([]entity.Purchase, 0, len(items))
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
		}
		if o.purchase != nil {
			purchases = append(purchases, *o.purchase)
		}
	}

	if len(errs) == 0 {
		return purchases, nil
	}

	return nil, &PersistenceError{
		OrderID:         orderID,
		Err:             errors.Join(errs...),
		CompensationErr: c.compensate(ctx, orderID, total, outcomes),
	}
}

func (c *Checkout) persistLine(
	ctx context.Context,
	item entity.CartItem,
	customer entity.CustomerInfo,
	now time.Time,
) lineOutcome {
	var out lineOutcome

	code, err := c.deps.Proofs.Generate(proof.Payload{
		TicketID:     item.TicketID,
		CustomerName: customer.FullName(),
		Email:        customer.Email,
		Quantity:     item.Quantity,
		PurchaseDate: now,
	})
	if err != nil {
		out.err = fmt.Errorf("generating proof of purchase for ticket %s: %w", item.TicketID, err)
		return out
	}

	purchase, err := c.deps.Purchases.Add(ctx, entity.Purchase{
		ID:            c.deps.NewID(),
		TicketID:      item.TicketID,
		Quantity:      item.Quantity,
		TotalPrice:    item.LineTotal(),
		CustomerName:  customer.FullName(),
		CustomerEmail: customer.Email,
		QRCode:        code,
	})
	if err != nil {
		out.err = fmt.Errorf("recording purchase of ticket %s: %w", item.TicketID, err)
		return out
	}
	out.purchase = &purchase

	if err := c.deps.Inventory.DecrementAvailable(ctx, item.TicketID, item.Quantity); err != nil {
		out.err = fmt.Errorf("decrementing availability of ticket %s: %w", item.TicketID, err)
		return out
	}
	out.decremented = true

	return out
}

// compensate restocks and deletes what was recorded, then asks for the payment
// to be refunded.
func (c *Checkout) compensate(ctx context.Context, orderID string, total decimal.Decimal, outcomes []lineOutcome) error {
	logger := log.FromContext(ctx).WithField("order_id", orderID)

	var errs []error
	for _, o := range outcomes {
		if o.decremented {
			if err := c.deps.Inventory.IncrementAvailable(ctx, o.purchase.TicketID, o.purchase.Quantity); err != nil {
				errs = append(errs, fmt.Errorf("restocking ticket %s: %w", o.purchase.TicketID, err))
			}
		}
		if o.purchase != nil {
			if err := c.deps.Purchases.Delete(ctx, o.purchase.ID); err != nil {
				errs = append(errs, fmt.Errorf("deleting purchase %s: %w", o.purchase.ID, err))
			}
		}
	}

	refund := command.NewRefundOrder(orderID, orderID, entity.NewMoney(total), refundReason)
	if err := c.deps.Commands.Send(ctx, refund); err != nil {
		errs = append(errs, fmt.Errorf("sending refund: %w", err))
	}

	err := errors.Join(errs...)
	if err != nil {
		logger.WithError(err).Error("Compensation incomplete, manual reconciliation needed")
	}

	return err
}

type attempt struct {
	id    string
	state State
}

func (a *attempt) moveTo(next State) {
	if !a.state.CanTransitionTo(next) {
		panic(fmt.Sprintf("checkout: invalid transition from %s to %s", a.state, next))
	}
	a.state = next
}

func (a *attempt) result(message string) Result {
	return Result{State: a.state, Message: message}
}
