package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roscon_orders/internal/roscon"
)

var (
	ErrNotFound              = errors.New("order not found")
	ErrCustomerRequired      = errors.New("customer name is required")
	ErrPhoneRequired         = errors.New("phone is required")
	ErrDeliveryDateRequired  = errors.New("delivery date is required")
	ErrInvalidDeliveryDate   = errors.New("delivery date must be YYYY-MM-DD")
	ErrNoItems               = errors.New("at least one item is required")
	ErrInvalidQuantity       = errors.New("quantity must be greater than zero")
	ErrUnknownSize           = errors.New("unknown size")
	ErrUnknownFilling        = errors.New("unknown filling")
	ErrUnknownStatus         = errors.New("unknown status")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrPaymentMethodRequired = errors.New("paid orders need a payment method")
)

// Validate checks an order form before it reaches the store. It returns the
// input with trimmed text and the payment method cleared for unpaid orders.
func Validate(in Input) (Input, error) {
	d, err := details{
		CustomerName:  in.CustomerName,
		Phone:         in.Phone,
		DeliveryDate:  in.DeliveryDate,
		Notes:         in.Notes,
		Status:        in.Status,
		Paid:          in.Paid,
		PaymentMethod: in.PaymentMethod,
	}.validate()
	if err != nil {
		return in, err
	}
	if err := validateItems(in.Items); err != nil {
		return in, err
	}

	in.CustomerName = d.CustomerName
	in.Phone = d.Phone
	in.DeliveryDate = d.DeliveryDate
	in.Notes = d.Notes
	in.Status = d.Status
	in.PaymentMethod = d.PaymentMethod
	return in, nil
}

// ValidateOrder checks an edited order. Items are only checked for itemized
// orders; legacy contents are kept as they were stored.
func ValidateOrder(o Order) (Order, error) {
	d, err := details{
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		DeliveryDate:  o.DeliveryDate,
		Notes:         o.Notes,
		Status:        o.Status,
		Paid:          o.Paid,
		PaymentMethod: o.PaymentMethod,
	}.validate()
	if err != nil {
		return o, err
	}
	if itemized, ok := o.Contents.(Itemized); ok {
		if err := validateItems(itemized.Items); err != nil {
			return o, err
		}
	}

	o.CustomerName = d.CustomerName
	o.Phone = d.Phone
	o.DeliveryDate = d.DeliveryDate
	o.Notes = d.Notes
	o.Status = d.Status
	o.PaymentMethod = d.PaymentMethod
	return o, nil
}

type details struct {
	CustomerName  string
	Phone         string
	DeliveryDate  string
	Notes         string
	Status        roscon.Status
	Paid          bool
	PaymentMethod *roscon.PaymentMethod
}

func (d details) validate() (details, error) {
	d.CustomerName = strings.TrimSpace(d.CustomerName)
	d.Phone = strings.TrimSpace(d.Phone)
	d.DeliveryDate = strings.TrimSpace(d.DeliveryDate)
	d.Notes = strings.TrimSpace(d.Notes)

	if d.CustomerName == "" {
		return d, ErrCustomerRequired
	}
	if d.Phone == "" {
		return d, ErrPhoneRequired
	}
	if err := ValidateDeliveryDate(d.DeliveryDate); err != nil {
		return d, err
	}
	if d.Status == "" {
		d.Status = roscon.StatusPending
	}
	if !d.Status.Valid() {
		return d, fmt.Errorf("%w: %q", ErrUnknownStatus, d.Status)
	}

	method, err := validatePayment(d.Paid, d.PaymentMethod)
	if err != nil {
		return d, err
	}
	d.PaymentMethod = method
	return d, nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

func ValidateDeliveryDate(value string) error {
	if value == "" {
		return ErrDeliveryDateRequired
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDeliveryDate, value)
	}
	return nil
}

func validateItem(item LineItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if !item.Size.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSize, item.Size)
	}
	if !item.Filling.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFilling, item.Filling)
	}
	return nil
}

func validatePayment(paid bool, method *roscon.PaymentMethod) (*roscon.PaymentMethod, error) {
	if !paid {
		return nil, nil
	}
	if method == nil {
		return nil, ErrPaymentMethodRequired
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, *method)
	}
	return method, nil
}
