// Package roscon holds the closed product vocabulary of the bakery (sizes,
// fillings, order statuses, payment methods) and the unit price table.
package roscon

import "strings"

type Size string

const (
	SizeMini   Size = "mini"
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// Sizes is the full size enumeration in display order.
var Sizes = []Size{SizeMini, SizeSmall, SizeMedium, SizeLarge}

func (s Size) Valid() bool {
	for _, known := range Sizes {
		if s == known {
			return true
		}
	}
	return false
}

// Filling is a single filling or a comma-joined combination. The exact
// spelling (including order and ", " separators) is the price table key.
type Filling string

const (
	FillingPlain     Filling = "sin relleno"
	FillingCream     Filling = "nata"
	FillingTruffle   Filling = "trufa"
	FillingCustard   Filling = "crema"
	FillingChocolate Filling = "chocolate"

	FillingCreamTruffle            Filling = "nata, trufa"
	FillingCreamCustard            Filling = "nata, crema"
	FillingCreamChocolate          Filling = "nata, chocolate"
	FillingTruffleCustard          Filling = "trufa, crema"
	FillingTruffleChocolate        Filling = "trufa, chocolate"
	FillingCustardChocolate        Filling = "crema, chocolate"
	FillingCreamTruffleCustard     Filling = "nata, trufa, crema"
	FillingCreamTruffleChocolate   Filling = "nata, trufa, chocolate"
	FillingCreamCustardChocolate   Filling = "nata, crema, chocolate"
	FillingTruffleCustardChocolate Filling = "trufa, crema, chocolate"
)

// Fillings is every filling an order may carry.
var Fillings = []Filling{
	FillingPlain,
	FillingCream,
	FillingTruffle,
	FillingCustard,
	FillingChocolate,
	FillingCreamTruffle,
	FillingCreamCustard,
	FillingCreamChocolate,
	FillingTruffleCustard,
	FillingTruffleChocolate,
	FillingCustardChocolate,
	FillingCreamTruffleCustard,
	FillingCreamTruffleChocolate,
	FillingCreamCustardChocolate,
	FillingTruffleCustardChocolate,
}

// ReportFillings is the bucket set used by production reports. It leaves out
// every chocolate-bearing filling; see report.Aggregates.Untracked.
var ReportFillings = []Filling{
	FillingPlain,
	FillingCream,
	FillingTruffle,
	FillingCustard,
	FillingCreamTruffle,
	FillingCreamCustard,
	FillingTruffleCustard,
	FillingCreamTruffleCustard,
}

func (f Filling) Valid() bool {
	for _, known := range Fillings {
		if f == known {
			return true
		}
	}
	return false
}

func (f Filling) Reported() bool {
	for _, known := range ReportFillings {
		if f == known {
			return true
		}
	}
	return false
}

// Components splits a combination into its single fillings.
func (f Filling) Components() []Filling {
	parts := strings.Split(string(f), ",")
	out := make([]Filling, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, Filling(trimmed))
		}
	}
	return out
}

type Status string

const (
	StatusPending   Status = "pendiente"
	StatusPreparing Status = "preparando"
	StatusReady     Status = "listo"
	StatusDelivered Status = "entregado"
)

var Statuses = []Status{StatusPending, StatusPreparing, StatusReady, StatusDelivered}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Pending reports whether the order still needs production or delivery.
func (s Status) Pending() bool {
	return s != StatusDelivered
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentBizum    PaymentMethod = "bizum"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentBizum}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}
