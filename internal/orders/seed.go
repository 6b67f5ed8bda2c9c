package orders

import (
	"time"

	"roscon_orders/internal/roscon"

	"github.com/shopspring/decimal"
)

// SampleOrders is the fixed demo collection written when nothing is stored yet.
func SampleOrders(createdAt time.Time) []Order {
	bizum := roscon.PaymentBizum
	card := roscon.PaymentCard

	return []Order{
		{
			ID:            "1",
			CustomerName:  "María García",
			Phone:         "666123456",
			DeliveryDate:  "2025-01-06",
			Notes:         "Recoger por la mañana",
			Status:        roscon.StatusPending,
			Paid:          true,
			PaymentMethod: &bizum,
			CreatedAt:     createdAt,
			Price:         decimal.NewFromInt(45),
			Contents:      Legacy{Size: roscon.SizeLarge, Filling: roscon.FillingCream, Quantity: 2},
		},
		{
			ID:           "2",
			CustomerName: "Juan Pérez",
			Phone:        "677234567",
			DeliveryDate: "2025-01-06",
			Status:       roscon.StatusPending,
			CreatedAt:    createdAt,
			Price:        decimal.NewFromInt(25),
			Contents:     Legacy{Size: roscon.SizeLarge, Filling: roscon.FillingTruffle, Quantity: 1},
		},
		{
			ID:           "4",
			CustomerName: "Marta Ruiz",
			Phone:        "600111222",
			DeliveryDate: "2025-01-07",
			Status:       roscon.StatusPending,
			CreatedAt:    createdAt,
			Price:        decimal.NewFromInt(30),
			Contents:     Legacy{Size: roscon.SizeMini, Filling: roscon.FillingPlain, Quantity: 6},
		},
		{
			ID:            "3",
			CustomerName:  "Ana Martínez",
			Phone:         "688345678",
			DeliveryDate:  "2025-01-05",
			Notes:         "Sin frutos secos",
			Status:        roscon.StatusPreparing,
			Paid:          true,
			PaymentMethod: &card,
			CreatedAt:     createdAt,
			Price:         decimal.NewFromInt(42),
			Contents:      Legacy{Size: roscon.SizeMedium, Filling: roscon.FillingPlain, Quantity: 3},
		},
	}
}
