package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

type searchResponse struct {
	Invoices   []response `json:"invoices"`
	TotalCount int        `json:"totalCount"`
}

type response struct {
	ID        uuid.UUID          `json:"id"`
	InvoiceNo string             `json:"invoiceNo"`
	Date      time.Time          `json:"date"`
	Amount    float64            `json:"amount"`
	Status    string             `json:"status"`
	VendorID  *uuid.UUID         `json:"vendorId"`
	Vendor    *vendorResponse    `json:"vendor"`
	LineItems []lineItemResponse `json:"lineItems,omitempty"`
	Payments  []paymentResponse  `json:"payments,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

type vendorResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category *string   `json:"category"`
}

type lineItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
}

type paymentResponse struct {
	ID     uuid.UUID `json:"id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

func toResponse(inv *invoice.Invoice) response {
	res := response{
		ID:        inv.ID,
		InvoiceNo: inv.InvoiceNo,
		Date:      inv.Date,
		Amount:    inv.Amount.InexactFloat64(),
		Status:    inv.Status,
		VendorID:  inv.VendorID,
		CreatedAt: inv.CreatedAt,
	}

	if inv.Vendor != nil {
		res.Vendor = &vendorResponse{
			ID:       inv.Vendor.ID,
			Name:     inv.Vendor.Name,
			Category: inv.Vendor.Category,
		}
	}

	for _, item := range inv.LineItems {
		res.LineItems = append(res.LineItems, lineItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price.InexactFloat64(),
		})
	}

	for _, p := range inv.Payments {
		res.Payments = append(res.Payments, paymentResponse{
			ID:     p.ID,
			Amount: p.Amount.InexactFloat64(),
			Date:   p.Date,
		})
	}

	return res
}

func toResponseList(invoices []*invoice.Invoice) []response {
	res := make([]response, 0, len(invoices))
	for _, inv := range invoices {
		res = append(res, toResponse(inv))
	}

	return res
}
