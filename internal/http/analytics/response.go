package analytics

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
)

type statsResponse struct {
	TotalSpend          float64 `json:"totalSpend"`
	TotalInvoices       int     `json:"totalInvoices"`
	DocumentsUploaded   int     `json:"documentsUploaded"`
	AverageInvoiceValue float64 `json:"averageInvoiceValue"`
}

func toStatsResponse(s *analytics.Stats) statsResponse {
	return statsResponse{
		TotalSpend:          s.TotalSpend.InexactFloat64(),
		TotalInvoices:       s.TotalInvoices,
		DocumentsUploaded:   s.DocumentsUploaded,
		AverageInvoiceValue: s.AverageInvoiceValue.InexactFloat64(),
	}
}

type trendResponse struct {
	Month        string  `json:"month"`
	InvoiceCount int     `json:"invoiceCount"`
	TotalAmount  float64 `json:"totalAmount"`
}

func toTrendResponseList(points []analytics.TrendPoint) []trendResponse {
	res := make([]trendResponse, 0, len(points))
	for _, p := range points {
		res = append(res, trendResponse{
			Month:        p.Month,
			InvoiceCount: p.InvoiceCount,
			TotalAmount:  p.TotalAmount.InexactFloat64(),
		})
	}

	return res
}

type vendorSpendResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    *string   `json:"category"`
	TotalAmount float64   `json:"totalAmount"`
}

func toVendorSpendResponseList(vendors []analytics.VendorSpend) []vendorSpendResponse {
	res := make([]vendorSpendResponse, 0, len(vendors))
	for _, v := range vendors {
		res = append(res, vendorSpendResponse{
			ID:          v.ID,
			Name:        v.Name,
			Category:    v.Category,
			TotalAmount: v.TotalAmount.InexactFloat64(),
		})
	}

	return res
}

type categorySpendResponse struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"totalAmount"`
}

func toCategorySpendResponseList(categories []analytics.CategorySpend) []categorySpendResponse {
	res := make([]categorySpendResponse, 0, len(categories))
	for _, c := range categories {
		res = append(res, categorySpendResponse{
			Category:    c.Category,
			TotalAmount: c.TotalAmount.InexactFloat64(),
		})
	}

	return res
}

type outflowResponse struct {
	Month   string  `json:"month"`
	Outflow float64 `json:"outflow"`
}

func toOutflowResponseList(points []analytics.OutflowPoint) []outflowResponse {
	res := make([]outflowResponse, 0, len(points))
	for _, p := range points {
		res = append(res, outflowResponse{Month: p.Month, Outflow: p.Outflow.InexactFloat64()})
	}

	return res
}
