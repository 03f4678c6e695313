package services

import (
	"fmt"

	"github.com/atelier-ops/shopfloor-scheduler-api/models"
)

// RawOrder is an order row as uploaded, before the routing time is joined in
// from the product catalog
type RawOrder struct {
	OrderNumber string  `json:"order_number" binding:"required"`
	SAP         string  `json:"sap" binding:"required"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
}

// CatalogItem is one product catalog row keyed by material code
type CatalogItem struct {
	SAP         string  `json:"sap" binding:"required"`
	RoutingTime float64 `json:"routing_time" binding:"required"`
}

// MissingSAPError reports material codes with no catalog entry; those orders
// cannot be classified until the catalog is completed
type MissingSAPError struct {
	SAPs []string
}

func (e *MissingSAPError) Error() string {
	return fmt.Sprintf("%d material code(s) missing from the product catalog: %v", len(e.SAPs), e.SAPs)
}

// ClassifyOrders joins raw orders with the product catalog and derives each
// order's complexity class. It fails without partial output when any material
// code is missing from the catalog, when a routing time is not positive, or
// when a priority value is outside the closed enum.
func ClassifyOrders(raw []RawOrder, catalog []CatalogItem) ([]models.Order, error) {
	routingBySAP := make(map[string]float64, len(catalog))
	for _, item := range catalog {
		routingBySAP[item.SAP] = item.RoutingTime
	}

	var missing []string
	seenMissing := make(map[string]bool)
	for _, r := range raw {
		if _, ok := routingBySAP[r.SAP]; !ok && !seenMissing[r.SAP] {
			missing = append(missing, r.SAP)
			seenMissing[r.SAP] = true
		}
	}
	if len(missing) > 0 {
		return nil, &MissingSAPError{SAPs: missing}
	}

	orders := make([]models.Order, 0, len(raw))
	for _, r := range raw {
		routingTime := routingBySAP[r.SAP]
		label, code, err := Classify(routingTime)
		if err != nil {
			return nil, &ValidationError{
				Field:  "routing_time",
				Reason: fmt.Sprintf("order %s (SAP %s): must be positive", r.OrderNumber, r.SAP),
			}
		}
		priority, err := ParsePriority(r.Priority)
		if err != nil {
			return nil, &ValidationError{
				Field:  "priority",
				Reason: fmt.Sprintf("order %s: must be one of Urgent, A, B, C or empty", r.OrderNumber),
			}
		}
		orders = append(orders, models.Order{
			OrderNumber: r.OrderNumber,
			SAP:         r.SAP,
			Description: r.Description,
			Priority:    priority,
			RoutingTime: routingTime,
			ClassLabel:  label,
			ClassCode:   code,
		})
	}
	return orders, nil
}
