package models

// Order is a classified production order ready for allocation: the raw order
// joined with its routing time from the product catalog and enriched with a
// complexity class. Immutable once classified.
type Order struct {
	OrderNumber string  `json:"order_number"`
	SAP         string  `json:"sap"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"` // Urgent, A, B, C or nil
	RoutingTime float64 `json:"routing_time"`
	ClassLabel  string  `json:"class_label"`
	ClassCode   int     `json:"class_code"`
}

// UnscheduledOrder is an order the engine could not fit into any technician's
// remaining capacity. It keeps the classified order fields so it can be
// manually assigned later.
type UnscheduledOrder struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderNumber string  `gorm:"not null" json:"order_number"`
	SAP         string  `gorm:"not null" json:"sap"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	RoutingTime float64 `gorm:"not null" json:"routing_time"`
	ClassLabel  string  `json:"class_label"`
	ClassCode   int     `json:"class_code"`
}

// TableName specifies the table name for the UnscheduledOrder model
func (UnscheduledOrder) TableName() string {
	return "unscheduled_orders"
}
