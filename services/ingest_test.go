package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyOrders(t *testing.T) {
	raw := []RawOrder{
		{OrderNumber: "O1", SAP: "S1", Description: "bracket", Priority: strPtr("a")},
		{OrderNumber: "O2", SAP: "S2", Description: "housing"},
	}
	catalog := []CatalogItem{
		{SAP: "S1", RoutingTime: 100},
		{SAP: "S2", RoutingTime: 333},
	}

	orders, err := ClassifyOrders(raw, catalog)

	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	assert.Equal(t, PriorityA, *orders[0].Priority)
	assert.Equal(t, 100.0, orders[0].RoutingTime)
	assert.Equal(t, "Low", orders[0].ClassLabel)
	assert.Equal(t, 1, orders[0].ClassCode)

	assert.Nil(t, orders[1].Priority)
	assert.Equal(t, "High", orders[1].ClassLabel)
	assert.Equal(t, 3, orders[1].ClassCode)
}

func TestClassifyOrders_MissingSAP(t *testing.T) {
	raw := []RawOrder{
		{OrderNumber: "O1", SAP: "S1"},
		{OrderNumber: "O2", SAP: "S-MISSING"},
		{OrderNumber: "O3", SAP: "S-MISSING"}, // duplicates reported once
	}
	catalog := []CatalogItem{{SAP: "S1", RoutingTime: 100}}

	_, err := ClassifyOrders(raw, catalog)

	var missingErr *MissingSAPError
	assert.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"S-MISSING"}, missingErr.SAPs)
}

func TestClassifyOrders_NonPositiveRoutingTime(t *testing.T) {
	raw := []RawOrder{{OrderNumber: "O1", SAP: "S1"}}
	catalog := []CatalogItem{{SAP: "S1", RoutingTime: 0}}

	_, err := ClassifyOrders(raw, catalog)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestClassifyOrders_BadPriority(t *testing.T) {
	raw := []RawOrder{{OrderNumber: "O1", SAP: "S1", Priority: strPtr("X")}}
	catalog := []CatalogItem{{SAP: "S1", RoutingTime: 100}}

	_, err := ClassifyOrders(raw, catalog)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
