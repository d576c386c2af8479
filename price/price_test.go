package price_test

import (
	"testing"

	"storefront/price"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{name: "zero", amount: decimal.Zero, want: "0,00\u00a0€"},
		{name: "whole euros", amount: decimal.NewFromInt(25), want: "25,00\u00a0€"},
		{name: "thousands are grouped", amount: decimal.RequireFromString("1234.5"), want: "1\u202f234,50\u00a0€"},
		{name: "millions are grouped", amount: decimal.RequireFromString("1234567.89"), want: "1\u202f234\u202f567,89\u00a0€"},
		{name: "half cent rounds up", amount: decimal.RequireFromString("10.005"), want: "10,01\u00a0€"},
		{name: "fraction of a cent rounds down", amount: decimal.RequireFromString("10.004"), want: "10,00\u00a0€"},
		{name: "negative", amount: decimal.RequireFromString("-1500.255"), want: "-1\u202f500,26\u00a0€"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, price.Format(tc.amount))
		})
	}
}

func TestCalculateTotal(t *testing.T) {
	total := price.CalculateTotal(decimal.RequireFromString("19.99"), 3)
	assert.True(t, decimal.RequireFromString("59.97").Equal(total), "got %s", total)

	assert.True(t, price.CalculateTotal(decimal.RequireFromString("19.99"), 0).IsZero())
}
