package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSupplierTransaction_SignedAmount(t *testing.T) {
	credit := &SupplierTransaction{Amount: decimal.NewFromInt(80), Type: EntryTypeCredit}
	debit := &SupplierTransaction{Amount: decimal.NewFromInt(80), Type: EntryTypeDebit}

	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromInt(80)))
	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromInt(-80)))
}
