package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

func TestMovementReasonAllowed(t *testing.T) {
	assert.True(t, entity.MovementReasonAllowed(entity.MovementTypeIn, entity.MovementReasonPurchase))
	assert.True(t, entity.MovementReasonAllowed(entity.MovementTypeOut, entity.MovementReasonSale))
	assert.True(t, entity.MovementReasonAllowed(entity.MovementTypeTransfer, entity.MovementReasonTransfer))
	assert.True(t, entity.MovementReasonAllowed(entity.MovementTypeAdjustment, entity.MovementReasonAdjustment))

	assert.False(t, entity.MovementReasonAllowed(entity.MovementTypeIn, entity.MovementReasonSale),
		"sale no es razón de entrada")
	assert.False(t, entity.MovementReasonAllowed(entity.MovementTypeOut, entity.MovementReasonPurchase),
		"purchase no es razón de salida")
	assert.False(t, entity.MovementReasonAllowed(entity.MovementTypeTransfer, entity.MovementReasonManual))
	assert.False(t, entity.MovementReasonAllowed("otro", entity.MovementReasonSale))
}

func TestSignedChange(t *testing.T) {
	in := &entity.Movement{BeforeQuantity: 10, AfterQuantity: 15}
	assert.Equal(t, int64(5), in.SignedChange())

	out := &entity.Movement{BeforeQuantity: 10, AfterQuantity: 4}
	assert.Equal(t, int64(-6), out.SignedChange())

	flat := &entity.Movement{BeforeQuantity: 7, AfterQuantity: 7}
	assert.Equal(t, int64(0), flat.SignedChange())
}
