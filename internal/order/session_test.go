package order

import (
	"testing"

	"github.com/cuanku/ppob-bot/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StateAwaitingDestination, StateAwaitingProduct))
	assert.True(t, CanTransition(StateAwaitingProduct, StateAwaitingConfirm))

	assert.False(t, CanTransition(StateAwaitingDestination, StateAwaitingConfirm))
	assert.False(t, CanTransition(StateAwaitingConfirm, StateAwaitingDestination))
	assert.False(t, CanTransition(StateAwaitingConfirm, StateAwaitingProduct))
}

func TestSessionSelectionView(t *testing.T) {
	s := &Session{
		State: StateAwaitingProduct,
		Data: SessionData{
			ProductCode: "LISTDX",
			Destination: "628123456789",
			Products:    []gateway.Product{{ID: "906752", Name: "AIGO 75GB", Price: 156275}},
		},
	}

	sel, err := s.Selection()
	require.NoError(t, err)
	assert.Equal(t, "LISTDX", sel.ProductCode)
	assert.Len(t, sel.Products, 1)

	// state salah
	s.State = StateAwaitingDestination
	_, err = s.Selection()
	assert.ErrorIs(t, err, ErrSessionIncomplete)

	// field wajib hilang
	s.State = StateAwaitingProduct
	s.Data.Destination = ""
	_, err = s.Selection()
	assert.ErrorIs(t, err, ErrSessionIncomplete)
}

func TestSessionConfirmationView(t *testing.T) {
	s := &Session{
		State: StateAwaitingConfirm,
		Data: SessionData{
			ProductCode: "LISTDX",
			Destination: "628123456789",
			SelectedID:  "906752",
			Price:       156275,
			Description: "AIGO 75GB",
		},
	}

	conf, err := s.Confirmation()
	require.NoError(t, err)
	assert.Equal(t, 156275, conf.Price)
	assert.Equal(t, "906752", conf.SelectedID)

	s.Data.Price = 0
	_, err = s.Confirmation()
	assert.ErrorIs(t, err, ErrSessionIncomplete)
}

func TestSessionAdvance(t *testing.T) {
	s := &Session{State: StateAwaitingDestination}
	require.NoError(t, s.advance(StateAwaitingProduct))
	assert.Equal(t, StateAwaitingProduct, s.State)

	err := s.advance(StateAwaitingProduct)
	assert.ErrorIs(t, err, ErrBadTransition)
}
