package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFillDetailsDefaults(t *testing.T) {
	orders := []MakerOrder{sampleOrder()}
	details := NewFillDetails(orders, []string{"0xabcd"}, []string{"100"}, FillMeta{})

	assert.Equal(t, DefaultFillMeta, details.Action)
	assert.Equal(t, DefaultFillMeta, details.Market)
	assert.Equal(t, DefaultFillMeta, details.Betting)
	assert.Equal(t, DefaultFillMeta, details.Stake)
	assert.Equal(t, DefaultFillMeta, details.Odds)
	assert.Equal(t, DefaultFillMeta, details.Returning)

	_, err := ParseUint256(details.Fills.FillSalt)
	require.NoError(t, err)
}

func TestNewFillDetailsKeepsSuppliedMeta(t *testing.T) {
	meta := FillMeta{Action: "bet", Odds: "52%"}
	details := NewFillDetails(nil, nil, nil, meta)
	assert.Equal(t, "bet", details.Action)
	assert.Equal(t, "52%", details.Odds)
	assert.Equal(t, DefaultFillMeta, details.Market)
}

func TestNewFillDetailsFreshSaltPerBatch(t *testing.T) {
	a := NewFillDetails(nil, nil, nil, FillMeta{})
	b := NewFillDetails(nil, nil, nil, FillMeta{})
	assert.NotEqual(t, a.Fills.FillSalt, b.Fills.FillSalt)
}

func TestNewCancelDetails(t *testing.T) {
	hashes := []string{"0x04b9af76dfb92e71500975db77b1de0bb32a0b2a7663c77d10b63dbb55d74fc0"}

	withMessage := NewCancelDetails(hashes, "repricing")
	assert.Equal(t, "repricing", withMessage.Message)
	assert.Equal(t, hashes, withMessage.Orders)

	defaulted := NewCancelDetails(hashes, "")
	assert.Equal(t, DefaultCancelMessage, defaulted.Message)
}
