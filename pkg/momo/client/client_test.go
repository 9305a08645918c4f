package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

func collectionProduct() *ProductConfig {
	return &ProductConfig{SubscriptionKey: "coll-key", UserID: "user", APIKey: "key"}
}

func disbursementProduct() *ProductConfig {
	return &ProductConfig{SubscriptionKey: "disb-key", UserID: "user", APIKey: "key"}
}

func TestNew_CollectionOnly(t *testing.T) {
	c, err := New(&Config{Collection: collectionProduct()})
	require.NoError(t, err)

	assert.NotNil(t, c.Collections)
	assert.Nil(t, c.Disbursements)
	// Provisioning rides on the collection subscription key.
	assert.NotNil(t, c.Users)
}

func TestNew_DisbursementOnly(t *testing.T) {
	c, err := New(&Config{Disbursement: disbursementProduct()})
	require.NoError(t, err)

	assert.Nil(t, c.Collections)
	assert.NotNil(t, c.Disbursements)
	assert.NotNil(t, c.Users)
}

func TestNew_BothProducts(t *testing.T) {
	c, err := New(&Config{
		Collection:   collectionProduct(),
		Disbursement: disbursementProduct(),
	})
	require.NoError(t, err)

	assert.NotNil(t, c.Collections)
	assert.NotNil(t, c.Disbursements)
	assert.NotNil(t, c.Users)
}

func TestNew_NoProductConfigured(t *testing.T) {
	_, err := New(&Config{})
	require.Error(t, err)
	assert.True(t, momoerrors.Is(err, momoerrors.CategoryConfiguration))
}

func TestNew_InvalidProductConfig(t *testing.T) {
	_, err := New(&Config{Collection: &ProductConfig{}})
	require.Error(t, err)
	assert.True(t, momoerrors.Is(err, momoerrors.CategoryConfiguration))
}
