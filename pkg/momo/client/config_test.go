package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	momoerrors "github.com/wirepay/momo-go/pkg/momo/errors"
)

func TestConfigBuild_Defaults(t *testing.T) {
	merged, err := (&Config{}).build()
	require.NoError(t, err)

	assert.Equal(t, "https://sandbox.momodeveloper.mtn.com", merged.BaseURL)
	assert.Equal(t, "sandbox", merged.TargetEnvironment)
	assert.Equal(t, 30*time.Second, merged.Timeout)
}

func TestConfigBuild_CallerValuesWin(t *testing.T) {
	cfg := &Config{
		BaseURL:           "https://proxy.example.com",
		TargetEnvironment: "mtnuganda",
		Timeout:           5 * time.Second,
	}
	merged, err := cfg.build()
	require.NoError(t, err)

	assert.Equal(t, "https://proxy.example.com", merged.BaseURL)
	assert.Equal(t, "mtnuganda", merged.TargetEnvironment)
	assert.Equal(t, 5*time.Second, merged.Timeout)
}

func TestConfigBuild_DoesNotMutateOriginal(t *testing.T) {
	cfg := &Config{}
	_, err := cfg.build()
	require.NoError(t, err)

	assert.Empty(t, cfg.BaseURL)
	assert.Zero(t, cfg.Timeout)
}

func TestConfigBuild_RejectsInvalidURL(t *testing.T) {
	_, err := (&Config{BaseURL: "not a url"}).build()
	require.Error(t, err)
	assert.True(t, momoerrors.Is(err, momoerrors.CategoryConfiguration))
}

func TestConfig_CallbackURLPrecedence(t *testing.T) {
	cfg := &Config{CallbackURL: "https://global.example.com/cb"}

	assert.Equal(t, "https://global.example.com/cb", cfg.callbackURL(nil))
	assert.Equal(t, "https://global.example.com/cb", cfg.callbackURL(&ProductConfig{}))
	assert.Equal(t, "https://product.example.com/cb",
		cfg.callbackURL(&ProductConfig{CallbackURL: "https://product.example.com/cb"}))
}

func TestConfig_SubscriptionKeyFallback(t *testing.T) {
	assert.Empty(t, (&Config{}).subscriptionKey())

	cfg := &Config{Disbursement: &ProductConfig{SubscriptionKey: "disb-key"}}
	assert.Equal(t, "disb-key", cfg.subscriptionKey())

	cfg.Collection = &ProductConfig{SubscriptionKey: "coll-key"}
	assert.Equal(t, "coll-key", cfg.subscriptionKey())
}
