package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiemonster/pkg/config"
)

type TestConfigDefault struct {
	TestString string        `env:"TEST_STRING_DEFAULT" envDefault:"default_value"`
	TestInt    int           `env:"TEST_INT_DEFAULT" envDefault:"42"`
	TestBool   bool          `env:"TEST_BOOL_DEFAULT" envDefault:"true"`
	TestDur    time.Duration `env:"TEST_DURATION_DEFAULT" envDefault:"5s"`
}

type TestConfigSuccess struct {
	TestString string `env:"TEST_STRING_SUCCESS" envDefault:"default_value"`
	TestInt    int    `env:"TEST_INT_SUCCESS" envDefault:"42"`
	TestBool   bool   `env:"TEST_BOOL_SUCCESS" envDefault:"true"`
}

type TestConfigSingleton struct {
	TestString string `env:"TEST_STRING_SINGLETON" envDefault:"default_value"`
}

type TestConfigPrefixed struct {
	Port int `env:"PORT" envDefault:"3000"`
}

type TestConfigFile struct {
	TestString string `env:"TEST_FILE_STRING"`
	TestInt    int    `env:"TEST_FILE_INT"`
}

type RequiredConfig struct {
	Required string `env:"REQUIRED_VALUE,required"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("TEST_STRING_SUCCESS", "test_value")
	t.Setenv("TEST_INT_SUCCESS", "100")
	t.Setenv("TEST_BOOL_SUCCESS", "false")

	var cfg TestConfigSuccess
	err := config.Load(&cfg)

	require.NoError(t, err, "Load should not return an error with valid environment variables")
	assert.Equal(t, "test_value", cfg.TestString)
	assert.Equal(t, 100, cfg.TestInt)
	assert.False(t, cfg.TestBool)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("TEST_STRING_DEFAULT")
	os.Unsetenv("TEST_INT_DEFAULT")
	os.Unsetenv("TEST_BOOL_DEFAULT")
	os.Unsetenv("TEST_DURATION_DEFAULT")

	var cfg TestConfigDefault
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "default_value", cfg.TestString)
	assert.Equal(t, 42, cfg.TestInt)
	assert.True(t, cfg.TestBool)
	assert.Equal(t, 5*time.Second, cfg.TestDur)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")

	var cfg RequiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_Cached(t *testing.T) {
	t.Setenv("TEST_STRING_SINGLETON", "first_value")

	var first TestConfigSingleton
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_STRING_SINGLETON", "second_value")

	var second TestConfigSingleton
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first_value", second.TestString, "second load must come from cache")

	config.ResetCache()

	var third TestConfigSingleton
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second_value", third.TestString, "reset must force a reparse")
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("ALPHA_PORT", "4000")
	t.Setenv("BETA_PORT", "5000")

	var alpha, beta, plain TestConfigPrefixed
	require.NoError(t, config.Load(&alpha, config.WithPrefix("ALPHA_")))
	require.NoError(t, config.Load(&beta, config.WithPrefix("BETA_")))
	require.NoError(t, config.Load(&plain, config.WithPrefix("GAMMA_")))

	assert.Equal(t, 4000, alpha.Port)
	assert.Equal(t, 5000, beta.Port)
	assert.Equal(t, 3000, plain.Port)
}

func TestLoadEnv(t *testing.T) {
	os.Unsetenv("TEST_FILE_STRING")
	os.Unsetenv("TEST_FILE_INT")
	t.Cleanup(func() {
		os.Unsetenv("TEST_FILE_STRING")
		os.Unsetenv("TEST_FILE_INT")
	})

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg TestConfigFile
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.TestString)
	assert.Equal(t, 7, cfg.TestInt)

	err := config.LoadEnv("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.NoError(t, config.LoadEnv())
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *TestConfigSuccess
	err := config.Load(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("REQUIRED_VALUE")
	assert.Panics(t, func() {
		var cfg RequiredConfig
		config.MustLoad(&cfg)
	})
}
