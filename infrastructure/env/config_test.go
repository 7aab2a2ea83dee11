package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		shouldSet    bool
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "ATM_TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			shouldSet:    true,
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "ATM_TEST_VAR_MISSING",
			defaultValue: "default",
			want:         "default",
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "ATM_TEST_VAR_EMPTY",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    true,
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}
			if got := getEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     float64
		wantErr  bool
	}{
		{name: "parses a float", envValue: "0.42", want: 0.42},
		{name: "parses an integer", envValue: "1", want: 1},
		{name: "trims whitespace", envValue: " 0.3 ", want: 0.3},
		{name: "uses the default when empty", envValue: "", want: 0.5},
		{name: "rejects garbage", envValue: "abc", wantErr: true},
		{name: "rejects a trailing suffix", envValue: "0.45x", wantErr: true},
		{name: "rejects NaN", envValue: "NaN", wantErr: true},
		{name: "rejects infinity", envValue: "Inf", wantErr: true},
		{name: "rejects negative infinity", envValue: "-Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ATM_TEST_FLOAT", tt.envValue)
			got, err := getEnvAsFloat("ATM_TEST_FLOAT", 0.5)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestGetEnvAsIntAndBool(t *testing.T) {
	t.Setenv("ATM_TEST_INT", "12")
	value, err := getEnvAsInt("ATM_TEST_INT", 4)
	require.NoError(t, err)
	assert.Equal(t, 12, value)

	t.Setenv("ATM_TEST_INT", "12abc")
	_, err = getEnvAsInt("ATM_TEST_INT", 4)
	assert.Error(t, err)

	t.Setenv("ATM_TEST_BOOL", "nope")
	_, err = getEnvAsBool("ATM_TEST_BOOL", true)
	assert.Error(t, err)

	enabled, err := getEnvAsBool("ATM_TEST_BOOL_MISSING", true)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("ATM_TEST_LIST", " https://a.example , ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, getEnvAsList("ATM_TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, getEnvAsList("ATM_TEST_LIST_MISSING", []string{"x"}))
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GIN_MODE", "FACE_MATCH_THRESHOLD", "FACE_DESCRIPTOR_SIZE", "BIOMETRIC_BACKEND", "FILE_STORE", "MAX_UPLOAD_BYTES", "RATE_LIMIT_PER_SECOND", "BACKFILL_BATCH_SIZE", "QUEUE_CONCURRENCY", "MINIO_USE_SSL", "SEND_REGISTRATION_EMAILS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.MatchThreshold)
	assert.Equal(t, 128, cfg.DescriptorSize)
	assert.Equal(t, "dlib", cfg.BiometricBackend)
	assert.Equal(t, "minio", cfg.FileStore)
	assert.Equal(t, int64(15<<20), cfg.MaxUploadBytes)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero threshold", key: "FACE_MATCH_THRESHOLD", value: "0"},
		{name: "negative threshold", key: "FACE_MATCH_THRESHOLD", value: "-0.2"},
		{name: "malformed threshold", key: "FACE_MATCH_THRESHOLD", value: "0.45x"},
		{name: "NaN threshold", key: "FACE_MATCH_THRESHOLD", value: "NaN"},
		{name: "infinite threshold", key: "FACE_MATCH_THRESHOLD", value: "Inf"},
		{name: "malformed descriptor size", key: "FACE_DESCRIPTOR_SIZE", value: "128d"},
		{name: "malformed rate limit", key: "RATE_LIMIT_PER_SECOND", value: "fast"},
		{name: "malformed queue concurrency", key: "QUEUE_CONCURRENCY", value: "four"},
		{name: "malformed email toggle", key: "SEND_REGISTRATION_EMAILS", value: "maybe"},
		{name: "negative descriptor size", key: "FACE_DESCRIPTOR_SIZE", value: "-1"},
		{name: "unknown backend", key: "BIOMETRIC_BACKEND", value: "tensorflow"},
		{name: "unknown file store", key: "FILE_STORE", value: "ftp"},
		{name: "unknown gin mode", key: "GIN_MODE", value: "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadCustomThreshold(t *testing.T) {
	t.Setenv("FACE_MATCH_THRESHOLD", "0.6")
	t.Setenv("BIOMETRIC_BACKEND", "OpenCV")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.MatchThreshold)
	assert.Equal(t, "opencv", cfg.BiometricBackend)
}
