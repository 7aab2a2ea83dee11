package env

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Env     string
	GinMode string
	Port    string

	DBURL         string
	DBName        string
	RedisAddr     string
	RedisPassword string

	AdminAPIKey        string
	CORSOrigins        []string
	RateLimitPerSecond float64
	MaxUploadBytes     int64

	// face recognition
	MatchThreshold    float64
	DescriptorSize    int
	BiometricBackend  string
	DlibModelsDir     string
	CascadePath       string
	YuNetModelPath    string
	SFaceModelPath    string
	UploadTempDir     string
	BackfillBatchSize int
	QueueConcurrency  int

	FileStore              string
	AzureAccountName       string
	AzureAccountKey        string
	AzureContainerName     string
	MinioEndpoint          string
	MinioAccessKey         string
	MinioSecretKey         string
	MinioBucket            string
	MinioUseSSL            bool
	ResendAPIKey           string
	ResendDefaultEmail     string
	SiteName               string
	SendRegistrationEmails bool
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when key is unset. A value that is set but
// does not parse is an error rather than a silent fallback.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer - %q", key, valueStr)
	}
	return value, nil
}

// getEnvAsFloat rejects values that do not parse and the non-finite values
// strconv accepts (NaN, Inf).
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%s must be a finite number - %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(valueStr))
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean - %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	list := []string{}
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// Load reads the configuration from the environment, filling in defaults.
func Load() (*Config, error) {
	ginMode := getEnv("GIN_MODE", "debug")
	if ginMode != "debug" && ginMode != "release" && ginMode != "test" {
		return nil, fmt.Errorf("invalid gin mode used - %s", ginMode)
	}

	var parseErrs []error
	intEnv := func(key string, defaultValue int) int {
		value, err := getEnvAsInt(key, defaultValue)
		parseErrs = append(parseErrs, err)
		return value
	}
	floatEnv := func(key string, defaultValue float64) float64 {
		value, err := getEnvAsFloat(key, defaultValue)
		parseErrs = append(parseErrs, err)
		return value
	}
	boolEnv := func(key string, defaultValue bool) bool {
		value, err := getEnvAsBool(key, defaultValue)
		parseErrs = append(parseErrs, err)
		return value
	}

	threshold, err := getEnvAsFloat("FACE_MATCH_THRESHOLD", 0.5)
	if err != nil {
		return nil, err
	}
	if threshold <= 0 {
		return nil, errors.New("FACE_MATCH_THRESHOLD must be a positive number")
	}

	descriptorSize, err := getEnvAsInt("FACE_DESCRIPTOR_SIZE", 128)
	if err != nil {
		return nil, err
	}
	if descriptorSize <= 0 {
		return nil, errors.New("FACE_DESCRIPTOR_SIZE must be a positive integer")
	}

	backend := strings.ToLower(getEnv("BIOMETRIC_BACKEND", "dlib"))
	if backend != "dlib" && backend != "opencv" {
		return nil, fmt.Errorf("unsupported biometric backend - %s", backend)
	}

	fileStore := strings.ToLower(getEnv("FILE_STORE", "minio"))
	if fileStore != "azure" && fileStore != "minio" {
		return nil, fmt.Errorf("unsupported file store - %s", fileStore)
	}

	maxUpload, err := getEnvAsInt("MAX_UPLOAD_BYTES", 15<<20)
	if err != nil {
		return nil, err
	}
	if maxUpload <= 0 {
		return nil, errors.New("MAX_UPLOAD_BYTES must be a positive integer")
	}

	cfg := &Config{
		Env:     getEnv("ENV", "dev"),
		GinMode: ginMode,
		Port:    getEnv("PORT", "8080"),

		DBURL:         os.Getenv("DB_URL"),
		DBName:        getEnv("DB_NAME", "atmsecurity"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		AdminAPIKey:        os.Getenv("ADMIN_API_KEY"),
		CORSOrigins:        getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitPerSecond: floatEnv("RATE_LIMIT_PER_SECOND", 25),
		MaxUploadBytes:     int64(maxUpload),

		MatchThreshold:    threshold,
		DescriptorSize:    descriptorSize,
		BiometricBackend:  backend,
		DlibModelsDir:     getEnv("DLIB_MODELS_DIR", "./models/dlib"),
		CascadePath:       os.Getenv("OPENCV_CASCADE_PATH"),
		YuNetModelPath:    os.Getenv("YUNET_MODEL_PATH"),
		SFaceModelPath:    os.Getenv("SFACE_MODEL_PATH"),
		UploadTempDir:     os.Getenv("UPLOAD_TEMP_DIR"),
		BackfillBatchSize: intEnv("BACKFILL_BATCH_SIZE", 100),
		QueueConcurrency:  intEnv("QUEUE_CONCURRENCY", 4),

		FileStore:              fileStore,
		AzureAccountName:       os.Getenv("AZURE_STORAGE_ACCOUNT_NAME"),
		AzureAccountKey:        os.Getenv("AZURE_STORAGE_ACCOUNT_KEY"),
		AzureContainerName:     os.Getenv("AZURE_CONTAINER_NAME"),
		MinioEndpoint:          getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey:         os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:         os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:            getEnv("MINIO_BUCKET", "reference-faces"),
		MinioUseSSL:            boolEnv("MINIO_USE_SSL", false),
		ResendAPIKey:           os.Getenv("RESEND_API_KEY"),
		ResendDefaultEmail:     os.Getenv("RESEND_DEFAULT_EMAIL"),
		SiteName:               getEnv("SITE_NAME", "ATM Security"),
		SendRegistrationEmails: boolEnv("SEND_REGISTRATION_EMAILS", true),
	}
	if err := errors.Join(parseErrs...); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}
