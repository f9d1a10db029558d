package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

// maxSoilLookupTimeout caps the outbound soil-pH call.
const maxSoilLookupTimeout = 5 * time.Second

type Config struct {
	AppEnv string
	Port   string

	JWTSecret   string
	DatabaseURL string
	CORSOrigins []string

	// reference data
	SoilDataPath      string
	CropDataPath      string
	PriceDataPath     string
	DiseaseLabelsPath string

	// soil lookup
	SoilGridsURL      string
	SoilLookupTimeout time.Duration

	// matcher
	MatchMode      string
	MatchTolerance float64
	MatchTopK      int
	MatchFallback  bool

	// translation
	TranslateURL        string
	TranslateAPIKey     string
	RedisAddr           string
	RedisPassword       string
	TranslationCacheTTL time.Duration

	// voice
	TTSURL        string
	OpenAIKey     string
	OpenAIBaseURL string
	STTRatePerSec float64
	FFmpegBin     string

	// disease detection
	ClassifierURL string
	UploadDir     string

	// R2 object storage (optional)
	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string
}

// Load reads .env (outside production) and the process environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigins: getList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		SoilDataPath:      getEnv("SOIL_DATA_PATH", "data/soil_data.json"),
		CropDataPath:      getEnv("CROP_DATA_PATH", "data/crop_data.csv"),
		PriceDataPath:     os.Getenv("PRICE_DATA_PATH"),
		DiseaseLabelsPath: getEnv("DISEASE_LABELS_PATH", "data/disease_labels.json"),

		SoilGridsURL: getEnv("SOILGRIDS_URL", "https://rest.soilgrids.org/query"),
		MatchMode:    getEnv("MATCH_MODE", "range"),

		TranslateURL:    os.Getenv("TRANSLATE_URL"),
		TranslateAPIKey: os.Getenv("TRANSLATE_API_KEY"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),

		TTSURL:        getEnv("TTS_URL", "https://translate.google.com/translate_tts"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		FFmpegBin:     getEnv("FFMPEG_BIN", "ffmpeg"),

		ClassifierURL: os.Getenv("CLASSIFIER_URL"),
		UploadDir:     getEnv("UPLOAD_DIR", "static/uploads"),

		R2Endpoint:      os.Getenv("R2_ENDPOINT"),
		R2AccessKey:     os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:     os.Getenv("R2_SECRET_KEY"),
		R2Bucket:        os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL: os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	var err error
	if cfg.SoilLookupTimeout, err = getDuration("SOIL_LOOKUP_TIMEOUT", maxSoilLookupTimeout); err != nil {
		return nil, err
	}
	if cfg.SoilLookupTimeout <= 0 || cfg.SoilLookupTimeout > maxSoilLookupTimeout {
		cfg.SoilLookupTimeout = maxSoilLookupTimeout
	}
	if cfg.MatchTolerance, err = getFloat("MATCH_TOLERANCE", 0.5); err != nil {
		return nil, err
	}
	if cfg.MatchTopK, err = getInt("MATCH_TOP_K", 3); err != nil {
		return nil, err
	}
	if cfg.MatchFallback, err = getBool("MATCH_FALLBACK", true); err != nil {
		return nil, err
	}
	if cfg.TranslationCacheTTL, err = getDuration("TRANSLATION_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.STTRatePerSec, err = getFloat("STT_RATE_PER_SEC", 3); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadReferencePaths reads only the reference data locations. It skips the
// validation Load applies to secrets and service settings.
func LoadReferencePaths() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
	return &Config{
		SoilDataPath:      getEnv("SOIL_DATA_PATH", "data/soil_data.json"),
		CropDataPath:      getEnv("CROP_DATA_PATH", "data/crop_data.csv"),
		PriceDataPath:     os.Getenv("PRICE_DATA_PATH"),
		DiseaseLabelsPath: getEnv("DISEASE_LABELS_PATH", "data/disease_labels.json"),
	}
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return eris.New("missing env var: JWT_SECRET")
	}
	switch c.MatchMode {
	case "range", "tolerance":
	default:
		return eris.Errorf("MATCH_MODE must be range or tolerance, got %q", c.MatchMode)
	}
	if c.MatchTolerance < 0 {
		return eris.Errorf("MATCH_TOLERANCE must be non-negative, got %v", c.MatchTolerance)
	}
	return nil
}

// R2Enabled reports whether every R2 setting needed for uploads is present.
func (c *Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, eris.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s", key)
	}
	return v, nil
}
