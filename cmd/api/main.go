package main

import (
	"context"
	"time"

	"yieldx/internal/auth"
	"yieldx/internal/config"
	"yieldx/internal/core"
	"yieldx/internal/crop"
	"yieldx/internal/db"
	"yieldx/internal/disease"
	"yieldx/internal/i18n"
	"yieldx/internal/recommend"
	"yieldx/internal/reference"
	"yieldx/internal/router"
	"yieldx/internal/soil"
	"yieldx/internal/storage"
	"yieldx/internal/voice"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const staticUploadsURL = "/static/uploads"

func main() {

	// ───────────────────────── LOGGER ─────────────────────────
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("config load failed", zap.Error(err))
	}
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// ───────────────────────── REFERENCE DATA ─────────────────────────
	data, err := reference.Load(cfg)
	if err != nil {
		zap.L().Fatal("reference data load failed", zap.Error(err))
	}

	// ───────────────────────── DB ─────────────────────────
	var (
		farmerRepo  auth.FarmerRepository      = auth.NewInMemoryFarmerRepository()
		historyRepo recommend.HistoryRepository = recommend.NewInMemoryHistoryRepository()
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			zap.L().Fatal("postgres connect failed", zap.Error(err))
		}
		defer pool.Close()

		farmerRepo = auth.NewPostgresFarmerRepository(pool)
		historyRepo = recommend.NewPostgresHistoryRepository(pool)
	} else {
		zap.L().Warn("DATABASE_URL not set, farmers and history are kept in memory")
	}

	// ───────────────────────── TRANSLATION ─────────────────────────
	var translator i18n.Translator
	if cfg.TranslateURL != "" {
		translator = i18n.NewHTTPTranslator(cfg.TranslateURL, cfg.TranslateAPIKey, 10*time.Second)

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
			})
			defer rdb.Close()

			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			if err := rdb.Ping(pingCtx).Err(); err != nil {
				zap.L().Warn("redis unavailable, translations are not cached", zap.Error(err))
			} else {
				translator = i18n.NewCachedTranslator(translator, i18n.NewRedisCache(rdb, cfg.TranslationCacheTTL))
			}
			cancel()
		}
	} else {
		zap.L().Warn("TRANSLATE_URL not set, responses stay in English")
	}
	localizer := i18n.NewLocalizer(translator)

	// ───────────────────────── STORAGE ─────────────────────────
	var objects storage.ObjectStore
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Client(ctx, storage.R2Options{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			zap.L().Fatal("r2 init failed", zap.Error(err))
		}
		objects = r2
	} else {
		objects = storage.NewLocalStore(cfg.UploadDir, staticUploadsURL)
	}

	// ───────────────────────── AUTH ─────────────────────────
	authService := auth.NewService(farmerRepo)
	var farmers core.FarmerReader = authService

	// ───────────────────────── RECOMMENDATION ─────────────────────────
	resolver := soil.NewResolver(data.Store, soil.NewSoilGridsClient(cfg.SoilGridsURL, cfg.SoilLookupTimeout))
	matcher := crop.NewMatcher(crop.MatcherConfig{
		Mode:      crop.Mode(cfg.MatchMode),
		Tolerance: cfg.MatchTolerance,
		TopK:      cfg.MatchTopK,
		Fallback:  cfg.MatchFallback,
	})

	recommendService := recommend.NewService(recommend.Deps{
		Resolver:  resolver,
		Catalog:   data.Catalog.Records,
		Prices:    data.Prices,
		Matcher:   matcher,
		History:   historyRepo,
		Farmers:   farmers,
		Localizer: localizer,
	})

	// ───────────────────────── DISEASE DETECTION ─────────────────────────
	var classifier disease.Classifier
	if cfg.ClassifierURL != "" {
		classifier = disease.NewHTTPClassifier(cfg.ClassifierURL, 30*time.Second)
	} else {
		zap.L().Warn("CLASSIFIER_URL not set, disease detection reports model not loaded")
	}

	labels, err := disease.LoadLabels(cfg.DiseaseLabelsPath)
	if err != nil {
		zap.L().Warn("disease labels unavailable", zap.Error(err))
	}
	diseaseService := disease.NewService(classifier, labels, objects, localizer)

	// ───────────────────────── VOICE ─────────────────────────
	var transcriber voice.Transcriber
	if cfg.OpenAIKey != "" {
		transcriber = voice.NewWhisperTranscriber(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.STTRatePerSec)
	} else {
		zap.L().Warn("OPENAI_API_KEY not set, voice input is disabled")
	}
	voiceService := voice.NewService(
		voice.NewFFmpegTranscoder(cfg.FFmpegBin),
		transcriber,
		voice.NewHTTPSynthesizer(cfg.TTSURL, 10*time.Second),
		localizer,
	)

	// ───────────────────────── ROUTER ─────────────────────────
	uploadDir := cfg.UploadDir
	if cfg.R2Enabled() {
		uploadDir = ""
	}

	r := router.NewRouter(router.Handlers{
		Auth:      auth.NewHandler(authService),
		Languages: i18n.NewHandler(cfg.AppEnv == "production"),
		Soil:      soil.NewHandler(data.Store),
		Recommend: recommend.NewHandler(recommendService),
		Disease:   disease.NewHandler(diseaseService, localizer),
		Voice:     voice.NewHandler(voiceService, localizer),
	}, router.Options{
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   uploadDir,
	})

	// ───────────────────────── START ─────────────────────────
	zap.L().Info("api listening",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
		zap.String("match_mode", cfg.MatchMode),
		zap.Int("crops", len(data.Catalog.Records)),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
