package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"excel-interviewer/internal/bank"
	"excel-interviewer/internal/cache"
	"excel-interviewer/internal/config"
	"excel-interviewer/internal/llm"
	"excel-interviewer/internal/logger"
	"excel-interviewer/internal/repository"
	"excel-interviewer/internal/service"
	"excel-interviewer/internal/store"
	"excel-interviewer/internal/transport/rest"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zl, err := logger.New(os.Getenv("LOG_JSON") == "true", os.Getenv("LOG_DEBUG") == "true")
	if err != nil {
		log.Fatal("building logger:", err)
	}
	defer zl.Sync()

	ctx := context.Background()

	aiConfig := config.DefaultAIConfig()
	interviewConfig := config.DefaultInterviewConfig()

	if aiConfig.IsEnabled() {
		zl.Info("ai provider configured",
			zap.String("eval_model", aiConfig.EvalModel),
			zap.String("feedback_model", aiConfig.FeedbackModel))
	} else {
		zl.Warn("GEMINI_API_KEY not set, every evaluation will use fallback scoring")
	}

	// Mongo-backed question catalog, or the built-in catalog in memory when
	// no MONGO_URI is provided.
	var questionRepo repository.QuestionRepo
	if mongoURI := os.Getenv("MONGO_URI"); mongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			zl.Fatal("connecting to mongodb", zap.Error(err))
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			zl.Fatal("pinging mongodb", zap.Error(err))
		}
		zl.Info("connected to mongodb")

		questionRepo = repository.NewMongoQuestionRepo(mongoClient.Database(databaseName()))
	} else {
		zl.Warn("MONGO_URI not set, using built-in question catalog in memory")
		questionRepo = repository.NewMemoryQuestionRepo(bank.Catalog(), time.Now().UnixNano())
	}

	// Redis for session snapshots and the evaluation cache, with bounded
	// in-process fallbacks.
	var sessionStore store.SessionStore
	var evalCache cache.EvaluationCache
	if redisAddr := redisAddress(); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			zl.Fatal("pinging redis", zap.Error(err))
		}
		zl.Info("connected to redis")

		sessionStore = store.NewRedisSessionStore(rdb)
		evalCache = cache.NewRedisEvaluationCache(rdb, interviewConfig.EvalCacheTTL)
	} else {
		zl.Warn("REDIS_URI not set, sessions and evaluation cache are in-process only")
		sessionStore = store.NewMemorySessionStore()
		evalCache = cache.NewMemoryEvaluationCache(1024, interviewConfig.EvalCacheTTL)
	}

	provider := llm.NewGeminiClient(aiConfig, zl)

	evaluatorSvc := service.NewEvaluatorService(provider, evalCache, questionRepo, zl)
	selectorSvc := service.NewSelectorService(questionRepo, zl)
	assessmentSvc := service.NewAssessmentService(provider, zl)
	interviewSvc := service.NewInterviewService(sessionStore, evaluatorSvc, selectorSvc, assessmentSvc, interviewConfig, zl)

	router := rest.NewRouter(&rest.Container{
		InterviewService: interviewSvc,
		EvaluatorService: evaluatorSvc,
		Questions:        questionRepo,
		Logger:           zl,
		RateLimit:        envInt("RATE_LIMIT_PER_MIN", 100),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("listen and serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("forced shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}

func databaseName() string {
	if name := os.Getenv("MONGO_DB"); name != "" {
		return name
	}
	return "excel_interviewer"
}

func redisAddress() string {
	addr := os.Getenv("REDIS_URI")
	if len(addr) > 8 && addr[:8] == "redis://" {
		addr = addr[8:]
	}
	return addr
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
