package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	middleware "github.com/rgdevment/scam-shield/internal/platform/http/middleware"

	"github.com/rgdevment/scam-shield/internal/engine"
	"github.com/rgdevment/scam-shield/internal/engine/predict"
	"github.com/rgdevment/scam-shield/internal/platform/cache"
	httpHandler "github.com/rgdevment/scam-shield/internal/platform/http"
	"github.com/rgdevment/scam-shield/internal/platform/storage/scylla"
	"github.com/rgdevment/scam-shield/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	apiKey := os.Getenv("API_MASTER_KEY")
	if apiKey == "" {
		log.Fatal("❌ API_MASTER_KEY is required in .env")
	}

	scyllaHost := os.Getenv("SCYLLA_HOST")
	keyspace := os.Getenv("SCYLLA_KEYSPACE")
	redisAddr := os.Getenv("REDIS_ADDR")
	port := os.Getenv("HTTP_PORT")

	if scyllaHost == "" {
		scyllaHost = "localhost"
	}
	if port == "" {
		port = ":8080"
	}

	log.Println("🛡️  Starting ScamShield risk engine...")

	cfg := engine.DefaultConfig()
	if path := os.Getenv("ENGINE_CONFIG"); path != "" {
		loaded, err := engine.LoadConfig(path)
		if err != nil {
			log.Fatalf("❌ Error loading engine config: %v", err)
		}
		cfg = loaded
	}

	eng, err := engine.New(cfg, loadModel("CALL_MODEL_PATH"), loadModel("SMS_MODEL_PATH"))
	if err != nil {
		log.Fatalf("❌ Error building risk engine: %v", err)
	}

	session, err := scylla.Connect(keyspace, scyllaHost)
	if err != nil {
		log.Fatalf("❌ Error connecting to ScyllaDB: %v", err)
	}
	defer session.Close()

	repo := scylla.NewScyllaRepository(session)

	var phoneCache service.Cache
	if redisAddr != "" {
		client := cache.NewRedisClient(cache.RedisConfig{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		phoneCache = cache.NewRedisCache(client)
		log.Println("✅ Phone risk cache enabled (Redis)")
	}

	svc := service.NewAnalysisService(eng, repo, phoneCache)

	handler := httpHandler.NewHandler(svc)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.APIKeyAuth(apiKey))

	handler.RegisterRoutes(r)

	log.Printf("🚀 Server listening on http://localhost%s", port)
	if err := http.ListenAndServe(port, r); err != nil {
		log.Fatalf("❌ HTTP server error: %v", err)
	}
}

// loadModel reads an optional fitted model. An unset path means no
// predictor, which is a valid configuration: the engine degrades to its
// neutral probability.
func loadModel(envVar string) predict.Predictor {
	path := os.Getenv(envVar)
	if path == "" {
		return nil
	}
	model, err := predict.LoadLogisticModel(path)
	if err != nil {
		log.Fatalf("❌ Error loading model from %s: %v", path, err)
	}
	log.Printf("✅ Loaded model from %s", path)
	return model
}
