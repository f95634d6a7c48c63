package main

import (
	"fmt"
	"log"
	"net/http"

	"taskcraft/config"
	"taskcraft/handlers"
	"taskcraft/services"
	"taskcraft/services/completion"
	"taskcraft/services/designer"

	"github.com/gorilla/mux"
)

func main() {
	cfg := config.Load()

	invoker := buildInvoker(cfg)

	sessionService := services.NewSessionService()

	var classifier designer.Classifier
	switch cfg.ClassifierMode {
	case "llm":
		classifier = designer.NewLLMClassifier(invoker, cfg.CompletionTimeout)
	case "pattern":
		classifier = designer.NewPatternClassifier()
	default:
		log.Fatalf("Unknown CLASSIFIER_MODE %q (expected pattern or llm)", cfg.ClassifierMode)
	}

	designerService := designer.NewService(sessionService, invoker, classifier, cfg.CompletionTimeout)
	designerHandler := handlers.NewDesignerHandler(designerService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	designerHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func buildInvoker(cfg *config.Config) completion.Invoker {
	switch cfg.CompletionBackend {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Fatal("ANTHROPIC_API_KEY environment variable is required")
		}
		return completion.NewAnthropicInvoker(cfg.AnthropicAPIKey)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required")
		}
		invoker, err := completion.NewOpenAIInvoker(cfg.OpenAIAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize OpenAI client: %v", err)
		}
		return invoker
	default:
		log.Fatalf("Unknown COMPLETION_BACKEND %q (expected openai or anthropic)", cfg.CompletionBackend)
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
