package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aurachat/aura/backend/internal/analysis/emotion"
	"github.com/aurachat/aura/backend/internal/analysis/intent"
	"github.com/aurachat/aura/backend/internal/auth"
	"github.com/aurachat/aura/backend/internal/config"
	"github.com/aurachat/aura/backend/internal/embedding"
	"github.com/aurachat/aura/backend/internal/handler"
	"github.com/aurachat/aura/backend/internal/model/catalog"
	"github.com/aurachat/aura/backend/internal/service/ai"
	"github.com/aurachat/aura/backend/internal/service/chat"
	"github.com/aurachat/aura/backend/internal/service/recommend"
	"github.com/aurachat/aura/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	st, err := store.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	cat, err := catalog.LoadCSV(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("failed to load movie catalog from %s: %v", cfg.Catalog.Path, err)
	}
	log.Printf("loaded %d catalog entries across %d mood buckets", cat.Len(), len(cat.Moods()))

	embedder := newEmbedder(ctx, cfg.Embedding)

	classifier, err := intent.NewClassifier(ctx, embedder, cfg.Chat.IntentThreshold)
	if err != nil {
		log.Fatalf("failed to initialize intent classifier: %v", err)
	}

	analyzer, err := emotion.NewAnalyzer(ctx, embedder)
	if err != nil {
		log.Fatalf("failed to initialize emotion analyzer: %v", err)
	}

	selector, err := recommend.NewSelector(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.Fatalf("failed to initialize recommender: %v", err)
	}

	// Generation is optional; without credentials the mood and movie
	// paths still work and the open-ended path reports unavailable.
	var generator chat.Generator
	if cfg.AI.Enabled() {
		aiSvc, err := ai.NewService(ctx, cfg.AI, cfg.Chat.HistoryLimit)
		if err != nil {
			log.Printf("warning: failed to initialize generation service: %v", err)
			log.Println("continuing without open-ended replies")
		} else {
			generator = aiSvc
			log.Println("generation service initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping generation service")
	}

	manager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to initialize auth: %v", err)
	}

	chatSvc := chat.NewService(st, classifier, analyzer, generator, selector, cfg.Chat)
	router := handler.NewRouter(st, manager, chatSvc)

	startServer(ctx, cfg.Server, router)
}

// newEmbedder picks the embedding backend by configuration. The static
// backend keeps the service usable for local development without any
// provider credentials.
func newEmbedder(ctx context.Context, cfg config.EmbeddingConfig) embedding.Embedder {
	switch cfg.Provider {
	case config.EmbeddingProviderArk:
		if cfg.Enabled() {
			embedder, err := embedding.NewArkEmbedder(ctx, cfg)
			if err == nil {
				log.Println("using ark embedding backend")
				return embedder
			}
			log.Printf("warning: failed to initialize ark embeddings: %v", err)
		} else {
			log.Println("warning: ark embedding credentials incomplete")
		}
	case config.EmbeddingProviderOpenAI:
		if cfg.Enabled() {
			embedder, err := embedding.NewOpenAIEmbedder(cfg)
			if err == nil {
				log.Println("using openai embedding backend")
				return embedder
			}
			log.Printf("warning: failed to initialize openai embeddings: %v", err)
		} else {
			log.Println("warning: OPENAI_API_KEY not set")
		}
	case config.EmbeddingProviderStatic:
		log.Println("using static embedding backend")
		return embedding.NewStaticEmbedder(0)
	}

	log.Println("falling back to static embeddings; intent routing will only match exact phrasing")
	return embedding.NewStaticEmbedder(0)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("AURA backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
