package app

import (
	"fmt"
	"net/http"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/neatway/proclubs-stats-sub000/external/discord"
	"github.com/neatway/proclubs-stats-sub000/external/eafc"
	"github.com/neatway/proclubs-stats-sub000/external/earelay"
	"github.com/neatway/proclubs-stats-sub000/internal/config"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/claim"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/follow"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/user"
	"github.com/neatway/proclubs-stats-sub000/internal/domain/vote"
	"github.com/neatway/proclubs-stats-sub000/internal/infrastructure/repository/memory"
	"github.com/neatway/proclubs-stats-sub000/internal/infrastructure/repository/postgres"
	"github.com/neatway/proclubs-stats-sub000/internal/interfaces/httpapi"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/cache"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/id"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/logging"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/ratelimit"
	"github.com/neatway/proclubs-stats-sub000/internal/platform/resilience"
	"github.com/neatway/proclubs-stats-sub000/internal/usecase"
)

type repositories struct {
	users    user.Repository
	sessions user.SessionRepository
	claims   claim.Repository
	votes    vote.Repository
	follows  follow.Repository
	close    func()
}

// NewHTTPServer wires configuration into a ready-to-listen API server.
// The returned cleanup closes the database pool and must be called
// after the server shuts down.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	statsClient, err := buildStatsClient(cfg, logger)
	if err != nil {
		repos.close()
		return nil, nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	oauthClient := discord.NewClient(discord.ClientConfig{
		ClientID:     cfg.DiscordClientID,
		ClientSecret: cfg.DiscordClientSecret,
		RedirectURI:  cfg.DiscordRedirectURI,
		Timeout:      cfg.DiscordTimeout,
		Logger:       logger,
	})

	ids := id.NewRandomGenerator()

	clubSvc := usecase.NewClubService(statsClient, cacheStore)
	playerSvc := usecase.NewPlayerService(statsClient, cacheStore)
	authSvc := usecase.NewAuthService(repos.users, repos.sessions, oauthClient, ids, cfg.SessionTTL)
	claimSvc := usecase.NewClaimService(repos.claims, statsClient, ids)
	voteSvc := usecase.NewVoteService(repos.votes, ids)
	followSvc := usecase.NewFollowService(repos.follows, ids)
	warmSvc := usecase.NewWarmFollowsService(repos.follows, clubSvc, cfg.WarmFollowsWorkers, logger)

	handler := httpapi.NewHandler(clubSvc, playerSvc, authSvc, claimSvc, voteSvc, followSvc, warmSvc, logger)
	limiter := ratelimit.NewLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	router := httpapi.NewRouter(handler, authSvc, logger, limiter, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		repos.close()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, repos.close, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("db url empty, using in-memory repositories")
		return repositories{
			users:    memory.NewUserRepository(),
			sessions: memory.NewSessionRepository(),
			claims:   memory.NewClaimRepository(),
			votes:    memory.NewVoteRepository(),
			follows:  memory.NewFollowRepository(),
			close:    func() {},
		}, nil
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("connect postgres: %w", err)
	}

	logger.Info("postgres connected", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		users:    postgres.NewUserRepository(db),
		sessions: postgres.NewSessionRepository(db),
		claims:   postgres.NewClaimRepository(db),
		votes:    postgres.NewVoteRepository(db),
		follows:  postgres.NewFollowRepository(db),
		close:    func() { _ = db.Close() },
	}, nil
}

func buildStatsClient(cfg config.Config, logger *logging.Logger) (*eafc.Client, error) {
	var transport eafc.Transport
	if strings.TrimSpace(cfg.EARelayURL) != "" {
		relay, err := earelay.NewClient(earelay.ClientConfig{
			RelayURL: cfg.EARelayURL,
			Timeout:  cfg.EATimeout,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("build relay transport: %w", err)
		}
		transport = relay
		logger.Info("stats client using relay transport", "relay_url", cfg.EARelayURL)
	}

	return eafc.NewClient(eafc.ClientConfig{
		Transport: transport,
		BaseURL:   cfg.EABaseURL,
		Timeout:   cfg.EATimeout,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.EACircuitEnabled,
			FailureThreshold: cfg.EACircuitFailureCount,
			OpenTimeout:      cfg.EACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.EACircuitHalfOpenMaxReq,
		},
	}), nil
}
