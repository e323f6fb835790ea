package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/saraye/api"
	"github.com/Domenick1991/saraye/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const swaggerFile = "saraye.swagger.json"

// Registrar mounts a group of REST routes.
type Registrar interface {
	Register(router *gin.RouterGroup)
}

// Probe reports whether a backing dependency is reachable.
type Probe func(ctx context.Context) error

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
	health     *health.Server
	healthConn *grpc.ClientConn
	probes     map[string]Probe
	log        logrus.FieldLogger
}

type Options struct {
	Auth     api.Authenticator
	Handlers []Registrar
	Probes   map[string]Probe
	// ProbeInterval defaults to 15s.
	ProbeInterval time.Duration
}

// Run starts the gRPC health server and the HTTP server (REST API, /healthz
// through grpc-gateway, swagger) and blocks until ctx is canceled or a server
// fails.
func Run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, opts Options) error {
	s, err := newServers(cfg, log, opts)
	if err != nil {
		return err
	}
	defer s.healthConn.Close()

	errCh := make(chan error, 2)

	lis, err := net.Listen("tcp", cfg.GRPC.Address)
	if err != nil {
		return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
	}
	go func() { errCh <- s.grpcServer.Serve(lis) }()

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	interval := opts.ProbeInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	go s.watch(ctx, interval)

	log.WithFields(logrus.Fields{"http": cfg.HTTP.Address, "grpc": cfg.GRPC.Address}).Info("servers started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down servers")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.grpcServer.GracefulStop()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServers(cfg *config.Config, log logrus.FieldLogger, opts Options) (*Servers, error) {
	grpcSrv := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)

	conn, err := grpc.NewClient(cfg.GRPC.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial gRPC health endpoint: %w", err)
	}
	gateway := runtime.NewServeMux(runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)))

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           newRouter(cfg.HTTP, log, gateway, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Servers{
		grpcServer: grpcSrv,
		httpServer: httpSrv,
		health:     healthSrv,
		healthConn: conn,
		probes:     opts.Probes,
		log:        log,
	}, nil
}

func newRouter(cfg config.HTTPConfig, log logrus.FieldLogger, gateway http.Handler, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), cors.New(corsConfig(cfg.AllowOrigins)), api.RequestLogger(log))
	_ = router.SetTrustedProxies(nil)

	router.GET("/healthz", gin.WrapH(gateway))

	if cfg.SwaggerDir != "" {
		router.Static("/swagger", cfg.SwaggerDir)
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerFile))))
	}

	group := router.Group("/api")
	if opts.Auth != nil {
		group.Use(api.Authenticate(opts.Auth))
	}
	for _, h := range opts.Handlers {
		h.Register(group)
	}
	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AddAllowHeaders("Authorization")
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

// watch flips the overall health status whenever a probe starts or stops
// failing.
func (s *Servers) watch(ctx context.Context, interval time.Duration) {
	s.check(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *Servers) check(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	for name, probe := range s.probes {
		probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := probe(probeCtx)
		cancel()
		if err != nil {
			s.log.WithError(err).WithField("dependency", name).Warn("health probe failed")
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.health.SetServingStatus("", status)
}
