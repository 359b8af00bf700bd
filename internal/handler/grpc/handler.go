package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/nearmate-api/internal/logger"
	"github.com/MKhiriev/nearmate-api/internal/service"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// AuthServiceName is the service name reported by the health endpoint for
// the authentication API.
const AuthServiceName = "nearmate.auth.v1"

// traceIDKey is the incoming metadata key carrying a caller-supplied trace id.
const traceIDKey = "x-trace-id"

// Pinger reports whether a backing dependency answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler is the root gRPC transport handler.
//
// It exposes the standard grpc.health.v1.Health service. The authentication
// API is reported as SERVING only while the token signing keys are usable
// and the database answers.
type Handler struct {
	// services provides access to all application business operations.
	services *service.Services

	// database is pinged on Refresh; nil skips the check.
	database Pinger

	health *health.Server

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, database Pinger, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		database: database,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Init builds a gRPC server with the logging interceptor installed and the
// health service registered.
func (h *Handler) Init(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(h.withLogging))

	server := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(server, h.health)

	return server
}

// Refresh probes the token keys and the database and publishes the result:
// the overall status is always SERVING, the auth service follows the probes.
func (h *Handler) Refresh(ctx context.Context) {
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	if err := h.probe(ctx); err != nil {
		h.logger.Err(err).Msg("auth service marked NOT_SERVING")
		h.health.SetServingStatus(AuthServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	h.health.SetServingStatus(AuthServiceName, healthpb.HealthCheckResponse_SERVING)
}

func (h *Handler) probe(ctx context.Context) error {
	if err := h.services.TokenService.CheckKeys(ctx); err != nil {
		return fmt.Errorf("token keys unusable: %w", err)
	}
	if h.database != nil {
		if err := h.database.Ping(ctx); err != nil {
			return fmt.Errorf("database unreachable: %w", err)
		}
	}
	return nil
}

// Shutdown marks every service NOT_SERVING so that watchers drain before the
// server stops.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// withLogging attaches a request-scoped logger carrying trace_id and method
// to the context and logs every call with its duration and status code.
func (h *Handler) withLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 {
			traceID = values[0]
		}
	}
	if traceID == "" || len(traceID) > 128 {
		traceID = uuid.NewString()
	}

	log := h.logger.WithField("trace_id", traceID).WithField("method", info.FullMethod)
	ctx = log.WithContext(ctx)

	start := time.Now()
	resp, err := handler(ctx, req)

	event := log.Info()
	if err != nil {
		event = log.Warn().Err(err)
	}
	event.
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC request")

	return resp, err
}
