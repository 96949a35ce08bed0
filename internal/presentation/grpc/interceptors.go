package grpc

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const instrumentationName = "github.com/bibbank/bib/services/channeling-service/internal/presentation/grpc"

// metadataCarrier adapts incoming gRPC metadata to a propagation.TextMapCarrier.
type metadataCarrier metadata.MD

func (c metadataCarrier) Get(key string) string {
	if v := metadata.MD(c).Get(key); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c metadataCarrier) Set(key, value string) {
	metadata.MD(c).Set(key, value)
}

func (c metadataCarrier) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	return keys
}

// tracingInterceptor continues the caller's trace and opens a server span.
func tracingInterceptor() grpclib.UnaryServerInterceptor {
	tracer := otel.Tracer(instrumentationName)

	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			ctx = otel.GetTextMapPropagator().Extract(ctx, metadataCarrier(md))
		}
		ctx, span := tracer.Start(ctx, info.FullMethod,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("rpc.system", "grpc")),
		)
		defer span.End()

		resp, err := handler(ctx, req)
		if err != nil {
			span.SetStatus(otelcodes.Error, status.Convert(err).Message())
		}
		span.SetAttributes(attribute.String("rpc.grpc.status_code", status.Code(err).String()))
		return resp, err
	}
}

// recoveryInterceptor turns handler panics into Internal errors.
func recoveryInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.ErrorContext(ctx, "panic in rpc handler",
					"method", info.FullMethod,
					"panic", r,
					"stack", string(debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// observabilityInterceptor records a request counter and latency histogram
// per method and status code, and logs every call.
func observabilityInterceptor(logger *slog.Logger) (grpclib.UnaryServerInterceptor, error) {
	meter := otel.Meter(instrumentationName)

	requests, err := meter.Int64Counter("channeling.rpc.requests",
		metric.WithDescription("Handled ChannelingService RPCs"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("channeling.rpc.duration",
		metric.WithDescription("ChannelingService RPC latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)
		code := status.Code(err)

		attrs := metric.WithAttributes(
			attribute.String("rpc.method", info.FullMethod),
			attribute.String("rpc.grpc.status_code", code.String()),
		)
		requests.Add(ctx, 1, attrs)
		latency.Record(ctx, elapsed.Seconds(), attrs)

		level := slog.LevelInfo
		if code == codes.Internal || code == codes.Unknown {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "rpc handled",
			"method", info.FullMethod,
			"code", code.String(),
			"duration_ms", elapsed.Milliseconds(),
		)
		return resp, err
	}, nil
}
