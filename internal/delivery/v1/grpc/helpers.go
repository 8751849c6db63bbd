package grpc

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCErrorResponse прячет внутренние ошибки за codes.Internal. Ошибки со статусом проходят как есть.
func GRPCErrorResponse(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	return status.Error(codes.Internal, e.ErrInternalServerError.Error())
}

// loggingInterceptor логирует каждый unary-вызов и нормализует ошибки.
func loggingInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		resp, err := handler(ctx, req)
		if err != nil {
			log.Warnf("grpc %s failed in %s: %v", info.FullMethod, time.Since(start), err)
			return nil, GRPCErrorResponse(err)
		}

		log.Debugf("grpc %s ok in %s", info.FullMethod, time.Since(start))
		return resp, nil
	}
}
