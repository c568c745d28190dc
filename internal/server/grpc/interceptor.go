package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/shadowbtc/shadowvault/internal/common"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"github.com/shadowbtc/shadowvault/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// operatorMethods require a valid operator token.
var operatorMethods = map[string]struct{}{
	pb.LedgerService_Reset_FullMethodName:        {},
	pb.LedgerService_ExportReport_FullMethodName: {},
}

func (s *GRPCServer) operatorTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if _, ok := operatorMethods[info.FullMethod]; !ok {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(common.AccessTokenHeaderName)
		if len(values) > 0 {
			accessToken = values[0]
		}
	}
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	subject, err := auth.GetSubjectFromToken(accessToken, s.jwtSecret)
	if err != nil {
		s.logger.Warn(ctx, "operator token rejected", "method", info.FullMethod, "error", err)
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	if subject != common.OperatorSubject {
		s.logger.Warn(ctx, "non-operator token", "method", info.FullMethod, "subject", subject)
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	}

	return handler(ctx, req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}
