package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/shadowbtc/shadowvault/internal/common"
	pb "github.com/shadowbtc/shadowvault/internal/proto"
	"github.com/shadowbtc/shadowvault/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withToken(token string) context.Context {
	return metadata.NewIncomingContext(context.Background(), metadata.Pairs(common.AccessTokenHeaderName, token))
}

func TestInterceptor_OpenMethodsNeedNoToken(t *testing.T) {
	s := newTestServer(&fakeLedger{})

	called := false
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		called = true
		return "ok", nil
	}

	resp, err := s.operatorTokenInterceptor(context.Background(), nil,
		&grpc.UnaryServerInfo{FullMethod: pb.LedgerService_Spend_FullMethodName}, h)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_OperatorMethods(t *testing.T) {
	s := newTestServer(&fakeLedger{})

	valid, err := auth.GenerateOperatorToken([]byte("secret"), time.Minute)
	require.NoError(t, err)
	expired, err := auth.GenerateOperatorToken([]byte("secret"), -time.Minute)
	require.NoError(t, err)
	wrongSecret, err := auth.GenerateOperatorToken([]byte("other"), time.Minute)
	require.NoError(t, err)
	notOperator, err := auth.GenerateToken("wallet", []byte("secret"), time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		ctx     context.Context
		wantErr bool
		wantMsg string
	}{
		{"valid", withToken(valid), false, ""},
		{"missing", context.Background(), true, "missing token"},
		{"expired", withToken(expired), true, common.ErrTokenExpired.Error()},
		{"wrong secret", withToken(wrongSecret), true, common.ErrInvalidToken.Error()},
		{"wrong subject", withToken(notOperator), true, common.ErrorUnauthorized.Error()},
	}

	for _, method := range []string{pb.LedgerService_Reset_FullMethodName, pb.LedgerService_ExportReport_FullMethodName} {
		for _, tt := range tests {
			t.Run(method+" "+tt.name, func(t *testing.T) {
				called := false
				h := func(ctx context.Context, req interface{}) (interface{}, error) {
					called = true
					return "ok", nil
				}

				_, err := s.operatorTokenInterceptor(tt.ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
				if !tt.wantErr {
					require.NoError(t, err)
					assert.True(t, called)
					return
				}
				assert.False(t, called)
				st, ok := status.FromError(err)
				require.True(t, ok)
				assert.Equal(t, codes.Unauthenticated, st.Code())
				assert.Equal(t, tt.wantMsg, st.Message())
			})
		}
	}
}
