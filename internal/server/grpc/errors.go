package grpc

import (
	"errors"

	"github.com/shadowbtc/shadowvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// statusCodes is checked in order; the first match wins. InvalidOrSpent
// precedes NotFound and AlreadySpent because withdraw wraps both.
var statusCodes = []struct {
	err  error
	code codes.Code
}{
	{common.ErrInvalidOrSpent, codes.FailedPrecondition},
	{common.ErrInvalidInput, codes.InvalidArgument},
	{common.ErrDoubleSpend, codes.AlreadyExists},
	{common.ErrInvalidProof, codes.InvalidArgument},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrAlreadySpent, codes.FailedPrecondition},
	{common.ErrFaucetLimit, codes.ResourceExhausted},
	{common.ErrorUnauthorized, codes.Unauthenticated},
}

// toStatus converts a ledger error into a gRPC status. Rejections keep
// their message, which starts with the sentinel's text; storage and other
// internal failures are reported without detail.
func toStatus(err error) error {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return status.Error(sc.code, err.Error())
		}
	}
	if errors.Is(err, common.ErrStorageFailure) {
		return status.Error(codes.Internal, common.ErrStorageFailure.Error())
	}
	return status.Error(codes.Internal, common.ErrorInternal.Error())
}
