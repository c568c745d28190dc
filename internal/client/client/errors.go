package client

import (
	"errors"
	"strings"

	"github.com/shadowbtc/shadowvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// remoteKinds are the server errors whose text travels as the status
// message. A message may carry more than one of them.
var remoteKinds = []error{
	common.ErrInvalidOrSpent,
	common.ErrInvalidInput,
	common.ErrDoubleSpend,
	common.ErrInvalidProof,
	common.ErrorNotFound,
	common.ErrAlreadySpent,
	common.ErrFaucetLimit,
	common.ErrTokenExpired,
	common.ErrInvalidToken,
	common.ErrorUnauthorized,
	common.ErrStorageFailure,
}

// RemoteError is a server rejection. It matches, via errors.Is, every
// sentinel named in the status message plus ErrUnauthorized or
// ErrUnavailable when the status code says so.
type RemoteError struct {
	Code  codes.Code
	Msg   string
	kinds []error
}

func (e *RemoteError) Error() string {
	return e.Msg
}

func (e *RemoteError) Unwrap() []error {
	return e.kinds
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	re := &RemoteError{Code: st.Code(), Msg: st.Message()}
	for _, k := range remoteKinds {
		if strings.Contains(st.Message(), k.Error()) {
			re.kinds = append(re.kinds, k)
		}
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		re.kinds = append(re.kinds, ErrUnauthorized)
	case codes.Unavailable, codes.DeadlineExceeded:
		re.kinds = append(re.kinds, ErrUnavailable)
	}
	return re
}
