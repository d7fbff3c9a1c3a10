package vault

import (
	"fmt"
	"net/http"

	"github.com/guaychou/coult/pkg/logger"
)

// Status codes vault answers with beyond the registered HTTP set.
const (
	StatusActiveDRSecondaryNode  = 472
	StatusStandbyPerformanceNode = 473
)

// Kind discriminates the vault-side failure classes a response status code
// can map to.
type Kind int

const (
	KindUnknown Kind = iota
	KindSealed
	KindNotInitialized
	KindStandby
	KindActiveDRSecondaryNode
	KindStandbyPerformanceNode
	KindInvalidPath
)

func (k Kind) String() string {
	switch k {
	case KindSealed:
		return "Vault is sealed"
	case KindNotInitialized:
		return "Vault is not initialized"
	case KindStandby:
		return "Vault is in standby"
	case KindActiveDRSecondaryNode:
		return "Vault is in active DR secondary node"
	case KindStandbyPerformanceNode:
		return "Vault is in active standby performance node"
	case KindInvalidPath:
		return "Vault path is invalid"
	default:
		return "Vault error unknown"
	}
}

// ApiError is a vault-protocol error: the server answered, but with a status
// code that means the request cannot be served. The original status code is
// always kept for diagnostics.
type ApiError struct {
	Kind       Kind
	StatusCode int
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%v, connection to vault failed | status code: %v", e.Kind, e.StatusCode)
}

// checkStatus maps a response status code to an outcome. 200 is the only
// success; every other code yields an ApiError carrying the raw code, logged
// at error level here, at the point of detection, before it propagates.
//
// Vault answers 429 on standby nodes, but this mapping folds it into the
// sealed kind together with 503; callers needing the distinction still have
// the status code on the error.
func checkStatus(statusCode int) error {
	if statusCode == http.StatusOK {
		return nil
	}

	var kind Kind
	switch statusCode {
	case http.StatusServiceUnavailable:
		kind = KindSealed
	case http.StatusTooManyRequests:
		kind = KindSealed
	case StatusActiveDRSecondaryNode:
		kind = KindActiveDRSecondaryNode
	case StatusStandbyPerformanceNode:
		kind = KindStandbyPerformanceNode
	case http.StatusNotFound:
		kind = KindInvalidPath
	case http.StatusNotImplemented:
		kind = KindNotInitialized
	default:
		kind = KindUnknown
	}

	err := &ApiError{Kind: kind, StatusCode: statusCode}
	logger.Errorf("%v", err)

	return err
}
