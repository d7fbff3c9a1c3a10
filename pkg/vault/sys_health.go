package vault

import (
	"encoding/json"
	"fmt"

	"github.com/guaychou/coult/pkg/logger"
)

var (
	SysHealthLocation = "/sys/health"
)

// SystemHealth is the decoded body of /v1/sys/health.
type SystemHealth struct {
	Initialized bool `json:"initialized"`
	Sealed      bool `json:"sealed"`
	Standby     bool `json:"standby"`
}

// HealthCheck issues GET /v1/sys/health and applies the status-code mapping.
// Note that we expect vault to be initialized, unsealed, and the active node
// to continue.
func (v *Client) HealthCheck() error {
	response, err := v.newRequest().Get(SysHealthLocation)
	if err != nil {
		logger.Errorf("Health check request failed: %v", err)
		return err
	}

	return checkStatus(response.StatusCode())
}

// Health re-runs the health check and additionally decodes the response
// body, for callers that want the initialized/sealed/standby detail rather
// than a yes/no.
func (v *Client) Health() (*SystemHealth, error) {
	response, err := v.newRequest().Get(SysHealthLocation)
	if err != nil {
		logger.Errorf("Health check request failed: %v", err)
		return nil, err
	}

	if err := checkStatus(response.StatusCode()); err != nil {
		return nil, err
	}

	health := new(SystemHealth)
	if err := json.Unmarshal(response.Body(), health); err != nil {
		logger.Errorf("Could not decode health response: %v", err)
		return nil, fmt.Errorf("decoding health response: %w", err)
	}

	return health, nil
}

func (i *SystemHealth) Ready() bool {
	return i.Initialized && !i.Sealed && !i.Standby
}
