package vault

import (
	"context"

	"github.com/guaychou/coult/pkg/logger"
)

// NewVaultClient resolves the configuration, initializes the pooled HTTP(S)
// client, and verifies the target vault node is reachable and healthy. A
// non-200 health response aborts construction with the mapped error, so a
// client you get back reached an initialized, unsealed, active node at
// construction time. Nothing re-validates health before later calls.
func NewVaultClient(ctx context.Context, config Config) (*Client, error) {
	resolved, err := config.Resolve()
	if err != nil {
		logger.Errorf("%v", err)
		return nil, err
	}

	vault := &Client{config: resolved, ctx: ctx}
	vault.setup()

	if err := vault.HealthCheck(); err != nil {
		return nil, err
	}

	logger.Infof("Health check connection to vault on %v succeeded", resolved.Host)

	return vault, nil
}
