package vault

import (
	"encoding/json"
	"fmt"

	"github.com/guaychou/coult/pkg/logger"
)

// GetSecret reads the configured secret path and decodes the KV version-1
// envelope, returning the inner data payload. T is any type the caller can
// unmarshal from JSON. Declared at package level because Go methods cannot
// introduce type parameters.
func GetSecret[T any](v *Client) (T, error) {
	var secret SchemaV1[T]

	body, err := v.fetchSecret()
	if err != nil {
		return secret.Data, err
	}

	if err := json.Unmarshal(body, &secret); err != nil {
		logger.Errorf("Could not decode KV v1 secret envelope: %v", err)
		return secret.Data, fmt.Errorf("decoding KV v1 secret envelope: %w", err)
	}

	return secret.Data, nil
}

// GetSecretV2 is GetSecret for KV version-2 mounts, where the payload nests
// one level deeper under data.data. Calling the operation that does not
// match the mount's KV version fails with a decode error.
func GetSecretV2[T any](v *Client) (T, error) {
	var secret SchemaV2[T]

	body, err := v.fetchSecret()
	if err != nil {
		return secret.Data.Data, err
	}

	if err := json.Unmarshal(body, &secret); err != nil {
		logger.Errorf("Could not decode KV v2 secret envelope: %v", err)
		return secret.Data.Data, fmt.Errorf("decoding KV v2 secret envelope: %w", err)
	}

	return secret.Data.Data, nil
}

// fetchSecret issues the GET against the configured secret path and buffers
// the body. The status-code mapping runs first; on a non-200 answer the body
// is never parsed.
func (v *Client) fetchSecret() ([]byte, error) {
	response, err := v.newRequest().Get(v.config.SecretPath)
	if err != nil {
		logger.Errorf("Secret request failed: %v", err)
		return nil, err
	}

	if err := checkStatus(response.StatusCode()); err != nil {
		return nil, err
	}

	logger.Infof("Retrieval secret from vault success")

	return response.Body(), nil
}
