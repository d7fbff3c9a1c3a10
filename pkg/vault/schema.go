package vault

// SchemaV1 is the envelope vault wraps around a KV version-1 read; Data
// holds the caller's secret fields directly.
type SchemaV1[T any] struct {
	RequestId     string                 `json:"request_id"`
	LeaseId       string                 `json:"lease_id"`
	Renewable     bool                   `json:"renewable"`
	LeaseDuration int                    `json:"lease_duration"`
	Data          T                      `json:"data"`
	WrapInfo      map[string]interface{} `json:"wrap_info,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	Auth          map[string]interface{} `json:"auth,omitempty"`
}

// SchemaV2 is the KV version-2 shape: the same envelope, except the payload
// sits one level deeper under data.data.
type SchemaV2[T any] struct {
	RequestId     string                 `json:"request_id"`
	LeaseId       string                 `json:"lease_id"`
	Renewable     bool                   `json:"renewable"`
	LeaseDuration int                    `json:"lease_duration"`
	Data          NestedData[T]          `json:"data"`
	WrapInfo      map[string]interface{} `json:"wrap_info,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	Auth          map[string]interface{} `json:"auth,omitempty"`
}

type NestedData[T any] struct {
	Data T `json:"data"`
}
