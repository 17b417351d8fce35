package wheel

import "fmt"

// ValidationError reports a malformed section entry or section list.
// The whole update is aborted; no partial list is ever applied.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid section data: " + e.Reason
}

// CapacityError reports a section list that does not fit a fixed-capacity wheel
type CapacityError struct {
	Count    int // supplied section count
	Capacity int // configured selectable slots
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d sections exceed the fixed capacity of %d", e.Count, e.Capacity)
}

// ConfigurationError reports an incomplete wheel configuration at construction
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "invalid wheel configuration: " + e.Reason
}
