package util

import "fmt"

// NonEmpty rejects a missing required field. Presence is the only input
// rule; no trimming or format constraints apply.
func NonEmpty(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}
