// Package environment resolves the target environment tier for sync operations.
package environment

import (
	"strings"

	kerrors "github.com/envdock/edk/internal/errors"
)

// Tier is one of the fixed deployment stages a project's secrets are partitioned by.
type Tier string

const (
	Dev     Tier = "dev"
	Staging Tier = "staging"
	Prod    Tier = "prod"
)

// Default is used when neither a flag nor the link descriptor names a tier.
const Default = Dev

// Allowed lists the valid tiers in display order.
var Allowed = []Tier{Dev, Staging, Prod}

// Names returns Allowed as plain strings.
func Names() []string {
	names := make([]string, len(Allowed))
	for i, t := range Allowed {
		names[i] = string(t)
	}
	return names
}

// Resolve picks the effective tier: an explicit flag wins over the link
// default, which wins over Default. The chosen value is lowercased before
// validation, so "Prod" resolves to prod.
//
// Empty strings count as absent.
func Resolve(flag, linkDefault string) (Tier, error) {
	raw := flag
	if raw == "" {
		raw = linkDefault
	}
	if raw == "" {
		return Default, nil
	}
	return Parse(raw)
}

// Parse validates a single tier name, case-insensitively.
func Parse(raw string) (Tier, error) {
	candidate := Tier(strings.ToLower(raw))
	for _, t := range Allowed {
		if candidate == t {
			return t, nil
		}
	}
	return "", &kerrors.InvalidEnvironmentError{Value: raw, Allowed: Names()}
}

func (t Tier) String() string {
	return string(t)
}
