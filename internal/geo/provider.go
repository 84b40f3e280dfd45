package geo

import (
	"context"
	"errors"

	"github.com/aayushkhanna09/rahi-app/models"
)

var (
	// ErrPermissionDenied means the user refused location access. The
	// check-in flow aborts and surfaces the refusal; it never retries on its
	// own.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable means no fix could be obtained within the
	// provider's timeout.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Provider obtains a single GPS fix. Implementations may prompt the user for
// permission as a side effect of RequestPermission.
type Provider interface {
	RequestPermission(ctx context.Context) error
	CurrentFix(ctx context.Context) (models.GeoFix, error)
}

// StaticProvider reports a fixed coordinate. The HTTP layer wraps each
// device-reported fix in one of these; tests use it to simulate devices at
// known positions.
type StaticProvider struct {
	Fix models.GeoFix
}

func NewStaticProvider(fix models.GeoFix) *StaticProvider {
	return &StaticProvider{Fix: fix}
}

func (p *StaticProvider) RequestPermission(ctx context.Context) error {
	return nil
}

func (p *StaticProvider) CurrentFix(ctx context.Context) (models.GeoFix, error) {
	return p.Fix, nil
}
