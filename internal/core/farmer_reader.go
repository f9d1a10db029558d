package core

import "context"

// FarmerReader exposes the registered location of a farmer to packages that
// must not import auth.
type FarmerReader interface {
	FarmerLocation(ctx context.Context, farmerID string) (state, district string, err error)
}
