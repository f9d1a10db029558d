package auth

import (
	"context"

	"github.com/rotisserie/eris"
)

var ErrFarmerNotFound = eris.New("farmer not found")

// FarmerRepository defines the data-access contract.
// Service depends ONLY on this interface.
type FarmerRepository interface {
	Save(ctx context.Context, farmer *Farmer) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	FindByPhone(ctx context.Context, phone string) (*Farmer, error)
	FindByID(ctx context.Context, id string) (*Farmer, error)
}
