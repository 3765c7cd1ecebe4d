package workflow

import (
	"context"

	"github.com/amreinch/removebg-pro/internal/api"
	"github.com/amreinch/removebg-pro/internal/model"
)

// ProcessorAPI is the slice of the remote client the controller depends on.
type ProcessorAPI interface {
	Process(ctx context.Context, token string, file *model.SelectedFile, format model.OutputFormat) (*model.ProcessingResult, error)
	Download(ctx context.Context, token, downloadRef string) (*api.Asset, error)
	CreateCheckout(ctx context.Context, token string, tier model.CheckoutTier) (string, error)
}

// Session is the view of the session manager the controller needs. The
// controller reads snapshots, requests refreshes, and observes session
// changes; it never writes token or balance fields itself.
type Session interface {
	Token() string
	Profile() *model.UserProfile
	IsLoggedIn() bool
	ApplyServerBalance(remaining int)
	RefreshProfile(ctx context.Context) (*model.UserProfile, error)
	AddChangeCallback(callback func(*model.UserProfile))
}

// AssetSaver persists a downloaded clean image and returns its local path.
type AssetSaver interface {
	Save(asset *api.Asset, fileID string, format model.OutputFormat) (string, error)
}
