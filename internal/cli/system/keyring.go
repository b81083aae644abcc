package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/unstick/internal/cli"
	"github.com/julianstephens/unstick/internal/keyring"
)

// KeySetCmd stores the advisor API key in the OS keyring
type KeySetCmd struct {
	APIKey string `arg:"" help:"Advisor API key to store in the OS keyring."`
}

func (cmd *KeySetCmd) Run(ctx *cli.Context) error {
	if err := keyring.SetAPIKey(cmd.APIKey); err != nil {
		return err
	}
	fmt.Println("✓ Advisor API key stored in OS keyring")
	fmt.Println("  'unstick session new' will now ask the advisor for interventions")
	return nil
}

// KeyStatusCmd reports keyring availability and whether a key is stored
type KeyStatusCmd struct{}

func (cmd *KeyStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	_, err := keyring.GetAPIKey()
	switch {
	case err == nil:
		fmt.Println("✓ Advisor API key is stored in keyring")
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Println("ℹ No advisor API key stored in keyring")
	default:
		return err
	}
	return nil
}

// KeyDeleteCmd removes the advisor API key from the OS keyring
type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no advisor API key found in keyring")
		}
		return err
	}
	fmt.Println("✓ Advisor API key deleted from OS keyring")
	return nil
}
