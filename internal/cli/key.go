package cli

import (
	"fmt"

	"github.com/julianstephens/mnemo/internal/keyring"
)

type KeySetCmd struct {
	Key string `arg:"" help:"Completion API key to store."`
}

func (cmd *KeySetCmd) Run(_ *Context) error {
	if err := keyring.SetAPIKey(cmd.Key); err != nil {
		return err
	}
	fmt.Println("API key stored in OS keyring")
	return nil
}

type KeyDeleteCmd struct{}

func (cmd *KeyDeleteCmd) Run(_ *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed from OS keyring")
	return nil
}
