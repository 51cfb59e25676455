package cli

import (
	"fmt"
)

type InitCmd struct{}

func (cmd *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer ctx.Store.Close()

	fmt.Printf("Initialized %s storage at %s\n", ctx.Config.Storage.Backend, ctx.Store.Location())
	return nil
}
