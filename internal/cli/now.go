package cli

import (
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/utils"
)

type NowCmd struct{}

func (c *NowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	state, err := ctx.DeriveDay(utils.Today(), now, false)
	if err != nil {
		return err
	}

	clock := now.Format("15:04")

	if len(state.Routines) == 0 {
		fmt.Printf("Now (%s): no care plan configured.\n", clock)
		return nil
	}

	if state.AllComplete {
		fmt.Printf("Now (%s): everything done for today.\n", clock)
		return nil
	}

	if state.NextAction == nil {
		fmt.Printf("Now (%s): nothing due right now.\n", clock)
		return nil
	}

	printNextAction(state.NextAction)
	return nil
}
