package vtgrid

import "github.com/vtgrid/vtgrid/ansiseq"

// Middleware lets an embedder observe or override command dispatch before
// it reaches the screen model. The teacher's per-handler field pattern
// (one func field per ANSI operation) doesn't fit here: this module
// dispatches one generalized Command vocabulary (spec §4.F) rather than
// dozens of named handler methods, so a single Intercept hook wraps
// dispatch as a whole. Intercept receives the parsed command and a next
// function that performs the default dispatch; calling next is optional,
// letting middleware suppress, rewrite, or log a command before deciding
// whether to apply it.
type Middleware struct {
	Intercept func(cmd ansiseq.Command, next func(ansiseq.Command))
}

func (m Middleware) dispatch(cmd ansiseq.Command, next func(ansiseq.Command)) {
	if m.Intercept == nil {
		next(cmd)
		return
	}
	m.Intercept(cmd, next)
}
