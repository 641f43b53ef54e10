// Package vtgrid implements a headless VT100/xterm-compatible terminal
// emulator: feed it the raw bytes a shell or TUI program would write to a
// pty, and it maintains the resulting screen grid, cursor, scrollback,
// and terminal modes without ever touching a display.
//
// # Quick start
//
//	term := vtgrid.New()
//	term.Write([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(term.LineContent(0)) // "Hello World!"
//
// # Architecture
//
//   - [Terminal]: the facade; implements [io.Writer] and serializes access
//     with an internal mutex
//   - [Screen]: one of the two grids (primary, alternate), owning cells,
//     cursor, scroll region, tab stops, and charset state
//   - [Cell] / [TextAttributes]: one grid position's glyph and its
//     rendering attributes, including any hyperlink it belongs to
//   - [Scrollback]: lines scrolled off the top of the primary screen
//   - [Palette]: the 256-slot indexed color table plus the three dynamic
//     colors (OSC 4/10/11/12)
//
// # Dual screens
//
// A Terminal holds a primary screen (with scrollback) and an alternate
// screen (without), the way full-screen programs like vim or less use a
// private grid that vanishes on exit. Applications switch between them
// with the DEC private modes 47/1047/1049:
//
//	if term.IsAlternateScreen() {
//	    // a full-screen program currently owns the display
//	}
//
// # Responses
//
// Some sequences (cursor position reports, OSC color queries) generate a
// reply meant to be written back to the pty. Terminal never writes these
// itself; call [Terminal.TakeResponse] after each [Terminal.Write] to
// drain anything queued:
//
//	term.Write(input)
//	if resp := term.TakeResponse(); resp != nil {
//	    pty.Write(resp)
//	}
//
// # Providers
//
// Side effects that reach outside the grid — the bell, the window title,
// the clipboard, desktop notifications, the working-directory hint, and
// iTerm2 proprietary escapes — are delivered through small provider
// interfaces, each with a no-op default:
//
//	term := vtgrid.New(
//	    vtgrid.WithBell(myBell),
//	    vtgrid.WithTitle(myTitleBar),
//	    vtgrid.WithClipboard(myClipboard),
//	)
//
// # Middleware
//
// [Middleware] intercepts every dispatched command before it reaches the
// screen, letting a caller log, filter, or rewrite terminal behavior:
//
//	mw := vtgrid.Middleware{
//	    Intercept: func(cmd ansiseq.Command, next func(ansiseq.Command)) {
//	        log.Printf("%+v", cmd)
//	        next(cmd)
//	    },
//	}
//	term := vtgrid.New(vtgrid.WithMiddleware(mw))
//
// # Snapshots
//
// [Terminal.Snapshot] captures the visible grid at three levels of
// detail: plain text, styled runs (for an HTML-like renderer), or full
// per-cell data.
package vtgrid
