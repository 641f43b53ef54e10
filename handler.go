package vtgrid

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/vtgrid/vtgrid/ansiseq"
)

// handleCommand is the Decoder's Emit callback: it routes a parsed
// Command to the screen/terminal operation it names, through any
// installed Middleware. This is the Command Dispatcher, spec §4.F.
func (t *Terminal) handleCommand(cmd ansiseq.Command) {
	t.middleware.dispatch(cmd, t.dispatch)
}

func (t *Terminal) dispatch(cmd ansiseq.Command) {
	switch cmd.Kind {
	case ansiseq.CmdPrint:
		t.handlePrint(cmd.Print)
	case ansiseq.CmdC0:
		t.handleC0(cmd.C0)
	case ansiseq.CmdEsc:
		t.handleEsc(cmd.Esc)
	case ansiseq.CmdCsi:
		t.handleCsi(cmd.Csi)
	case ansiseq.CmdOsc:
		t.handleOsc(cmd.Osc)
	case ansiseq.CmdDcs:
		t.handleDcs(cmd.Dcs)
	case ansiseq.CmdStr:
		t.handleStr(cmd.Str)
	}
}

func (t *Terminal) handlePrint(s string) {
	var b strings.Builder
	cs := t.active.Charsets()
	for _, r := range s {
		b.WriteRune(cs.Translate(r))
	}
	t.active.Print(b.String(), t.has(ModeInsert), t.has(ModeAutoWrap))
}

// --- C0 controls ---

func (t *Terminal) handleC0(b byte) {
	switch b {
	case 0x07: // BEL
		t.bell.Ring()
	case 0x08: // BS
		t.active.CursorBackward(1, false)
	case 0x09: // HT
		t.active.Tab()
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.active.FormFeed(t.has(ModeLineFeedNewLine), !t.onAlt)
	case 0x0D: // CR
		t.active.CarriageReturn()
	case 0x0E: // SO
		t.active.Charsets().ShiftOut()
	case 0x0F: // SI
		t.active.Charsets().ShiftIn()
	default:
		// Other C0 controls (NUL, ENQ, ...) carry no screen effect here.
	}
}

// --- ESC sequences (no CSI/OSC/DCS/PM/SOS/APC introducer) ---

func (t *Terminal) handleEsc(esc ansiseq.EscCommand) {
	if len(esc.Intermediates) == 1 {
		switch esc.Intermediates[0] {
		case '(', ')', '*', '+':
			slot := charsetIndexForIntermediate(esc.Intermediates[0])
			t.active.Charsets().Designate(slot, esc.Final)
			return
		case '#':
			if esc.Final == '8' {
				t.active.FillWithE()
			}
			return
		}
	}
	switch esc.Final {
	case '7': // DECSC
		t.savedCursorSlot().set(t.active.SaveCursor(t.has(ModeOrigin)))
	case '8': // DECRC
		origin := t.active.RestoreCursor(t.savedCursorSlot().get())
		t.setModeFlag(ModeOrigin, origin)
	case '=', '>': // DECKPAM / DECKPNM, keypad mode: no grid effect modeled
	case 'D': // IND
		t.active.LineFeed(!t.onAlt)
	case 'E': // NEL
		t.active.Newline(!t.onAlt)
	case 'M': // RI
		t.active.ReverseLineFeed()
	case 'c': // RIS
		t.resetLocked()
	case 'N': // SS2
		t.active.Charsets().SingleShiftG2()
	case 'O': // SS3
		t.active.Charsets().SingleShiftG3()
	default:
		t.warn(fmt.Sprintf("unhandled ESC final %q", esc.Final))
	}
}

func charsetIndexForIntermediate(b byte) CharsetIndex {
	switch b {
	case '(':
		return CharsetG0
	case ')':
		return CharsetG1
	case '*':
		return CharsetG2
	default:
		return CharsetG3
	}
}

type savedCursorRef struct {
	get func() SavedCursor
	set func(SavedCursor)
}

func (t *Terminal) savedCursorSlot() savedCursorRef {
	if t.onAlt {
		return savedCursorRef{
			get: func() SavedCursor { return t.savedAlternate },
			set: func(s SavedCursor) { t.savedAlternate = s },
		}
	}
	return savedCursorRef{
		get: func() SavedCursor { return t.savedPrimary },
		set: func(s SavedCursor) { t.savedPrimary = s },
	}
}

// --- CSI sequences ---

func (t *Terminal) handleCsi(csi ansiseq.CsiCommand) {
	if len(csi.Intermediates) == 1 && csi.Intermediates[0] == ' ' && csi.Final == 'q' {
		t.handleCursorShape(paramOrZero(csi.Params, 0))
		return
	}
	if csi.Private == '?' {
		t.handleCsiPrivate(csi)
		return
	}
	switch csi.Final {
	case 'A':
		t.active.CursorUp(paramOrDefault(csi.Params, 0, 1))
	case 'B':
		t.active.CursorDown(paramOrDefault(csi.Params, 0, 1))
	case 'C':
		t.active.CursorForward(paramOrDefault(csi.Params, 0, 1), t.has(ModeReverseWraparound))
	case 'D':
		t.active.CursorBackward(paramOrDefault(csi.Params, 0, 1), t.has(ModeReverseWraparound))
	case 'E':
		t.active.CursorDown(paramOrDefault(csi.Params, 0, 1))
		t.active.CarriageReturn()
	case 'F':
		t.active.CursorUp(paramOrDefault(csi.Params, 0, 1))
		t.active.CarriageReturn()
	case 'G', '`':
		col := paramOrDefault(csi.Params, 0, 1) - 1
		t.active.SetCursorPosition(t.active.Cursor().Row, col, false)
	case 'H', 'f':
		row := paramOrDefault(csi.Params, 0, 1) - 1
		col := paramOrDefault(csi.Params, 1, 1) - 1
		t.active.SetCursorPosition(row, col, t.has(ModeOrigin))
	case 'd':
		row := paramOrDefault(csi.Params, 0, 1) - 1
		t.active.SetCursorPosition(row, t.active.Cursor().Col, t.has(ModeOrigin))
	case 'J':
		t.handleEraseDisplay(paramOrZero(csi.Params, 0))
	case 'K':
		t.active.EraseLine(paramOrZero(csi.Params, 0))
	case 'L':
		t.active.InsertLines(paramOrDefault(csi.Params, 0, 1))
	case 'M':
		t.active.DeleteLines(paramOrDefault(csi.Params, 0, 1))
	case 'P':
		t.active.DeleteChars(paramOrDefault(csi.Params, 0, 1))
	case '@':
		t.active.InsertChars(paramOrDefault(csi.Params, 0, 1))
	case 'S':
		t.active.ScrollUp(paramOrDefault(csi.Params, 0, 1))
	case 'T':
		t.active.ScrollDown(paramOrDefault(csi.Params, 0, 1))
	case 'X':
		t.active.EraseChars(paramOrDefault(csi.Params, 0, 1))
	case 'c':
		if csi.Private == 0 {
			t.response.writeString("\x1b[?1;2c")
		}
	case 'g':
		switch paramOrZero(csi.Params, 0) {
		case 0:
			t.active.ClearTabStop()
		case 3:
			t.active.ClearAllTabStops()
		}
	case 'm':
		t.handleSGR(csi.Params)
	case 'n':
		t.handleDSR(paramOrZero(csi.Params, 0))
	case 'r':
		top := paramOrDefault(csi.Params, 0, 1) - 1
		bottom := paramOrDefault(csi.Params, 1, t.active.Height()) - 1
		t.active.SetScrollRegion(top, bottom, t.has(ModeOrigin))
	case 's':
		t.savedCursorSlot().set(t.active.SaveCursor(t.has(ModeOrigin)))
	case 'u':
		origin := t.active.RestoreCursor(t.savedCursorSlot().get())
		t.setModeFlag(ModeOrigin, origin)
	case 'h':
		t.handleSetMode(csi.Params, true)
	case 'l':
		t.handleSetMode(csi.Params, false)
	case 't':
		t.handleWindowManipulation(paramOrZero(csi.Params, 0))
	default:
		t.warn(fmt.Sprintf("unhandled CSI final %q", csi.Final))
	}
}

// handleWindowManipulation is xterm's CSI Ps t "window manipulation" family.
// Only the title-stack selectors (22 push, 23 pop) touch anything this
// module models; every other selector (resize, iconify, report position/
// size in pixels, ...) targets UI chrome spec §1 places out of scope.
func (t *Terminal) handleWindowManipulation(ps int) {
	switch ps {
	case 22:
		t.titleStack = append(t.titleStack, t.title)
		t.titleProvider.PushTitle()
	case 23:
		if n := len(t.titleStack); n > 0 {
			t.title = t.titleStack[n-1]
			t.titleStack = t.titleStack[:n-1]
			t.titleProvider.SetTitle(t.title)
		}
		t.titleProvider.PopTitle()
	default:
		t.warn(fmt.Sprintf("unhandled CSI %d t (window manipulation)", ps))
	}
}

func (t *Terminal) handleEraseDisplay(mode int) {
	if mode == 3 {
		if t.cfg.EnableCSIJ3 {
			t.scrollback.Clear()
		}
		return
	}
	t.active.EraseDisplay(mode)
}

func (t *Terminal) handleCursorShape(p int) {
	cur := t.active.Cursor()
	switch p {
	case 0, 1:
		cur.Shape, cur.Blink = CursorBlock, true
	case 2:
		cur.Shape, cur.Blink = CursorBlock, false
	case 3:
		cur.Shape, cur.Blink = CursorUnderline, true
	case 4:
		cur.Shape, cur.Blink = CursorUnderline, false
	case 5:
		cur.Shape, cur.Blink = CursorBar, true
	case 6:
		cur.Shape, cur.Blink = CursorBar, false
	}
	t.active.setCursor(cur)
}

func (t *Terminal) handleDSR(p int) {
	switch p {
	case 5:
		t.response.writeString("\x1b0n")
	case 6:
		c := t.active.Cursor()
		t.response.writeString(fmt.Sprintf("\x1b[%d;%dR", c.Row+1, c.Col+1))
	}
}

func (t *Terminal) handleSGR(params [][]int) {
	pen := t.active.Pen()
	if len(params) == 0 {
		pen.Reset()
		t.active.SetPen(pen)
		return
	}
	for i := 0; i < len(params); {
		i = pen.ApplySGR(params, i)
	}
	t.active.SetPen(pen)
}

func (t *Terminal) handleSetMode(params [][]int, on bool) {
	for _, g := range params {
		p := paramHead(g)
		switch p {
		case 4:
			t.setModeFlag(ModeInsert, on)
		case 20:
			t.setModeFlag(ModeLineFeedNewLine, on)
		}
	}
}

func (t *Terminal) handleCsiPrivate(csi ansiseq.CsiCommand) {
	if csi.Final != 'h' && csi.Final != 'l' {
		t.warn(fmt.Sprintf("unhandled private CSI final %q", csi.Final))
		return
	}
	on := csi.Final == 'h'
	for _, g := range csi.Params {
		t.setDecMode(paramHead(g), on)
	}
}

func (t *Terminal) setDecMode(p int, on bool) {
	switch p {
	case 1:
		t.setModeFlag(ModeAppCursorKeys, on)
	case 3:
		t.setModeFlag(ModeColumn132, on)
		width := defaultCols
		if on {
			width = wideCols
		}
		t.resizeLocked(width, t.active.Height())
		t.active.EraseDisplay(2)
		t.active.SetCursorPosition(0, 0, false)
	case 5:
		t.setModeFlag(ModeReverseVideo, on)
	case 6:
		t.setModeFlag(ModeOrigin, on)
		t.active.SetCursorPosition(0, 0, on)
	case 7:
		t.setModeFlag(ModeAutoWrap, on)
	case 12:
		if t.cfg.EnableDEC12 {
			t.setModeFlag(ModeCursorBlink, on)
			cur := t.active.Cursor()
			cur.Blink = on
			t.active.setCursor(cur)
		}
	case 25:
		t.setModeFlag(ModeShowCursor, on)
		cur := t.active.Cursor()
		cur.Visible = on
		t.active.setCursor(cur)
	case 45:
		t.setModeFlag(ModeReverseWraparound, on)
	case 47:
		t.setModeFlag(ModeAltScreen47, on)
		t.setAlternateScreenLocked(on, false)
	case 1047:
		t.setModeFlag(ModeAltScreen1047, on)
		t.setAlternateScreenLocked(on, false)
	case 1049:
		t.setModeFlag(ModeAltScreen1049, on)
		t.setAlternateScreenLocked(on, true)
	case 1004:
		t.setModeFlag(ModeFocusReporting, on)
	case 1036:
		t.setModeFlag(ModeMetaSendsEscape, on)
	case 1039:
		t.setModeFlag(ModeAltSendsEscape, on)
	case 2004:
		t.setModeFlag(ModeBracketedPaste, on)
	default:
		t.warn(fmt.Sprintf("unhandled DEC private mode %d", p))
	}
}

// --- OSC sequences ---

func (t *Terminal) handleOsc(osc ansiseq.OscCommand) {
	payload := string(osc.Payload)
	switch osc.Ps {
	case 0:
		t.titleProvider.SetTitle(payload)
		t.titleProvider.SetIconName(payload)
		t.title = payload
	case 1:
		t.titleProvider.SetIconName(payload)
	case 2:
		t.titleProvider.SetTitle(payload)
		t.title = payload
	case 4:
		t.handleOscPalette(payload)
	case 7:
		t.workingDirectory.SetWorkingDirectory(payload)
	case 8:
		t.handleOscHyperlink(payload)
	case 9:
		t.notification.Notify(payload)
	case 10, 11, 12:
		t.handleOscColor(osc.Ps, payload)
	case 52:
		t.handleOscClipboard(payload)
	case 104:
		t.resetPaletteFromPayload(payload)
	case 110:
		t.palette.ResetFg()
	case 111:
		t.palette.ResetBg()
	case 112:
		t.palette.ResetCursor()
	case 777:
		t.handleOscURxvtNotify(payload)
	case 1337:
		t.iterm2.Receive(osc.Payload)
	default:
		t.warn(fmt.Sprintf("unhandled OSC %d", osc.Ps))
	}
}

func (t *Terminal) handleOscPalette(payload string) {
	parts := strings.Split(payload, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		spec := parts[i+1]
		if spec == "?" {
			c := t.palette.Index(uint8(idx))
			t.response.writeString(fmt.Sprintf("\x1b]4;%d;%s\x07", idx, formatRGBSpec(c)))
			continue
		}
		if c, ok := parseColorSpec(spec); ok {
			t.palette.SetIndex(uint8(idx), c)
		}
	}
}

func (t *Terminal) resetPaletteFromPayload(payload string) {
	if payload == "" {
		t.palette.ResetAll()
		return
	}
	for _, p := range strings.Split(payload, ";") {
		idx, err := strconv.Atoi(p)
		if err == nil && idx >= 0 && idx <= 255 {
			t.palette.ResetIndex(uint8(idx))
		}
	}
}

func (t *Terminal) handleOscHyperlink(payload string) {
	parts := strings.SplitN(payload, ";", 2)
	params, uri := "", ""
	if len(parts) == 2 {
		params, uri = parts[0], parts[1]
	} else if len(parts) == 1 {
		uri = parts[0]
	}
	if uri == "" {
		t.active.SetPen(t.active.Pen().WithHyperlink(nil))
		return
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	if id == "" {
		t.hyperlinkSeq++
		id = strconv.Itoa(t.hyperlinkSeq)
	}
	t.active.SetPen(t.active.Pen().WithHyperlink(&Hyperlink{ID: id, URI: uri}))
}

func (t *Terminal) handleOscColor(ps int, payload string) {
	specs := strings.Split(payload, ";")
	for i, spec := range specs {
		target := ps + i
		if target > 12 {
			break
		}
		if spec == "?" {
			var c RGB
			switch target {
			case 10:
				c = t.palette.Fg()
			case 11:
				c = t.palette.Bg()
			case 12:
				c = t.palette.Cursor()
			}
			t.response.writeString(fmt.Sprintf("\x1b]%d;%s\x07", target, formatRGBSpec(c)))
			continue
		}
		c, ok := parseColorSpec(spec)
		if !ok {
			continue
		}
		switch target {
		case 10:
			t.palette.SetFg(c)
		case 11:
			t.palette.SetBg(c)
		case 12:
			t.palette.SetCursor(c)
		}
	}
}

func (t *Terminal) handleOscClipboard(payload string) {
	parts := strings.SplitN(payload, ";", 2)
	if len(parts) != 2 {
		return
	}
	selectors, data := parts[0], parts[1]
	selector := byte('c')
	if len(selectors) > 0 {
		selector = selectors[0]
	}
	if data == "?" {
		text := t.clipboard.Read(selector)
		encoded := base64.StdEncoding.EncodeToString([]byte(text))
		t.response.writeString(fmt.Sprintf("\x1b]52;%c;%s\x07", selector, encoded))
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return
	}
	t.clipboard.Write(selector, decoded)
	t.emitEvent(Event{Kind: EventCopyRequested, Selection: selector, Data: decoded})
}

func (t *Terminal) handleOscURxvtNotify(payload string) {
	parts := strings.SplitN(payload, ";", 3)
	if len(parts) < 3 || parts[0] != "notify" {
		return
	}
	t.notification.Notify(parts[1] + ": " + parts[2])
}

// parseColorSpec parses an "rgb:RRRR/GGGG/BBBB" (1-4 hex digits per
// channel) or "#RRGGBB" color spec into an RGB value.
func parseColorSpec(spec string) (RGB, bool) {
	if strings.HasPrefix(spec, "rgb:") {
		chans := strings.Split(strings.TrimPrefix(spec, "rgb:"), "/")
		if len(chans) != 3 {
			return RGB{}, false
		}
		r, ok1 := parseHexComponent(chans[0])
		g, ok2 := parseHexComponent(chans[1])
		b, ok3 := parseHexComponent(chans[2])
		if !ok1 || !ok2 || !ok3 {
			return RGB{}, false
		}
		return RGB{r, g, b}, true
	}
	if strings.HasPrefix(spec, "#") && len(spec) == 7 {
		v, err := strconv.ParseUint(spec[1:], 16, 32)
		if err != nil {
			return RGB{}, false
		}
		return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
	}
	return RGB{}, false
}

// parseHexComponent reads 1-4 hex digits and scales to 8 bits by taking
// the most significant two (xterm's rgb: spec allows up to 4 digits per
// channel for finer-than-8-bit color, which this module truncates).
func parseHexComponent(s string) (uint8, bool) {
	if len(s) == 0 || len(s) > 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	switch len(s) {
	case 1:
		return uint8(v * 17), true
	case 2:
		return uint8(v), true
	default:
		shift := uint((len(s) - 2) * 4)
		return uint8(v >> shift), true
	}
}

func formatRGBSpec(c RGB) string {
	return fmt.Sprintf("rgb:%02x%02x/%02x%02x/%02x%02x", c.R, c.R, c.G, c.G, c.B, c.B)
}

// --- DCS / PM / SOS / APC ---

func (t *Terminal) handleDcs(dcs ansiseq.DcsCommand) {
	// No DCS sequence is implemented at the dispatcher level (Sixel and
	// Kitty graphics DCS/APC payloads are out of scope); payload is
	// otherwise discarded.
	_ = dcs
}

func (t *Terminal) handleStr(str ansiseq.StrCommand) {
	_ = str
}

// --- parameter helpers ---

func paramHead(g []int) int {
	if len(g) == 0 {
		return 0
	}
	return g[0]
}

func paramAt(params [][]int, i int) (int, bool) {
	if i < 0 || i >= len(params) {
		return 0, false
	}
	return paramHead(params[i]), true
}

func paramOrDefault(params [][]int, i, def int) int {
	v, ok := paramAt(params, i)
	if !ok || v == 0 {
		return def
	}
	return v
}

func paramOrZero(params [][]int, i int) int {
	v, _ := paramAt(params, i)
	return v
}
