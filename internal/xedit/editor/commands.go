package editor

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/navicore/xedit/internal/xedit/buffer"
	"github.com/navicore/xedit/internal/xedit/color"
	"github.com/navicore/xedit/internal/xedit/command"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/target"
)

// Execute dispatches a parsed Command. It clears the prior message first;
// on return, either the result's message or the error's display string
// becomes the new current message.
func (e *Editor) Execute(cmd command.Command) (command.Result, error) {
	e.message = ""
	e.hasMessage = false

	var result command.Result
	var err error

	switch cmd.Kind {
	case command.Up:
		result, err = e.cmdUp(cmd.Count)
	case command.Down:
		result, err = e.cmdDown(cmd.Count)
	case command.Top:
		e.currentLine = 0
		result = command.Ok()
	case command.Bottom:
		e.currentLine = e.buf.Len()
		result = command.Ok()
	case command.Forward:
		result, err = e.cmdDown(cmd.Count * e.pageSize)
	case command.Backward:
		result, err = e.cmdUp(cmd.Count * e.pageSize)
	case command.Left:
		e.currentCol -= cmd.Count
		if e.currentCol < 1 {
			e.currentCol = 1
		}
		result = command.Ok()
	case command.Right:
		e.currentCol += cmd.Count
		result = command.Ok()
	case command.Locate:
		result, err = e.cmdLocate(cmd.Target)
	case command.Change:
		result, err = e.cmdChange(cmd.From, cmd.To, cmd.Target, cmd.ChangeN)
	case command.Input:
		result, err = e.cmdInput(cmd)
	case command.Delete:
		result, err = e.cmdDelete(cmd.Target)
	case command.File:
		result, err = e.cmdFile()
	case command.Save:
		result, err = e.cmdSave()
	case command.Quit:
		result, err = e.cmdQuit()
	case command.QQuit:
		result = command.QuitResult()
	case command.Get:
		result, err = e.cmdGet(cmd.Text)
	case command.Set:
		result, err = e.cmdSet(cmd.Set)
	case command.Query:
		result, err = e.cmdQuery(cmd.QueryWhat)
	case command.Macro:
		result, err = e.cmdMacro(cmd.Text)
	case command.Undo:
		result, err = e.cmdUndo()
	case command.All:
		result, err = e.cmdAll(cmd.Target)
	case command.Sort:
		result, err = e.cmdSort(cmd.SortArgs)
	case command.Cursor:
		req := cmd.CursorTarget
		e.cursorRequest = &req
		result = command.Ok()
	case command.Stack:
		result, err = e.cmdStackOrQueue(cmd.Count, true)
	case command.Queue:
		result, err = e.cmdStackOrQueue(cmd.Count, false)
	case command.Refresh:
		result = command.RefreshResult()
	case command.Help:
		result = e.cmdHelp()
	case command.Nop:
		result = command.Ok()
	default:
		err = xerrors.New(xerrors.InvalidCommand, "Unhandled command")
	}

	if err == nil {
		if result.HasMsg {
			e.setMessage(result.Message)
		}
	} else {
		e.setMessage(err.Error())
	}
	return result, err
}

func (e *Editor) cmdUp(n int) (command.Result, error) {
	if e.hasAllFilter {
		for i := 0; i < n && e.currentLine > 0; i++ {
			e.currentLine--
			for e.currentLine > 0 && !e.IsLineVisible(e.currentLine) {
				e.currentLine--
			}
		}
		return command.Ok(), nil
	}
	e.currentLine -= n
	if e.currentLine < 0 {
		e.currentLine = 0
	}
	return command.Ok(), nil
}

func (e *Editor) cmdDown(n int) (command.Result, error) {
	length := e.buf.Len()
	if e.hasAllFilter {
		for i := 0; i < n && e.currentLine < length; i++ {
			e.currentLine++
			for e.currentLine < length && !e.IsLineVisible(e.currentLine) {
				e.currentLine++
			}
		}
		return command.Ok(), nil
	}
	e.currentLine += n
	if e.currentLine > length {
		e.currentLine = length
	}
	return command.Ok(), nil
}

func (e *Editor) cmdLocate(tgt *target.Target) (command.Result, error) {
	if tgt == nil {
		return command.Result{}, xerrors.New(xerrors.InvalidTarget, "Empty target")
	}
	resolved, ok := tgt.Resolve(e.currentLine, e.buf.Len(), e.caseRespect, e.lineText)
	if !ok {
		msg := "Target not found"
		if tgt.Kind == target.StringForward || tgt.Kind == target.StringBackward {
			msg = fmt.Sprintf("Target not found: %s", tgt.Str)
		}
		return command.Result{}, xerrors.New(xerrors.TargetNotFound, msg)
	}
	e.currentLine = resolved
	return command.Ok(), nil
}

func (e *Editor) cmdChange(from, to string, tgt *target.Target, countArg *int) (command.Result, error) {
	e.snapshot()

	maxChanges := 1
	if countArg != nil {
		maxChanges = *countArg
	}
	changesMade := 0

	endLine := e.buf.Len()
	if tgt != nil {
		if r, ok := tgt.Resolve(e.currentLine, e.buf.Len(), e.caseRespect, e.lineText); ok {
			endLine = r
		}
	}

	start := e.currentLine
	if start == 0 {
		start = 1
	}

	for lineNum := start; lineNum <= endLine && changesMade < maxChanges; lineNum++ {
		text, ok := e.buf.LineText(lineNum)
		if !ok {
			continue
		}
		needle, haystack := from, text
		if !e.caseRespect {
			needle = strings.ToUpper(from)
			haystack = strings.ToUpper(text)
		}
		pos := strings.Index(haystack, needle)
		if pos < 0 {
			continue
		}
		newText := text[:pos] + to + text[pos+len(from):]
		e.buf.SetText(lineNum, newText)
		changesMade++
		e.altCount++
		if !e.stay {
			e.currentLine = lineNum
		}
	}

	if changesMade > 0 {
		return command.WithMessage(fmt.Sprintf("%d change(s) made", changesMade)), nil
	}
	return command.Result{}, xerrors.Newf(xerrors.TargetNotFound, "%q not found", from)
}

func (e *Editor) cmdInput(cmd command.Command) (command.Result, error) {
	if !cmd.HasText {
		return command.EnterInputResult(), nil
	}
	e.snapshot()
	e.buf.InsertAfter(e.currentLine, cmd.Text)
	e.currentLine++
	e.altCount++
	return command.Ok(), nil
}

// InputLine inserts one interactively submitted line, as called by the
// host while the editor is in EnterInput submode.
func (e *Editor) InputLine(text string) {
	e.snapshot()
	e.buf.InsertAfter(e.currentLine, text)
	e.currentLine++
	e.altCount++
}

func (e *Editor) cmdDelete(tgt *target.Target) (command.Result, error) {
	if e.currentLine == 0 {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "Cannot delete at Top of File")
	}
	switch {
	case tgt == nil:
		e.snapshot()
		e.buf.Delete(e.currentLine)
		e.altCount++
		if e.currentLine > e.buf.Len() {
			e.currentLine = e.buf.Len()
		}
		return command.Ok(), nil
	case tgt.Kind == target.Star:
		e.snapshot()
		count := e.buf.Len() - e.currentLine + 1
		e.buf.DeleteRange(e.currentLine, e.buf.Len())
		e.altCount += count
		if e.currentLine > e.buf.Len() {
			e.currentLine = e.buf.Len()
		}
		return command.WithMessage(fmt.Sprintf("%d line(s) deleted", count)), nil
	case tgt.Kind == target.Relative && tgt.Offset > 0:
		e.snapshot()
		end := e.currentLine + int(tgt.Offset) - 1
		if end > e.buf.Len() {
			end = e.buf.Len()
		}
		count := end - e.currentLine + 1
		e.buf.DeleteRange(e.currentLine, end)
		e.altCount += count
		if e.currentLine > e.buf.Len() {
			e.currentLine = e.buf.Len()
		}
		return command.WithMessage(fmt.Sprintf("%d line(s) deleted", count)), nil
	default:
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "Invalid target for DELETE")
	}
}

func (e *Editor) cmdFile() (command.Result, error) {
	if err := e.SaveFile(); err != nil {
		return command.Result{}, err
	}
	return command.QuitResult(), nil
}

func (e *Editor) cmdSave() (command.Result, error) {
	if err := e.SaveFile(); err != nil {
		return command.Result{}, err
	}
	return command.WithMessage("File saved"), nil
}

func (e *Editor) cmdQuit() (command.Result, error) {
	if e.buf.IsModified() {
		return command.Result{}, xerrors.ErrFileModified()
	}
	return command.QuitResult(), nil
}

func (e *Editor) cmdGet(name string) (command.Result, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return command.Result{}, xerrors.FileNotFoundf(name)
	}
	e.snapshot()
	lines := splitLines(string(data))
	e.buf.InsertLinesAfter(e.currentLine, lines)
	e.altCount += len(lines)
	return command.WithMessage(fmt.Sprintf("%d line(s) read from %s", len(lines), name)), nil
}

func (e *Editor) cmdSet(sc command.SetCommand) (command.Result, error) {
	switch sc.Kind {
	case command.SetTrunc:
		e.trunc = sc.N
		e.zoneRight = sc.N
	case command.SetZone:
		e.zoneLeft = sc.ZoneLeft
		e.zoneRight = sc.ZoneRight
	case command.SetNumber:
		e.showNumber = sc.Bool
	case command.SetPrefix:
		e.showPrefix = sc.Bool
	case command.SetScale:
		e.showScale = sc.Bool
	case command.SetCurLine:
		e.curline = sc.CurLine
	case command.SetCase:
		e.caseRespect = sc.Case == command.CaseRespect
	case command.SetWrap:
		e.wrap = sc.Bool
	case command.SetHex:
		e.hex = sc.Bool
	case command.SetStay:
		e.stay = sc.Bool
	case command.SetMsgLine:
		// no-op: message-line row is a display hint only, unused by the core
	case command.SetVerify:
		e.verifyStart = sc.VerifyStart
		e.verifyEnd = sc.VerifyEnd
	case command.SetShadow:
		e.showShadow = sc.Bool
	case command.SetReserved:
		e.reservedLines[sc.N] = sc.ReservedText
	case command.SetReservedOff:
		delete(e.reservedLines, sc.N)
	case command.SetColor:
		hex, err := color.Resolve(sc.ColorName)
		if err != nil {
			return command.Result{}, err
		}
		e.colorOverrides[sc.ColorArea.String()] = hex
	case command.SetPf:
		if sc.PfText == "" {
			delete(e.pfKeys, sc.N)
		} else {
			e.pfKeys[sc.N] = sc.PfText
		}
	}
	return command.Ok(), nil
}

func onOffLabel(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (e *Editor) cmdQuery(what string) (command.Result, error) {
	whatUpper := strings.ToUpper(strings.TrimSpace(what))

	switch {
	case whatUpper == "":
		return command.WithMessage(fmt.Sprintf(
			"Size=%d Line=%d Col=%d Alt=%d Trunc=%d",
			e.buf.Len(), e.currentLine, e.currentCol, e.altCount, e.trunc,
		)), nil
	case whatUpper == "SIZE":
		return command.WithMessage(fmt.Sprintf("Size=%d", e.buf.Len())), nil
	case whatUpper == "LINE":
		return command.WithMessage(fmt.Sprintf("Line=%d", e.currentLine)), nil
	case whatUpper == "COLUMN" || whatUpper == "COL":
		return command.WithMessage(fmt.Sprintf("Col=%d", e.currentCol)), nil
	case whatUpper == "TRUNC":
		return command.WithMessage(fmt.Sprintf("Trunc=%d", e.trunc)), nil
	case whatUpper == "ZONE":
		return command.WithMessage(fmt.Sprintf("Zone=%d %d", e.zoneLeft, e.zoneRight)), nil
	case whatUpper == "ALT":
		return command.WithMessage(fmt.Sprintf("Alt=%d", e.altCount)), nil
	case whatUpper == "LRECL":
		return command.WithMessage(fmt.Sprintf("Lrecl=%d", e.buf.LRECL())), nil
	case whatUpper == "RECFM":
		return command.WithMessage(fmt.Sprintf("Recfm=%s", e.buf.RecFm())), nil
	case whatUpper == "NUMBER":
		return command.WithMessage(fmt.Sprintf("Number=%s", onOffLabel(e.showNumber))), nil
	case whatUpper == "PREFIX":
		return command.WithMessage(fmt.Sprintf("Prefix=%s", onOffLabel(e.showPrefix))), nil
	case whatUpper == "SCALE":
		return command.WithMessage(fmt.Sprintf("Scale=%s", onOffLabel(e.showScale))), nil
	case whatUpper == "CURLINE":
		if e.curline.Middle {
			return command.WithMessage("Curline=MIDDLE"), nil
		}
		return command.WithMessage(fmt.Sprintf("Curline=%d", e.curline.Row)), nil
	case whatUpper == "CASE":
		if e.caseRespect {
			return command.WithMessage("Case=RESPECT"), nil
		}
		return command.WithMessage("Case=IGNORE"), nil
	case whatUpper == "WRAP":
		return command.WithMessage(fmt.Sprintf("Wrap=%s", onOffLabel(e.wrap))), nil
	case whatUpper == "HEX":
		return command.WithMessage(fmt.Sprintf("Hex=%s", onOffLabel(e.hex))), nil
	case whatUpper == "STAY":
		return command.WithMessage(fmt.Sprintf("Stay=%s", onOffLabel(e.stay))), nil
	case whatUpper == "VERIFY":
		return command.WithMessage(fmt.Sprintf("Verify=%d %d", e.verifyStart, e.verifyEnd)), nil
	case whatUpper == "SHADOW":
		return command.WithMessage(fmt.Sprintf("Shadow=%s", onOffLabel(e.showShadow))), nil
	case whatUpper == "FILE":
		return command.WithMessage(fmt.Sprintf("File=%s %s %s", e.filename, e.filetype, e.filemode)), nil
	case strings.HasPrefix(whatUpper, "COLOR "):
		areaWord := strings.TrimSpace(whatUpper[len("COLOR "):])
		area, ok := command.ParseColorArea(areaWord)
		if !ok {
			return command.Result{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown QUERY: %s", what)
		}
		if v, ok := e.colorOverrides[area.String()]; ok {
			return command.WithMessage(fmt.Sprintf("Color %s=%s", area.String(), v)), nil
		}
		return command.Result{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown QUERY: %s", what)
	case strings.HasPrefix(whatUpper, "PF"):
		numStr := strings.TrimSpace(whatUpper[len("PF"):])
		n, convErr := strconv.Atoi(numStr)
		if convErr != nil || n < 1 || n > 24 {
			return command.Result{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown QUERY: %s", what)
		}
		v := e.pfKeys[n]
		return command.WithMessage(fmt.Sprintf("Pf%d=%s", n, v)), nil
	default:
		return command.Result{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown QUERY: %s", what)
	}
}

func (e *Editor) cmdMacro(nameAndArgs string) (command.Result, error) {
	if e.macroRunner == nil {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "No macro engine configured")
	}
	return e.macroRunner.RunMacro(nameAndArgs)
}

func (e *Editor) cmdUndo() (command.Result, error) {
	snap, err := e.undo.Restore()
	if err != nil {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "Nothing to undo")
	}
	e.buf = buffer.FromLines(snap.Lines, buffer.WithRecordFormat(e.buf.RecFm()))
	e.currentLine = snap.Cursor
	e.altCount = snap.AltCount
	e.hasAllFilter = false
	e.allFilter = nil
	return command.Ok(), nil
}

func (e *Editor) cmdAll(tgt *target.Target) (command.Result, error) {
	if tgt == nil {
		e.hasAllFilter = false
		e.allFilter = nil
		return command.WithMessage("ALL reset"), nil
	}
	vis := make([]bool, e.buf.Len())
	count := 0
	for i := 1; i <= e.buf.Len(); i++ {
		text, _ := e.buf.LineText(i)
		if tgt.MatchesLine(e.caseRespect, text) {
			vis[i-1] = true
			count++
		}
	}
	e.allFilter = vis
	e.hasAllFilter = true
	return command.WithMessage(fmt.Sprintf("%d line(s) displayed", count)), nil
}

func (e *Editor) cmdSort(sa command.SortArgs) (command.Result, error) {
	e.snapshot()

	start := e.currentLine
	if start == 0 {
		start = 1
	}
	end := e.buf.Len()
	if sa.Target != nil {
		if r, ok := sa.Target.Resolve(e.currentLine, e.buf.Len(), e.caseRespect, e.lineText); ok {
			end = r
		}
	}
	if start > end || start < 1 || end > e.buf.Len() {
		return command.Result{}, xerrors.New(xerrors.InvalidCommand, "Nothing to sort")
	}

	lines := make([]string, end-start+1)
	for i := start; i <= end; i++ {
		lines[i-start], _ = e.buf.LineText(i)
	}

	sortKey := func(s string) string {
		runes := []rune(s)
		lo := 0
		hi := len(runes)
		if sa.ColStart != nil {
			lo = *sa.ColStart - 1
			if lo < 0 {
				lo = 0
			}
			if lo > len(runes) {
				lo = len(runes)
			}
		}
		if sa.ColEnd != nil {
			hi = *sa.ColEnd
			if hi > len(runes) {
				hi = len(runes)
			}
		}
		if hi < lo {
			hi = lo
		}
		return string(runes[lo:hi])
	}

	sort.SliceStable(lines, func(i, j int) bool {
		ki, kj := sortKey(lines[i]), sortKey(lines[j])
		if sa.Ascending {
			return ki < kj
		}
		return ki > kj
	})

	for i, text := range lines {
		e.buf.SetText(start+i, text)
	}

	dir := "ascending"
	if !sa.Ascending {
		dir = "descending"
	}
	return command.WithMessage(fmt.Sprintf("%d line(s) sorted %s", len(lines), dir)), nil
}

func (e *Editor) cmdStackOrQueue(n int, lifo bool) (command.Result, error) {
	if e.stack == nil {
		return command.Ok(), nil
	}
	start := e.currentLine
	if start == 0 {
		start = 1
	}
	end := start + n - 1
	if end > e.buf.Len() {
		end = e.buf.Len()
	}
	if start > end {
		return command.Ok(), nil
	}
	lines := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		text, _ := e.buf.LineText(i)
		lines = append(lines, text)
	}
	if lifo {
		e.stack.Push(lines)
	} else {
		e.stack.Enqueue(lines)
	}
	return command.Ok(), nil
}

func (e *Editor) cmdHelp() command.Result {
	return command.WithMessage(
		"Commands: UP DOWN TOP BOTTOM FORWARD BACKWARD LOCATE CHANGE INPUT DELETE " +
			"FILE SAVE QUIT QQUIT GET SET QUERY SORT ALL UNDO CURSOR STACK QUEUE " +
			"MACRO REFRESH HELP",
	)
}
