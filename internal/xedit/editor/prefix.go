package editor

import (
	"fmt"

	"github.com/navicore/xedit/internal/xedit/command"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/prefix"
)

// ExecutePrefix applies a parsed prefix-area command typed in the line
// number area beside lineNum. It drives the two-marker block protocol
// (dd/cc/mm/"") and the f/p pending-destination protocol for copy and
// move.
func (e *Editor) ExecutePrefix(lineNum int, cmd prefix.Command) (command.Result, error) {
	e.message = ""
	e.hasMessage = false

	var result command.Result
	var err error

	switch {
	case cmd.IsBlockMarker():
		result, err = e.handleBlockMarker(lineNum, cmd)
	case cmd.Kind == prefix.Following:
		result, err = e.executePendingDestination(lineNum, true)
	case cmd.Kind == prefix.Preceding:
		result, err = e.executePendingDestination(lineNum, false)
	default:
		result, err = e.handleSimplePrefix(lineNum, cmd)
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

func (e *Editor) handleSimplePrefix(lineNum int, cmd prefix.Command) (command.Result, error) {
	switch cmd.Kind {
	case prefix.SetCurrent:
		e.currentLine = lineNum
		return command.Ok(), nil

	case prefix.Delete:
		e.snapshot()
		e.buf.Delete(lineNum)
		e.altCount++
		if e.currentLine > e.buf.Len() {
			e.currentLine = e.buf.Len()
		}
		return command.Ok(), nil

	case prefix.Insert, prefix.Add:
		e.snapshot()
		blanks := make([]string, cmd.N)
		e.buf.InsertLinesAfter(lineNum, blanks)
		e.altCount += cmd.N
		e.currentLine = lineNum + cmd.N
		return command.WithMessage(fmt.Sprintf("%d line(s) added", cmd.N)), nil

	case prefix.Duplicate:
		e.snapshot()
		text, ok := e.buf.LineText(lineNum)
		if !ok {
			return command.Result{}, xerrors.New(xerrors.PrefixError, "Invalid prefix target line")
		}
		copies := make([]string, cmd.N)
		for i := range copies {
			copies[i] = text
		}
		e.buf.InsertLinesAfter(lineNum, copies)
		e.altCount += cmd.N
		return command.WithMessage(fmt.Sprintf("%d line(s) duplicated", cmd.N)), nil

	case prefix.Copy:
		e.pendingOp = &prefix.PendingOperation{Type: prefix.OpCopy, SourceStart: lineNum, SourceEnd: lineNum}
		return command.WithMessage("Copy pending — use F or P for destination"), nil

	case prefix.Move:
		e.pendingOp = &prefix.PendingOperation{Type: prefix.OpMove, SourceStart: lineNum, SourceEnd: lineNum}
		return command.WithMessage("Move pending — use F or P for destination"), nil

	case prefix.ShiftRight:
		e.snapshot()
		text, ok := e.buf.LineText(lineNum)
		if !ok {
			return command.Result{}, xerrors.New(xerrors.PrefixError, "Invalid prefix target line")
		}
		pad := ""
		for i := 0; i < cmd.N; i++ {
			pad += " "
		}
		e.buf.SetText(lineNum, pad+text)
		e.altCount++
		return command.Ok(), nil

	case prefix.ShiftLeft:
		e.snapshot()
		text, ok := e.buf.LineText(lineNum)
		if !ok {
			return command.Result{}, xerrors.New(xerrors.PrefixError, "Invalid prefix target line")
		}
		runes := []rune(text)
		n := cmd.N
		if n > len(runes) {
			n = len(runes)
		}
		e.buf.SetText(lineNum, string(runes[n:]))
		e.altCount++
		return command.Ok(), nil

	default:
		return command.Result{}, xerrors.New(xerrors.PrefixError, "Unhandled prefix command")
	}
}

func (e *Editor) handleBlockMarker(lineNum int, cmd prefix.Command) (command.Result, error) {
	blockType, _ := cmd.BlockTypeOf()

	if e.pendingBlock == nil {
		e.pendingBlock = &prefix.PendingBlock{Type: blockType, StartLine: lineNum}
		return command.Ok(), nil
	}

	if e.pendingBlock.Type != blockType {
		return command.Result{}, xerrors.New(xerrors.PrefixError, "Conflicting block operation pending")
	}

	start, end := e.pendingBlock.StartLine, lineNum
	if start > end {
		start, end = end, start
	}
	e.pendingBlock = nil

	switch blockType {
	case prefix.BlockDelete:
		e.snapshot()
		count := end - start + 1
		e.buf.DeleteRange(start, end)
		e.altCount += count
		if e.currentLine > e.buf.Len() {
			e.currentLine = e.buf.Len()
		}
		return command.WithMessage(fmt.Sprintf("%d line(s) deleted", count)), nil

	case prefix.BlockCopy:
		e.pendingOp = &prefix.PendingOperation{Type: prefix.OpCopy, SourceStart: start, SourceEnd: end}
		return command.WithMessage("Block marked — use F or P for destination"), nil

	case prefix.BlockMove:
		e.pendingOp = &prefix.PendingOperation{Type: prefix.OpMove, SourceStart: start, SourceEnd: end}
		return command.WithMessage("Block marked — use F or P for destination"), nil

	case prefix.BlockDuplicate:
		e.snapshot()
		lines := make([]string, 0, end-start+1)
		for i := start; i <= end; i++ {
			text, _ := e.buf.LineText(i)
			lines = append(lines, text)
		}
		e.buf.InsertLinesAfter(end, lines)
		e.altCount += len(lines)
		return command.WithMessage("Block duplicated"), nil

	default:
		return command.Result{}, xerrors.New(xerrors.PrefixError, "Unhandled block type")
	}
}

// executePendingDestination completes a pending copy or move against the
// f (following) or p (preceding) line.
func (e *Editor) executePendingDestination(lineNum int, following bool) (command.Result, error) {
	op := e.pendingOp
	if op == nil {
		return command.Result{}, xerrors.New(xerrors.PrefixError, "No pending copy/move operation")
	}
	e.pendingOp = nil

	dest := lineNum - 1
	if following {
		dest = lineNum
	}

	lines := make([]string, 0, op.SourceEnd-op.SourceStart+1)
	for i := op.SourceStart; i <= op.SourceEnd; i++ {
		text, _ := e.buf.LineText(i)
		lines = append(lines, text)
	}

	e.snapshot()
	e.buf.InsertLinesAfter(dest, lines)

	if op.Type == prefix.OpMove {
		srcStart, srcEnd := op.SourceStart, op.SourceEnd
		if dest < srcStart {
			srcStart += len(lines)
			srcEnd += len(lines)
		}
		e.buf.DeleteRange(srcStart, srcEnd)
	}

	e.altCount += len(lines)
	if e.currentLine > e.buf.Len() {
		e.currentLine = e.buf.Len()
	}

	verb := "copied"
	if op.Type == prefix.OpMove {
		verb = "moved"
	}
	return command.WithMessage(fmt.Sprintf("%d line(s) %s", len(lines), verb)), nil
}
