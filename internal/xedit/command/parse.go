package command

import (
	"strconv"
	"strings"

	xerrors "github.com/navicore/xedit/internal/xedit/errors"
	"github.com/navicore/xedit/internal/xedit/target"
)

// Parse parses a single command-line string into a Command.
func Parse(input string) (Command, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Command{Kind: Nop}, nil
	}

	if strings.HasPrefix(input, "/") {
		tgt, err := target.Parse(input)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Locate, Target: tgt}, nil
	}

	word, args := splitFirstWord(input)
	name, ok := lookupCommand(word)
	if !ok {
		return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown command: %s", word)
	}

	switch name {
	case "UP":
		n, err := parseOptionalCount(args)
		return Command{Kind: Up, Count: n}, err
	case "DOWN", "NEXT":
		n, err := parseOptionalCount(args)
		return Command{Kind: Down, Count: n}, err
	case "TOP":
		return Command{Kind: Top}, nil
	case "BOTTOM":
		return Command{Kind: Bottom}, nil
	case "FORWARD":
		n, err := parseOptionalCount(args)
		return Command{Kind: Forward, Count: n}, err
	case "BACKWARD":
		n, err := parseOptionalCount(args)
		return Command{Kind: Backward, Count: n}, err
	case "LEFT":
		n, err := parseOptionalCount(args)
		return Command{Kind: Left, Count: n}, err
	case "RIGHT":
		n, err := parseOptionalCount(args)
		return Command{Kind: Right, Count: n}, err
	case "LOCATE":
		if args == "" {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "LOCATE requires a target")
		}
		tgt, err := target.Parse(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Locate, Target: tgt}, nil
	case "CHANGE":
		return parseChangeArgs(args)
	case "CURSOR":
		return parseCursorArgs(args)
	case "INPUT":
		if args == "" {
			return Command{Kind: Input}, nil
		}
		return Command{Kind: Input, Text: args, HasText: true}, nil
	case "DELETE":
		if args == "" {
			return Command{Kind: Delete}, nil
		}
		tgt, err := target.Parse(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: Delete, Target: tgt}, nil
	case "FILE":
		return Command{Kind: File}, nil
	case "SAVE":
		return Command{Kind: Save}, nil
	case "QUIT":
		return Command{Kind: Quit}, nil
	case "QQUIT":
		return Command{Kind: QQuit}, nil
	case "GET":
		if args == "" {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "GET requires a filename")
		}
		return Command{Kind: Get, Text: args, HasText: true}, nil
	case "SET":
		return parseSetArgs(args)
	case "QUERY":
		return Command{Kind: Query, QueryWhat: args}, nil
	case "MACRO":
		if args == "" {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "MACRO requires a filename")
		}
		return Command{Kind: Macro, Text: args, HasText: true}, nil
	case "ALL":
		if args == "" {
			return Command{Kind: All}, nil
		}
		tgt, err := target.Parse(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: All, Target: tgt}, nil
	case "SORT":
		return parseSortArgs(args)
	case "STACK":
		n, err := parseOptionalCount(args)
		return Command{Kind: Stack, Count: n}, err
	case "QUEUE":
		n, err := parseOptionalCount(args)
		return Command{Kind: Queue, Count: n}, err
	case "UNDO":
		return Command{Kind: Undo}, nil
	case "REFRESH":
		return Command{Kind: Refresh}, nil
	case "HELP":
		return Command{Kind: Help}, nil
	default:
		return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown command: %s", word)
	}
}

func splitFirstWord(input string) (string, string) {
	idx := strings.IndexFunc(input, isSpace)
	if idx < 0 {
		return input, ""
	}
	return input[:idx], strings.TrimSpace(input[idx:])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func parseOptionalCount(args string) (int, error) {
	if args == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(args)
	if err != nil {
		return 0, xerrors.Newf(xerrors.InvalidCommand, "Invalid count: %s", args)
	}
	return n, nil
}

// parseChangeArgs parses `Dfrom-D-to-D [target] [count]`, where D is
// whatever character starts args.
func parseChangeArgs(args string) (Command, error) {
	if args == "" {
		return Command{}, xerrors.New(xerrors.InvalidCommand, "CHANGE requires /old/new/ arguments")
	}
	delim := args[0]
	rest := args[1:]

	fromEnd := strings.IndexByte(rest, delim)
	if fromEnd < 0 {
		return Command{}, xerrors.New(xerrors.InvalidCommand, "CHANGE: missing delimiter after search string")
	}
	from := rest[:fromEnd]

	afterFrom := rest[fromEnd+1:]
	var to, remainder string
	if toEnd := strings.IndexByte(afterFrom, delim); toEnd >= 0 {
		to = afterFrom[:toEnd]
		remainder = strings.TrimSpace(afterFrom[toEnd+1:])
	} else {
		to = afterFrom
		remainder = ""
	}

	cmd := Command{Kind: Change, From: from, To: to}
	if remainder == "" {
		return cmd, nil
	}
	if n, err := strconv.Atoi(remainder); err == nil {
		cmd.ChangeN = &n
		return cmd, nil
	}
	parts := strings.SplitN(remainder, " ", 2)
	tgt, err := target.Parse(parts[0])
	if err != nil {
		return Command{}, err
	}
	cmd.Target = tgt
	if len(parts) > 1 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			cmd.ChangeN = &n
		}
	}
	return cmd, nil
}

func parseCursorArgs(args string) (Command, error) {
	if args == "" {
		return Command{}, xerrors.New(xerrors.InvalidCommand, "CURSOR requires HOME or FILE line col")
	}
	sub, subargs := splitFirstWord(args)
	switch strings.ToUpper(sub) {
	case "HOME", "H":
		return Command{Kind: Cursor, CursorTarget: CursorTarget{Home: true}}, nil
	case "FILE", "F":
		parts := strings.Fields(subargs)
		if len(parts) < 2 {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "CURSOR FILE requires line and col")
		}
		line, err := strconv.Atoi(parts[0])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Invalid line number: %s", parts[0])
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Invalid column: %s", parts[1])
		}
		return Command{Kind: Cursor, CursorTarget: CursorTarget{Line: line, Col: col}}, nil
	default:
		return Command{}, xerrors.Newf(xerrors.InvalidCommand, "CURSOR: expected HOME or FILE, got: %s", sub)
	}
}

func parseSortArgs(args string) (Command, error) {
	sa := SortArgs{Ascending: true}
	remaining := strings.TrimSpace(args)

	if remaining != "" {
		first := remaining[0]
		switch {
		case first == '/' || first == ':' || first == '+' || first == '-' || first == '*':
			var end int
			switch first {
			case '/':
				if pos := strings.IndexByte(remaining[1:], '/'); pos >= 0 {
					end = pos + 2
				} else {
					end = len(remaining)
				}
			case '*':
				end = 1
			default:
				if idx := strings.IndexFunc(remaining, isSpace); idx >= 0 {
					end = idx
				} else {
					end = len(remaining)
				}
			}
			tgt, err := target.Parse(remaining[:end])
			if err != nil {
				return Command{}, err
			}
			sa.Target = tgt
			remaining = strings.TrimSpace(remaining[end:])
		case first >= '0' && first <= '9':
			end := len(remaining)
			if idx := strings.IndexFunc(remaining, isSpace); idx >= 0 {
				end = idx
			}
			word := remaining[:end]
			if _, err := strconv.ParseInt(word, 10, 64); err == nil {
				tgt, err := target.Parse(word)
				if err != nil {
					return Command{}, err
				}
				sa.Target = tgt
				remaining = strings.TrimSpace(remaining[end:])
			}
		}
	}

	if remaining != "" {
		word, rest := splitFirstWord(remaining)
		switch strings.ToUpper(word) {
		case "A", "ASCENDING":
			sa.Ascending = true
			remaining = rest
		case "D", "DESCENDING":
			sa.Ascending = false
			remaining = rest
		}
	}

	if remaining != "" {
		word, rest := splitFirstWord(remaining)
		n, err := strconv.Atoi(word)
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Invalid column number: %s", word)
		}
		sa.ColStart = &n
		remaining = rest
	}
	if remaining != "" {
		word, _ := splitFirstWord(remaining)
		n, err := strconv.Atoi(word)
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Invalid column number: %s", word)
		}
		sa.ColEnd = &n
	}

	return Command{Kind: Sort, SortArgs: sa}, nil
}

func matchesAbbrev(input, full string, min int) bool {
	return len(input) >= min && strings.HasPrefix(full, input)
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToUpper(s) {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, xerrors.Newf(xerrors.InvalidCommand, "Expected ON or OFF, got: %s", s)
	}
}

func parseSetArgs(args string) (Command, error) {
	if args == "" {
		return Command{}, xerrors.New(xerrors.InvalidCommand, "SET requires a subcommand")
	}
	sub, subargs := splitFirstWord(args)
	upper := strings.ToUpper(sub)

	switch {
	case matchesAbbrev(upper, "TRUNCATE", 2):
		n, err := strconv.Atoi(subargs)
		if err != nil {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "SET TRUNC requires a column number")
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetTrunc, N: n}}, nil

	case matchesAbbrev(upper, "ZONE", 2):
		parts := strings.Fields(subargs)
		if len(parts) != 2 {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "SET ZONE requires left and right columns")
		}
		left, err := strconv.Atoi(parts[0])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET ZONE: invalid left column: %s", parts[0])
		}
		right, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET ZONE: invalid right column: %s", parts[1])
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetZone, ZoneLeft: left, ZoneRight: right}}, nil

	case matchesAbbrev(upper, "VERIFY", 2):
		parts := strings.Fields(subargs)
		if len(parts) != 2 {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "SET VERIFY requires start and end columns")
		}
		start, err := strconv.Atoi(parts[0])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET VERIFY: invalid start column: %s", parts[0])
		}
		end, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET VERIFY: invalid end column: %s", parts[1])
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetVerify, VerifyStart: start, VerifyEnd: end}}, nil

	case matchesAbbrev(upper, "MSGLINE", 3):
		n, err := strconv.Atoi(subargs)
		if err != nil {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "SET MSGLINE requires a row number")
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetMsgLine, N: n}}, nil

	case matchesAbbrev(upper, "NUMBER", 2):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetNumber, Bool: b}}, err

	case matchesAbbrev(upper, "PREFIX", 2):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetPrefix, Bool: b}}, err

	case matchesAbbrev(upper, "SCALE", 2):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetScale, Bool: b}}, err

	case matchesAbbrev(upper, "CURLINE", 3):
		switch strings.ToUpper(subargs) {
		case "M", "MIDDLE":
			return Command{Kind: Set, Set: SetCommand{Kind: SetCurLine, CurLine: CurLinePosition{Middle: true}}}, nil
		default:
			n, err := strconv.Atoi(subargs)
			if err != nil {
				return Command{}, xerrors.New(xerrors.InvalidCommand, "SET CURLINE requires row number or M")
			}
			return Command{Kind: Set, Set: SetCommand{Kind: SetCurLine, CurLine: CurLinePosition{Row: n}}}, nil
		}

	case matchesAbbrev(upper, "CASE", 2):
		var cs CaseSetting
		switch strings.ToUpper(subargs) {
		case "M", "MIXED":
			cs = CaseMixed
		case "U", "UPPER":
			cs = CaseUpper
		case "R", "RESPECT":
			cs = CaseRespect
		case "I", "IGNORE":
			cs = CaseIgnore
		default:
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET CASE: expected MIXED/UPPER/RESPECT/IGNORE, got: %s", subargs)
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetCase, Case: cs}}, nil

	case matchesAbbrev(upper, "WRAP", 2):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetWrap, Bool: b}}, err

	case matchesAbbrev(upper, "HEX", 3):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetHex, Bool: b}}, err

	case matchesAbbrev(upper, "RESERVED", 3):
		rowStr, rest := splitFirstWord(subargs)
		row, err := strconv.Atoi(rowStr)
		if err != nil {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET RESERVED: invalid row: %s", rowStr)
		}
		if rest == "" || strings.EqualFold(rest, "OFF") {
			return Command{Kind: Set, Set: SetCommand{Kind: SetReservedOff, N: row}}, nil
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetReserved, N: row, ReservedText: rest}}, nil

	case matchesAbbrev(upper, "COLOR", 3) || matchesAbbrev(upper, "COLOUR", 3):
		areaStr, color := splitFirstWord(subargs)
		if color == "" {
			return Command{}, xerrors.New(xerrors.InvalidCommand, "SET COLOR requires area and color")
		}
		area, ok := ParseColorArea(areaStr)
		if !ok {
			return Command{}, xerrors.Newf(xerrors.InvalidCommand, "SET COLOR: unknown area: %s", areaStr)
		}
		return Command{Kind: Set, Set: SetCommand{Kind: SetColor, ColorArea: area, ColorName: strings.ToUpper(color)}}, nil

	case matchesAbbrev(upper, "SHADOW", 3):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetShadow, Bool: b}}, err

	case matchesAbbrev(upper, "STAY", 2):
		b, err := parseOnOff(subargs)
		return Command{Kind: Set, Set: SetCommand{Kind: SetStay, Bool: b}}, err

	default:
		if numStr, ok := strings.CutPrefix(upper, "PF"); ok {
			num, err := strconv.Atoi(numStr)
			if err != nil {
				return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Invalid PF key number: %s", numStr)
			}
			if num < 1 || num > 24 {
				return Command{}, xerrors.Newf(xerrors.InvalidCommand, "PF key must be 1-24, got: %d", num)
			}
			if subargs == "" || strings.EqualFold(subargs, "OFF") {
				return Command{Kind: Set, Set: SetCommand{Kind: SetPf, N: num}}, nil
			}
			return Command{Kind: Set, Set: SetCommand{Kind: SetPf, N: num, PfText: subargs}}, nil
		}
		return Command{}, xerrors.Newf(xerrors.InvalidCommand, "Unknown SET subcommand: %s", sub)
	}
}
