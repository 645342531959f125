package command

import "strings"

// tableEntry is one row of the abbreviation table: a full command name and
// the minimum number of leading characters an input must supply to match
// it as a prefix.
type tableEntry struct {
	name string
	min  int
}

// table mirrors IBM XEDIT's abbreviation conventions, extended with
// STACK/QUEUE. Order matters: when more than one entry matches as a
// prefix and no explicit disambiguation rule applies, the first match in
// table order wins.
var table = []tableEntry{
	{"ALL", 3},
	{"BACKWARD", 1},
	{"BOTTOM", 2},
	{"CHANGE", 1},
	{"CURSOR", 3},
	{"DELETE", 3},
	{"DOWN", 2},
	{"FILE", 4},
	{"FORWARD", 1},
	{"GET", 3},
	{"HELP", 4},
	{"INPUT", 1},
	{"LEFT", 2},
	{"LOCATE", 1},
	{"MACRO", 5},
	{"NEXT", 1}, // alias for DOWN
	{"QQUIT", 2},
	{"QUERY", 2},
	{"QUEUE", 3},
	{"QUIT", 4},
	{"REFRESH", 3},
	{"RIGHT", 2},
	{"SAVE", 2},
	{"SET", 3},
	{"SORT", 4},
	{"STACK", 2},
	{"TOP", 1},
	{"UNDO", 4},
	{"UP", 1},
}

// lookupCommand resolves input (case-insensitive) to a canonical command
// name, or false if nothing matches.
func lookupCommand(input string) (string, bool) {
	upper := strings.ToUpper(input)

	for _, e := range table {
		if e.name == upper {
			return e.name, true
		}
	}

	var matches []string
	for _, e := range table {
		if len(upper) >= e.min && strings.HasPrefix(e.name, upper) {
			matches = append(matches, e.name)
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	if upper == "L" && contains(matches, "LOCATE") {
		return "LOCATE", true
	}
	if len(upper) >= 3 && contains(matches, "QUEUE") && contains(matches, "QUERY") {
		return "QUEUE", true
	}
	return matches[0], true
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
