// meta_commands.go - #save/#restore/#quit/#play/#picture/#seed preprocessor (§4.5 step 2)

package main

import (
	"strconv"
	"strings"
)

// MetaActions are the side effects a recognized meta-command triggers.
// Interpreter implements this so the tokenizers can stay ignorant of
// snapshot and driver internals.
type MetaActions interface {
	Save()
	Restore()
	Quit()
	SeedRandom(seed uint16)
	ShowBitmap(n uint16)
	OpenScript(name string)
}

// checkHash recognizes a leading meta-command in line and runs its
// effect, returning true if one was found (in which case the line
// produced no tokenizer input).
func checkHash(line string, actions MetaActions) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	lower := strings.ToLower(trimmed)

	switch {
	case strcmpHash(lower, "#save"):
		actions.Save()
		return true
	case strcmpHash(lower, "#restore"):
		actions.Restore()
		return true
	case strcmpHash(lower, "#quit"):
		actions.Quit()
		return true
	case strings.HasPrefix(lower, "#play"):
		name := strings.TrimSpace(trimmed[len("#play"):])
		actions.OpenScript(name)
		return true
	case strings.HasPrefix(lower, "#picture"):
		if n, ok := parseHashArg(trimmed, "#picture"); ok {
			actions.ShowBitmap(n)
		}
		return true
	case strings.HasPrefix(lower, "#seed"):
		if n, ok := parseHashArg(trimmed, "#seed"); ok {
			actions.SeedRandom(n)
		}
		return true
	}
	return false
}

// strcmpHash matches a command keyword allowing only trailing whitespace.
func strcmpHash(lower, keyword string) bool {
	if !strings.HasPrefix(lower, keyword) {
		return false
	}
	rest := strings.TrimSpace(lower[len(keyword):])
	return rest == ""
}

func parseHashArg(trimmed, keyword string) (uint16, bool) {
	rest := strings.TrimSpace(trimmed[len(keyword):])
	n, err := strconv.ParseUint(rest, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}
