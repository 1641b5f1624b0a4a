package jsoncmd

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// RandomEffect asks PresetFallback to pick a random effect mode.
const RandomEffect = -1

// Command is a parsed command file entry.
type Command interface {
	isCommand()
}

// SavePreset stores the current state as preset ID.
type SavePreset struct {
	ID int
}

// State is a JSON state document.
type State struct {
	JSON []byte
}

// IncBrightness steps the brightness up. It is repeatable.
type IncBrightness struct{}

// DecBrightness steps the brightness down. It is repeatable.
type DecBrightness struct{}

// PresetFallback applies a preset, or an effect and palette if the preset is missing.
type PresetFallback struct {
	Preset  uint8
	Effect  int // RandomEffect or a mode id
	Palette uint8
}

// Query is a "win&..." request for the query-string API.
type Query struct {
	Fragment   string
	Repeatable bool
}

// Unknown is an entry with no action.
type Unknown struct {
	Raw string
}

func (SavePreset) isCommand()     {}
func (State) isCommand()          {}
func (IncBrightness) isCommand()  {}
func (DecBrightness) isCommand()  {}
func (PresetFallback) isCommand() {}
func (Query) isCommand()          {}
func (Unknown) isCommand()        {}

// ParseOptions carries the settings that shape a parsed command.
type ParseOptions struct {
	ApplyToAllSelected bool
	MainSegment        int
}

// Parse turns a command file entry into a Command. entry is the value stored
// under the remote code key, e.g. {"cmd":"T=2","rpt":true}.
func Parse(entry gjson.Result, opts ParseOptions) Command {
	cmd := entry.Get("cmd")

	switch {
	case cmd.IsObject():
		if ps := cmd.Get("psave"); ps.Exists() {
			return SavePreset{ID: int(ps.Int())}
		}
		return State{JSON: collapseSegments(cmd.Raw, opts.ApplyToAllSelected)}

	case cmd.Type == gjson.String && strings.HasPrefix(cmd.Str, "!"):
		return parseBang(cmd.Str, entry)

	case cmd.Type == gjson.String:
		return parseQuery(cmd.Str, entry, opts)
	}

	return Unknown{Raw: entry.Raw}
}

// collapseSegments replaces a "seg" array with its first entry, without id,
// so that one definition applies to every selected segment.
func collapseSegments(raw string, applyAll bool) []byte {
	seg := gjson.Get(raw, "seg")
	if !applyAll || !seg.IsArray() {
		return []byte(raw)
	}

	first := seg.Get("0")
	if !first.IsObject() {
		out, err := sjson.Delete(raw, "seg")
		if err != nil {
			return []byte(raw)
		}
		return []byte(out)
	}

	tmpl, err := sjson.Delete(first.Raw, "id")
	if err != nil {
		return []byte(raw)
	}
	out, err := sjson.SetRaw(raw, "seg", tmpl)
	if err != nil {
		return []byte(raw)
	}
	return []byte(out)
}

func parseBang(verb string, entry gjson.Result) Command {
	switch {
	case strings.HasPrefix(verb, "!incBri"):
		return IncBrightness{}
	case strings.HasPrefix(verb, "!decBri"):
		return DecBrightness{}
	case strings.HasPrefix(verb, "!presetF"):
		pf := PresetFallback{Preset: 1, Effect: RandomEffect}
		if v := entry.Get("PL"); v.Exists() {
			pf.Preset = uint8(v.Int())
		}
		if v := entry.Get("FX"); v.Exists() {
			pf.Effect = int(uint8(v.Int()))
		}
		if v := entry.Get("FP"); v.Exists() {
			pf.Palette = uint8(v.Int())
		}
		return pf
	}
	return Unknown{Raw: verb}
}

func parseQuery(fragment string, entry gjson.Result, opts ParseOptions) Command {
	repeatable := strings.Index(fragment, "~") > 0 || entry.Get("rpt").Bool()

	if !strings.HasPrefix(fragment, "win&") {
		fragment = "win&" + fragment
	}
	if !opts.ApplyToAllSelected && !strings.Contains(fragment, "SS=") {
		fragment += fmt.Sprintf("&SS=%d", opts.MainSegment)
	}
	return Query{Fragment: fragment, Repeatable: repeatable}
}
