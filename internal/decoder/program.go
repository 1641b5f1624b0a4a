package decoder

import (
	"fmt"

	"github.com/dokzlo13/ledremote/internal/jsoncmd"
)

// Runner executes command file entries.
type Runner interface {
	Run(moduleID uint8, fileName, key string) (jsoncmd.Result, error)
}

// JSONProgram resolves codes through a JSON command file.
type JSONProgram struct {
	runner   Runner
	moduleID uint8
	file     string
	keyFmt   string
}

// NewJSONProgram creates a program reading fileName, formatting codes with
// keyFmt, and holding the buffer lock as moduleID.
func NewJSONProgram(runner Runner, moduleID uint8, fileName, keyFmt string) *JSONProgram {
	return &JSONProgram{
		runner:   runner,
		moduleID: moduleID,
		file:     fileName,
		keyFmt:   keyFmt,
	}
}

// NewIRJSONProgram reads /ir.json with hex keys such as "0xFF02FD".
func NewIRJSONProgram(runner Runner) *JSONProgram {
	return NewJSONProgram(runner, jsoncmd.ModuleIR, "/ir.json", "0x%X")
}

// NewRFProgram reads /remote433.json with decimal keys.
func NewRFProgram(runner Runner) *JSONProgram {
	return NewJSONProgram(runner, jsoncmd.ModuleRemote, "/remote433.json", "%d")
}

// Key returns the command file key for code.
func (p *JSONProgram) Key(code uint32) string {
	return fmt.Sprintf(p.keyFmt, code)
}

// Dispatch implements Program.
func (p *JSONProgram) Dispatch(code uint32) (bool, error) {
	res, err := p.runner.Run(p.moduleID, p.file, p.Key(code))
	if err != nil {
		return false, err
	}
	return res == jsoncmd.ResultRepeatable, nil
}
