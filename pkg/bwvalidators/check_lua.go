package bwvalidators

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/sourcegraph/conc/pool"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/stringutil"
)

// maxLuaMessageLength caps how much of a script's failure string is
// carried into a violation's message and data fields.
const maxLuaMessageLength = 500

const luaStdlibEnvVar = "BLOCKWATCH_LUA_MODE"

// CheckLuaValidator runs a user-supplied Lua script's "validate(ctx,
// content)" function against each "check-lua"-tagged block. The script
// returns nil to pass or a string explaining the failure.
type CheckLuaValidator struct{}

func NewCheckLuaValidator() *CheckLuaValidator { return &CheckLuaValidator{} }

func (*CheckLuaValidator) Code() string { return "check-lua" }

func (v *CheckLuaValidator) Validate(ctx context.Context, vctx *bwcore.ValidationContext) (map[string][]bwcore.Violation, error) {
	type job struct {
		file       string
		block      bwcore.Block
		scriptPath string
		content    string
	}
	var jobs []job

	for _, file := range sortedFiles(vctx) {
		fb := vctx.BlocksByFile[file]
		for _, bc := range fb.BlocksWithContext {
			scriptPath, ok := bc.Block.Attributes.Get("check-lua")
			if !ok {
				continue
			}
			if strings.TrimSpace(scriptPath) == "" {
				return nil, fmt.Errorf("check-lua requires a non-empty script path in %s:%s at line %d",
					file, blockNameDisplay(bc.Block), bc.Block.StartTagPositionRange.Start.Line)
			}
			jobs = append(jobs, job{
				file:       file,
				block:      bc.Block,
				scriptPath: scriptPath,
				content:    strings.TrimSpace(fb.ContentText(bc.Block)),
			})
		}
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	results := make([]*bwcore.Violation, len(jobs))
	for i, j := range jobs {
		i, j := i, j
		p.Go(func(ctx context.Context) error {
			msg, err := runLuaScript(ctx, j.scriptPath, j.file, j.block, j.content)
			if err != nil {
				return fmt.Errorf("check-lua script error in %s:%s at line %d: %w",
					j.file, blockNameDisplay(j.block), j.block.StartTagPositionRange.Start.Line, err)
			}
			if msg == "" {
				return nil
			}
			violation, err := checkLuaViolation(j.file, j.block, j.scriptPath, msg)
			if err != nil {
				return err
			}
			results[i] = &violation
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	violations := map[string][]bwcore.Violation{}
	for i, j := range jobs {
		if results[i] != nil {
			violations[j.file] = append(violations[j.file], *results[i])
		}
	}
	return violations, nil
}

// luaStateFromEnv returns a Lua state whose available standard library
// is gated by BLOCKWATCH_LUA_MODE:
//   - "sandboxed" (default): base, table, string, and math only; no
//     file or OS access.
//   - "safe": the full standard library, including io/os.
//   - "unsafe": same as safe; gopher-lua has no native module loader to
//     additionally restrict.
func luaStateFromEnv() *lua.LState {
	switch os.Getenv(luaStdlibEnvVar) {
	case "unsafe", "safe":
		L := lua.NewState()
		return L
	default:
		L := lua.NewState(lua.Options{SkipOpenLibs: true})
		for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
			open(L)
		}
		return L
	}
}

func runLuaScript(ctx context.Context, scriptPath, file string, b bwcore.Block, content string) (string, error) {
	scriptContent, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", fmt.Errorf("failed to read Lua script: %s: %w", scriptPath, err)
	}

	L := luaStateFromEnv()
	defer L.Close()
	L.SetContext(ctx)

	if err := L.DoString(string(scriptContent)); err != nil {
		return "", fmt.Errorf("failed to execute Lua script: %s: %w", scriptPath, err)
	}

	validateFn := L.GetGlobal("validate")
	if validateFn.Type() != lua.LTFunction {
		return "", fmt.Errorf("Lua script must define a global 'validate' function")
	}

	ctxTable := L.NewTable()
	ctxTable.RawSetString("file", lua.LString(file))
	ctxTable.RawSetString("line", lua.LNumber(b.StartTagPositionRange.Start.Line))

	attrsTable := L.NewTable()
	for key, value := range b.Attributes {
		attrsTable.RawSetString(key, lua.LString(value))
	}
	ctxTable.RawSetString("attrs", attrsTable)

	if err := L.CallByParam(lua.P{
		Fn:      validateFn,
		NRet:    1,
		Protect: true,
	}, ctxTable, lua.LString(content)); err != nil {
		return "", fmt.Errorf("failed to call validate() in %s: %w", scriptPath, err)
	}

	result := L.Get(-1)
	L.Pop(1)
	switch result.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return stringutil.Truncate(strings.TrimSpace(stringutil.StripANSI(result.String())), maxLuaMessageLength), nil
	default:
		return "", fmt.Errorf("validate() must return nil or a string, got: %s", result.Type().String())
	}
}

func checkLuaViolation(file string, b bwcore.Block, scriptPath, luaError string) (bwcore.Violation, error) {
	message := fmt.Sprintf("Block %s:%s defined at line %d failed Lua check: %s",
		file, blockNameDisplay(b), b.StartTagPositionRange.Start.Line, luaError)
	data, err := json.Marshal(struct {
		Script   string `json:"script"`
		LuaError string `json:"lua_error"`
	}{scriptPath, luaError})
	if err != nil {
		return bwcore.Violation{}, err
	}
	severity, ok := b.Severity()
	if !ok {
		return bwcore.Violation{}, fmt.Errorf("invalid severity attribute on block %s:%s at line %d", file, blockNameDisplay(b), b.StartsAtLine)
	}
	return bwcore.Violation{
		Range:    b.StartTagPositionRange,
		Code:     "check-lua",
		Message:  message,
		Severity: severity,
		Data:     data,
	}, nil
}
