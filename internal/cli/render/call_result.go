package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/rac-sri/runic/internal/domain"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	valueStyle   = color.New(color.FgWhite, color.Bold)
	hashStyle    = color.New(color.FgBlue)
)

// CallResultRenderer prints the outcome of a contract call.
type CallResultRenderer struct {
	out  io.Writer
	json bool
}

func NewCallResultRenderer(out io.Writer, asJSON bool) *CallResultRenderer {
	return &CallResultRenderer{out: out, json: asJSON}
}

func (r *CallResultRenderer) Render(result *domain.CallResult) error {
	if r.json {
		return r.renderJSON(result)
	}

	switch result.Kind {
	case domain.ReadResult:
		if len(result.Values) == 0 {
			fmt.Fprintln(r.out, successStyle.Sprint("✓ call succeeded (no return value)"))
			return nil
		}
		fmt.Fprintln(r.out, successStyle.Sprint("✓ call succeeded"))
		for i, v := range result.Values {
			fmt.Fprintf(r.out, "  [%d] %s\n", i, valueStyle.Sprint(v))
		}
	case domain.WriteResult:
		fmt.Fprintln(r.out, successStyle.Sprint("✓ transaction sent"))
		fmt.Fprintf(r.out, "  tx: %s\n", hashStyle.Sprint(result.TxHash))
	}
	return nil
}

func (r *CallResultRenderer) renderJSON(result *domain.CallResult) error {
	payload := map[string]any{}
	switch result.Kind {
	case domain.ReadResult:
		payload["kind"] = "read"
		payload["values"] = result.Values
	case domain.WriteResult:
		payload["kind"] = "write"
		payload["txHash"] = result.TxHash
	}

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
