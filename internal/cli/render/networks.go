package render

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rac-sri/runic/internal/network"
)

// NetworkEntry is one row of the networks listing. Err carries a resolution
// failure so the listing can still show the name.
type NetworkEntry struct {
	Info *network.NetworkInfo
	Err  error
}

// NetworksRenderer renders the configured network list.
type NetworksRenderer struct {
	out   io.Writer
	json  bool
	title cases.Caser
}

func NewNetworksRenderer(out io.Writer, asJSON bool) *NetworksRenderer {
	return &NetworksRenderer{
		out:   out,
		json:  asJSON,
		title: cases.Title(language.English),
	}
}

func (r *NetworksRenderer) Render(entries []NetworkEntry) error {
	if r.json {
		return r.renderJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No networks configured")
		return nil
	}

	fmt.Fprintln(r.out, "Available networks:")
	fmt.Fprintln(r.out)
	for _, e := range entries {
		if e.Err != nil {
			fmt.Fprintf(r.out, "  ✗ %s: %v\n", r.title.String(e.Info.Name), e.Err)
			continue
		}
		fmt.Fprintf(r.out, "  ✓ %s (chain %d) %s\n", r.title.String(e.Info.Name), e.Info.ChainID, e.Info.RPCURL)
	}
	return nil
}

func (r *NetworksRenderer) renderJSON(entries []NetworkEntry) error {
	type entry struct {
		Name    string `json:"name"`
		ChainID uint64 `json:"chainId,omitempty"`
		RPCURL  string `json:"rpcUrl,omitempty"`
		Error   string `json:"error,omitempty"`
	}
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		row := entry{Name: e.Info.Name}
		if e.Err != nil {
			row.Error = e.Err.Error()
		} else {
			row.ChainID = e.Info.ChainID
			row.RPCURL = e.Info.RPCURL
		}
		out = append(out, row)
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
