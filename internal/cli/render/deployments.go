package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"

	"github.com/rac-sri/runic/internal/domain"
)

var (
	chainHeaderStyle = color.New(color.BgCyan, color.FgBlack, color.Bold)
	proxyStyle       = color.New(color.FgCyan)
	addressStyle     = color.New(color.FgWhite)
)

// DeploymentsRenderer renders the deployment list grouped by chain. Hidden
// proxy entries are folded into their implementation's row.
type DeploymentsRenderer struct {
	out  io.Writer
	json bool
}

func NewDeploymentsRenderer(out io.Writer, asJSON bool) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out, json: asJSON}
}

func (r *DeploymentsRenderer) Render(deployments []*domain.Deployment) error {
	visible := lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
		return !d.Hidden()
	})

	if r.json {
		return r.renderJSON(visible)
	}

	if len(visible) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byChain := lo.GroupBy(visible, func(d *domain.Deployment) uint64 {
		return d.ChainID
	})
	chainIDs := lo.Keys(byChain)
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for _, chainID := range chainIDs {
		group := byChain[chainID]
		fmt.Fprintln(r.out, chainHeaderStyle.Sprintf(" %s (chain %d) ", group[0].Network, chainID))

		t := table.NewWriter()
		t.SetOutputMirror(r.out)
		t.SetStyle(table.StyleLight)
		t.Style().Options.DrawBorder = false
		t.Style().Format.Header = text.FormatTitle
		t.AppendHeader(table.Row{"Contract", "Address", "Functions", "Kind"})

		for _, d := range group {
			kind := "contract"
			if d.IsProxy {
				kind = proxyStyle.Sprint("proxied")
			}
			t.AppendRow(table.Row{
				d.Name,
				addressStyle.Sprint(d.CallableAddress),
				len(d.Functions),
				kind,
			})
		}
		t.Render()
		fmt.Fprintln(r.out)
	}
	return nil
}

func (r *DeploymentsRenderer) renderJSON(deployments []*domain.Deployment) error {
	type entry struct {
		Name            string `json:"name"`
		Address         string `json:"address"`
		CallableAddress string `json:"callableAddress"`
		Network         string `json:"network"`
		ChainID         uint64 `json:"chainId"`
		Proxied         bool   `json:"proxied"`
		Functions       int    `json:"functions"`
	}
	entries := lo.Map(deployments, func(d *domain.Deployment, _ int) entry {
		return entry{
			Name:            d.Name,
			Address:         d.Address,
			CallableAddress: d.CallableAddress,
			Network:         d.Network,
			ChainID:         d.ChainID,
			Proxied:         d.IsProxy,
			Functions:       len(d.Functions),
		}
	})

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}
