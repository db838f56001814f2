package domain

import (
	"strings"

	"github.com/rac-sri/runic/internal/abi"
)

// HiddenSuffix marks deployments that were folded away by proxy resolution.
// A hidden deployment stays in the list so its interface remains usable as a
// donor for the implementation behind it.
const HiddenSuffix = "_hidden"

// Deployment is a single contract discovered from a broadcast run artifact.
//
// Address is where the contract bytecode lives; CallableAddress is where calls
// must be sent. The two differ only when proxy resolution has linked this
// deployment to a proxy on the same chain.
type Deployment struct {
	Name            string
	Address         string
	CallableAddress string
	Network         string
	ChainID         uint64
	TxHash          string
	ABIPath         string
	Functions       []abi.ContractFunction
	ConstructorArgs []string
	IsProxy         bool

	// ImplementationConfirmed is set when the user explicitly picked an
	// interface for this deployment, overriding whatever the scanner found.
	ImplementationConfirmed bool
}

// Hidden reports whether this deployment was renamed out of the primary
// selectable list by the proxy resolver.
func (d *Deployment) Hidden() bool {
	return strings.HasSuffix(d.Name, HiddenSuffix)
}

// UseInterfaceFrom replaces this deployment's function list with the donor's.
// This is the user-override path for proxies whose scanned interface is the
// thin proxy ABI rather than the implementation's.
func (d *Deployment) UseInterfaceFrom(donor *Deployment) {
	d.Functions = donor.Functions
	d.ABIPath = donor.ABIPath
	d.ImplementationConfirmed = true
}

// BaseName returns the deployment name with the hidden suffix stripped.
func (d *Deployment) BaseName() string {
	return strings.TrimSuffix(d.Name, HiddenSuffix)
}
