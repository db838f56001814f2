package broadcast

import (
	"strings"

	"github.com/rac-sri/runic/internal/domain"
)

// proxySuffix is the naming convention linking FooProxy to Foo.
const proxySuffix = "Proxy"

type groupKey struct {
	baseName string
	chainID  uint64
}

type addrKey struct {
	address string
	chainID uint64
}

// ResolveProxies links proxy deployments to their implementations, in place,
// in a single pass over the scanned list. Linking a pair rewires the
// implementation's callable address to the proxy and hides the proxy entry
// under a renamed suffix. Deployments on different chains never link.
//
// Two strategies run in order:
//
//  1. Name-based: a "<Base>Proxy" deployment pairs with a "<Base>" deployment
//     on the same chain.
//  2. Argument-based: a deployment whose first constructor argument equals
//     another same-chain deployment's address is treated as its proxy
//     (the ERC1967 constructor shape). Pairs already hidden by the first
//     pass are left untouched.
func ResolveProxies(deployments []*domain.Deployment) {
	groups := make(map[groupKey][]int)
	var groupOrder []groupKey
	byAddress := make(map[addrKey]int)

	for i, d := range deployments {
		key := groupKey{
			baseName: strings.TrimSuffix(d.Name, proxySuffix),
			chainID:  d.ChainID,
		}
		if _, seen := groups[key]; !seen {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], i)
		byAddress[addrKey{address: d.Address, chainID: d.ChainID}] = i
	}

	// Pass 1: name-based pairing. With more than two members the first
	// proxy-named and first plain-named entries pair up; the rest are left
	// alone.
	for _, key := range groupOrder {
		indices := groups[key]
		if len(indices) < 2 {
			continue
		}

		proxyIdx, implIdx := -1, -1
		for _, idx := range indices {
			if strings.HasSuffix(deployments[idx].Name, proxySuffix) {
				if proxyIdx < 0 {
					proxyIdx = idx
				}
			} else if implIdx < 0 {
				implIdx = idx
			}
		}
		if proxyIdx >= 0 && implIdx >= 0 {
			link(deployments[proxyIdx], deployments[implIdx])
		}
	}

	// Pass 2: argument-based pairing. Never undoes a pass-1 hide.
	for proxyIdx, d := range deployments {
		if len(d.ConstructorArgs) == 0 {
			continue
		}
		implIdx, ok := byAddress[addrKey{address: d.ConstructorArgs[0], chainID: d.ChainID}]
		if !ok || implIdx == proxyIdx {
			continue
		}
		if deployments[proxyIdx].Hidden() {
			continue
		}
		link(deployments[proxyIdx], deployments[implIdx])
	}
}

// link rewires impl to be called through proxy and hides the proxy entry.
func link(proxy, impl *domain.Deployment) {
	impl.CallableAddress = proxy.Address
	impl.IsProxy = true
	proxy.Name += domain.HiddenSuffix
}
