package topology

import (
	"strings"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

// ClassifySubnets marks a subnet public when its route table routes to an
// internet gateway. The table explicitly associated with the subnet wins;
// otherwise the main table of the subnet's VPC applies. Subnets with no
// resolvable table stay private. It returns the number of public subnets.
func ClassifySubnets(g *Graph, tables []snapshot.RouteTable) int {
	explicit := make(map[string]*snapshot.RouteTable)
	main := make(map[string]*snapshot.RouteTable)
	for i := range tables {
		rt := &tables[i]
		for _, id := range rt.SubnetIDs {
			if _, ok := explicit[id]; !ok {
				explicit[id] = rt
			}
		}
		if rt.Main {
			if _, ok := main[rt.VpcID]; !ok {
				main[rt.VpcID] = rt
			}
		}
	}

	public := 0
	for _, s := range g.Subnets {
		rt, ok := explicit[s.ID]
		if !ok {
			rt, ok = main[s.VpcID]
		}
		s.Public = ok && routesToInternet(rt)
		if s.Public {
			public++
		}
	}
	return public
}

func routesToInternet(rt *snapshot.RouteTable) bool {
	for _, r := range rt.Routes {
		if r.State == "blackhole" {
			continue
		}
		if strings.HasPrefix(r.GatewayID, "igw-") {
			return true
		}
	}
	return false
}
