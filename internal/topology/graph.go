package topology

// Graph is the correlated view of one snapshot. The id indexes are built
// once, after every build step has finished, and keep the first entity seen
// for each id.
type Graph struct {
	Vpcs           []*Vpc
	Subnets        []*Subnet
	SecurityGroups []*SecurityGroup
	Interfaces     []*Interface
	NetworkAcls    []*NetworkAcl
	Instances      []*Instance

	vpcs           map[string]*Vpc
	subnets        map[string]*Subnet
	securityGroups map[string]*SecurityGroup
	interfaces     map[string]*Interface
	networkAcls    map[string]*NetworkAcl
	instances      map[string]*Instance
}

func newGraph(vpcs []*Vpc, subnets []*Subnet, sgs []*SecurityGroup, enis []*Interface, nacls []*NetworkAcl, instances []*Instance) *Graph {
	return &Graph{
		Vpcs:           vpcs,
		Subnets:        subnets,
		SecurityGroups: sgs,
		Interfaces:     enis,
		NetworkAcls:    nacls,
		Instances:      instances,

		vpcs:           indexByID(vpcs, vpcID),
		subnets:        indexByID(subnets, subnetID),
		securityGroups: indexByID(sgs, securityGroupID),
		interfaces:     indexByID(enis, interfaceID),
		networkAcls:    indexByID(nacls, networkAclID),
		instances:      indexByID(instances, instanceID),
	}
}

func (g *Graph) Vpc(id string) (*Vpc, bool) {
	v, ok := g.vpcs[id]
	return v, ok
}

func (g *Graph) Subnet(id string) (*Subnet, bool) {
	s, ok := g.subnets[id]
	return s, ok
}

func (g *Graph) SecurityGroup(id string) (*SecurityGroup, bool) {
	sg, ok := g.securityGroups[id]
	return sg, ok
}

func (g *Graph) Interface(id string) (*Interface, bool) {
	i, ok := g.interfaces[id]
	return i, ok
}

func (g *Graph) NetworkAcl(id string) (*NetworkAcl, bool) {
	n, ok := g.networkAcls[id]
	return n, ok
}

func (g *Graph) Instance(id string) (*Instance, bool) {
	i, ok := g.instances[id]
	return i, ok
}

// VpcOf resolves the VPC a subnet belongs to.
func (g *Graph) VpcOf(s *Subnet) (*Vpc, bool) {
	return g.Vpc(s.VpcID)
}

// NetworkAclsOf resolves the ACLs associated with a subnet.
func (g *Graph) NetworkAclsOf(s *Subnet) []*NetworkAcl {
	var out []*NetworkAcl
	for _, id := range s.NetworkAclIDs {
		if n, ok := g.NetworkAcl(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// SubnetsOf resolves the subnets associated with an ACL.
func (g *Graph) SubnetsOf(n *NetworkAcl) []*Subnet {
	var out []*Subnet
	for _, id := range n.SubnetIDs {
		if s, ok := g.Subnet(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// Stats counts the entities of each kind.
type Stats struct {
	Vpcs           int
	Subnets        int
	SecurityGroups int
	Interfaces     int
	NetworkAcls    int
	Instances      int
	PublicSubnets  int
}

func (g *Graph) Stats() Stats {
	st := Stats{
		Vpcs:           len(g.Vpcs),
		Subnets:        len(g.Subnets),
		SecurityGroups: len(g.SecurityGroups),
		Interfaces:     len(g.Interfaces),
		NetworkAcls:    len(g.NetworkAcls),
		Instances:      len(g.Instances),
	}
	for _, s := range g.Subnets {
		if s.Public {
			st.PublicSubnets++
		}
	}
	return st
}
