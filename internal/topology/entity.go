// Package topology correlates the raw listings of a snapshot into a single
// cross-referenced graph of VPCs, subnets, interfaces, instances, security
// groups and network ACLs.
//
// Ownership is one-directional: a Vpc owns its subnets and security groups,
// a Subnet owns its interfaces. Reverse navigation, such as from a subnet to
// its VPC or ACLs, goes through the id indexes on Graph.
package topology

import "slices"

type Vpc struct {
	ID             string
	Name           *string
	Subnets        []*Subnet
	SecurityGroups []*SecurityGroup
}

// AddSubnet attaches s unless it is already attached.
func (v *Vpc) AddSubnet(s *Subnet) {
	if !slices.Contains(v.Subnets, s) {
		v.Subnets = append(v.Subnets, s)
	}
}

// AddSecurityGroup attaches sg unless it is already attached.
func (v *Vpc) AddSecurityGroup(sg *SecurityGroup) {
	if !slices.Contains(v.SecurityGroups, sg) {
		v.SecurityGroups = append(v.SecurityGroups, sg)
	}
}

type Subnet struct {
	ID    string
	CIDR  string
	Name  *string
	VpcID string
	// Public is false unless ClassifySubnets found a route to an internet
	// gateway.
	Public        bool
	Interfaces    []*Interface
	NetworkAclIDs []string
}

func (s *Subnet) AddInterface(eni *Interface) {
	if !slices.Contains(s.Interfaces, eni) {
		s.Interfaces = append(s.Interfaces, eni)
	}
}

func (s *Subnet) addNetworkAcl(id string) {
	if !slices.Contains(s.NetworkAclIDs, id) {
		s.NetworkAclIDs = append(s.NetworkAclIDs, id)
	}
}

// IPMapping pairs a private address with its public association, if any.
type IPMapping struct {
	PrivateIP string
	PublicIP  *string
}

type Interface struct {
	ID             string
	Name           *string
	SubnetID       string
	Addresses      []IPMapping
	SecurityGroups []*SecurityGroup
}

func (i *Interface) AddIPMapping(privateIP string, publicIP *string) {
	i.Addresses = append(i.Addresses, IPMapping{PrivateIP: privateIP, PublicIP: publicIP})
}

func (i *Interface) AddSecurityGroup(sg *SecurityGroup) {
	i.SecurityGroups = append(i.SecurityGroups, sg)
}

type Instance struct {
	ID         string
	Name       *string
	State      string
	SubnetID   string
	VpcID      string
	Interfaces []*Interface
}

func (i *Instance) AddInterface(eni *Interface) {
	i.Interfaces = append(i.Interfaces, eni)
}

type SecurityGroup struct {
	ID        string
	VpcID     string
	GroupName string
}

type NetworkAcl struct {
	ID        string
	SubnetIDs []string
}

func (n *NetworkAcl) addSubnet(id string) {
	if !slices.Contains(n.SubnetIDs, id) {
		n.SubnetIDs = append(n.SubnetIDs, id)
	}
}
