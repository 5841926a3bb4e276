// Package snapshot holds the raw, provider-neutral listing records that make
// up one point-in-time view of an account's network resources.
package snapshot

import "time"

type Tag struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

type Vpc struct {
	VpcID string `yaml:"vpc_id" json:"vpc_id"`
	Tags  []Tag  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type Subnet struct {
	SubnetID  string `yaml:"subnet_id" json:"subnet_id"`
	VpcID     string `yaml:"vpc_id" json:"vpc_id"`
	CidrBlock string `yaml:"cidr_block" json:"cidr_block"`
	Tags      []Tag  `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type SecurityGroup struct {
	GroupID   string `yaml:"group_id" json:"group_id"`
	GroupName string `yaml:"group_name" json:"group_name"`
	VpcID     string `yaml:"vpc_id" json:"vpc_id"`
}

// PrivateIPAddress is one private address on an interface. PublicIP is set
// only when the address has a public association.
type PrivateIPAddress struct {
	PrivateIP string  `yaml:"private_ip" json:"private_ip"`
	PublicIP  *string `yaml:"public_ip,omitempty" json:"public_ip,omitempty"`
}

type Interface struct {
	InterfaceID string             `yaml:"interface_id" json:"interface_id"`
	SubnetID    string             `yaml:"subnet_id" json:"subnet_id"`
	PrivateIPs  []PrivateIPAddress `yaml:"private_ips,omitempty" json:"private_ips,omitempty"`
	GroupIDs    []string           `yaml:"group_ids,omitempty" json:"group_ids,omitempty"`
	Tags        []Tag              `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type Instance struct {
	InstanceID   string   `yaml:"instance_id" json:"instance_id"`
	State        string   `yaml:"state,omitempty" json:"state,omitempty"`
	SubnetID     string   `yaml:"subnet_id,omitempty" json:"subnet_id,omitempty"`
	VpcID        string   `yaml:"vpc_id,omitempty" json:"vpc_id,omitempty"`
	InterfaceIDs []string `yaml:"interface_ids,omitempty" json:"interface_ids,omitempty"`
	Tags         []Tag    `yaml:"tags,omitempty" json:"tags,omitempty"`
}

type Reservation struct {
	ReservationID string     `yaml:"reservation_id,omitempty" json:"reservation_id,omitempty"`
	Instances     []Instance `yaml:"instances" json:"instances"`
}

type NetworkAcl struct {
	NetworkAclID string   `yaml:"network_acl_id" json:"network_acl_id"`
	SubnetIDs    []string `yaml:"subnet_ids,omitempty" json:"subnet_ids,omitempty"`
}

type Route struct {
	Destination string `yaml:"destination" json:"destination"`
	GatewayID   string `yaml:"gateway_id,omitempty" json:"gateway_id,omitempty"`
	State       string `yaml:"state,omitempty" json:"state,omitempty"`
}

type RouteTable struct {
	RouteTableID string   `yaml:"route_table_id" json:"route_table_id"`
	VpcID        string   `yaml:"vpc_id" json:"vpc_id"`
	Main         bool     `yaml:"main,omitempty" json:"main,omitempty"`
	SubnetIDs    []string `yaml:"subnet_ids,omitempty" json:"subnet_ids,omitempty"`
	Routes       []Route  `yaml:"routes,omitempty" json:"routes,omitempty"`
}

// Snapshot is the complete set of listings for one run. Collections keep the
// order the provider returned them in.
type Snapshot struct {
	TakenAt        time.Time       `yaml:"taken_at" json:"taken_at"`
	AccountID      string          `yaml:"account_id,omitempty" json:"account_id,omitempty"`
	Region         string          `yaml:"region,omitempty" json:"region,omitempty"`
	Vpcs           []Vpc           `yaml:"vpcs" json:"vpcs"`
	Subnets        []Subnet        `yaml:"subnets" json:"subnets"`
	SecurityGroups []SecurityGroup `yaml:"security_groups" json:"security_groups"`
	Interfaces     []Interface     `yaml:"interfaces" json:"interfaces"`
	NetworkAcls    []NetworkAcl    `yaml:"network_acls" json:"network_acls"`
	Reservations   []Reservation   `yaml:"reservations" json:"reservations"`
	RouteTables    []RouteTable    `yaml:"route_tables,omitempty" json:"route_tables,omitempty"`
}

// Counts reports the number of records per resource kind.
type Counts struct {
	Vpcs           int `json:"vpcs"`
	Subnets        int `json:"subnets"`
	SecurityGroups int `json:"security_groups"`
	Interfaces     int `json:"interfaces"`
	NetworkAcls    int `json:"network_acls"`
	Instances      int `json:"instances"`
}

func (s *Snapshot) Counts() Counts {
	c := Counts{
		Vpcs:           len(s.Vpcs),
		Subnets:        len(s.Subnets),
		SecurityGroups: len(s.SecurityGroups),
		Interfaces:     len(s.Interfaces),
		NetworkAcls:    len(s.NetworkAcls),
	}
	for _, r := range s.Reservations {
		c.Instances += len(r.Instances)
	}
	return c
}
