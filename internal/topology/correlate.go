package topology

import (
	"tasnim.dev/aws-netmap/internal/snapshot"
)

// nameFromTags returns the value of the first tag keyed "Name", or nil when
// there is none. An empty value is returned as a non-nil empty string.
func nameFromTags(tags []snapshot.Tag) *string {
	for _, tag := range tags {
		if tag.Key == "Name" {
			name := tag.Value
			return &name
		}
	}
	return nil
}

// indexByID maps each id to the first item carrying it. Later duplicates are
// ignored so lookups keep first-match semantics.
func indexByID[T any](items []T, id func(T) string) map[string]T {
	idx := make(map[string]T, len(items))
	for _, item := range items {
		k := id(item)
		if _, ok := idx[k]; !ok {
			idx[k] = item
		}
	}
	return idx
}

func vpcID(v *Vpc) string                      { return v.ID }
func subnetID(s *Subnet) string                { return s.ID }
func securityGroupID(sg *SecurityGroup) string { return sg.ID }
func interfaceID(i *Interface) string          { return i.ID }
func instanceID(i *Instance) string            { return i.ID }
func networkAclID(n *NetworkAcl) string        { return n.ID }

// BuildVpcs creates one Vpc per raw record.
func BuildVpcs(raw []snapshot.Vpc) []*Vpc {
	vpcs := make([]*Vpc, 0, len(raw))
	for _, r := range raw {
		vpcs = append(vpcs, &Vpc{
			ID:   r.VpcID,
			Name: nameFromTags(r.Tags),
		})
	}
	return vpcs
}

// BuildSubnets creates one Subnet per raw record and attaches it to its VPC.
// A subnet whose VPC is unknown is still returned, just not attached.
func BuildSubnets(raw []snapshot.Subnet, vpcs []*Vpc) []*Subnet {
	byID := indexByID(vpcs, vpcID)

	subnets := make([]*Subnet, 0, len(raw))
	for _, r := range raw {
		s := &Subnet{
			ID:    r.SubnetID,
			CIDR:  r.CidrBlock,
			Name:  nameFromTags(r.Tags),
			VpcID: r.VpcID,
		}
		if v, ok := byID[s.VpcID]; ok {
			v.AddSubnet(s)
		}
		subnets = append(subnets, s)
	}
	return subnets
}

// BuildSecurityGroups creates one SecurityGroup per raw record and lists it
// under its VPC.
func BuildSecurityGroups(raw []snapshot.SecurityGroup, vpcs []*Vpc) []*SecurityGroup {
	byID := indexByID(vpcs, vpcID)

	sgs := make([]*SecurityGroup, 0, len(raw))
	for _, r := range raw {
		sg := &SecurityGroup{
			ID:        r.GroupID,
			VpcID:     r.VpcID,
			GroupName: r.GroupName,
		}
		if v, ok := byID[sg.VpcID]; ok {
			v.AddSecurityGroup(sg)
		}
		sgs = append(sgs, sg)
	}
	return sgs
}

// BuildInterfaces creates one Interface per raw record with one IP mapping
// per private address, links the referenced security groups in record order
// and attaches the interface to its subnet.
func BuildInterfaces(raw []snapshot.Interface, subnets []*Subnet, sgs []*SecurityGroup) []*Interface {
	subnetsByID := indexByID(subnets, subnetID)
	sgsByID := indexByID(sgs, securityGroupID)

	enis := make([]*Interface, 0, len(raw))
	for _, r := range raw {
		eni := &Interface{
			ID:       r.InterfaceID,
			SubnetID: r.SubnetID,
			Name:     nameFromTags(r.Tags),
		}
		for _, ip := range r.PrivateIPs {
			var public *string
			if ip.PublicIP != nil {
				p := *ip.PublicIP
				public = &p
			}
			eni.AddIPMapping(ip.PrivateIP, public)
		}
		for _, groupID := range r.GroupIDs {
			if sg, ok := sgsByID[groupID]; ok {
				eni.AddSecurityGroup(sg)
			}
		}
		if s, ok := subnetsByID[eni.SubnetID]; ok {
			s.AddInterface(eni)
		}
		enis = append(enis, eni)
	}
	return enis
}

// BuildNetworkAcls creates one NetworkAcl per raw record and links it both
// ways with every associated subnet that exists.
func BuildNetworkAcls(raw []snapshot.NetworkAcl, subnets []*Subnet) []*NetworkAcl {
	byID := indexByID(subnets, subnetID)

	nacls := make([]*NetworkAcl, 0, len(raw))
	for _, r := range raw {
		n := &NetworkAcl{ID: r.NetworkAclID}
		for _, id := range r.SubnetIDs {
			s, ok := byID[id]
			if !ok {
				continue
			}
			n.addSubnet(s.ID)
			s.addNetworkAcl(n.ID)
		}
		nacls = append(nacls, n)
	}
	return nacls
}

// BuildInstances creates one Instance per instance record across all
// reservations and links the interfaces it has attached.
func BuildInstances(raw []snapshot.Reservation, enis []*Interface) []*Instance {
	byID := indexByID(enis, interfaceID)

	var instances []*Instance
	for _, res := range raw {
		for _, r := range res.Instances {
			inst := &Instance{
				ID:       r.InstanceID,
				Name:     nameFromTags(r.Tags),
				State:    r.State,
				SubnetID: r.SubnetID,
				VpcID:    r.VpcID,
			}
			for _, id := range r.InterfaceIDs {
				if eni, ok := byID[id]; ok {
					inst.AddInterface(eni)
				}
			}
			instances = append(instances, inst)
		}
	}
	return instances
}

// Correlate runs the six build steps in dependency order and indexes the
// result. snap is only read.
func Correlate(snap *snapshot.Snapshot) *Graph {
	vpcs := BuildVpcs(snap.Vpcs)
	subnets := BuildSubnets(snap.Subnets, vpcs)
	sgs := BuildSecurityGroups(snap.SecurityGroups, vpcs)
	enis := BuildInterfaces(snap.Interfaces, subnets, sgs)
	nacls := BuildNetworkAcls(snap.NetworkAcls, subnets)
	instances := BuildInstances(snap.Reservations, enis)

	return newGraph(vpcs, subnets, sgs, enis, nacls, instances)
}
