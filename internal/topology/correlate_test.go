package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

func strPtr(s string) *string { return &s }

func nameTag(v string) []snapshot.Tag {
	return []snapshot.Tag{{Key: "Name", Value: v}}
}

// scenarioSnapshot is one VPC with one subnet, one security group, one
// interface and one instance wired together.
func scenarioSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Vpcs:           []snapshot.Vpc{{VpcID: "vpc-1", Tags: nameTag("prod")}},
		Subnets:        []snapshot.Subnet{{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"}},
		SecurityGroups: []snapshot.SecurityGroup{{GroupID: "sg-1", GroupName: "web", VpcID: "vpc-1"}},
		Interfaces: []snapshot.Interface{{
			InterfaceID: "eni-1",
			SubnetID:    "subnet-1",
			PrivateIPs:  []snapshot.PrivateIPAddress{{PrivateIP: "10.0.0.5"}},
			GroupIDs:    []string{"sg-1"},
		}},
		NetworkAcls: []snapshot.NetworkAcl{{NetworkAclID: "acl-1", SubnetIDs: []string{"subnet-1"}}},
		Reservations: []snapshot.Reservation{{Instances: []snapshot.Instance{{
			InstanceID:   "i-1",
			State:        "running",
			SubnetID:     "subnet-1",
			VpcID:        "vpc-1",
			InterfaceIDs: []string{"eni-1"},
		}}}},
	}
}

func TestNameFromTags(t *testing.T) {
	tests := []struct {
		name string
		tags []snapshot.Tag
		want *string
	}{
		{"no tags", nil, nil},
		{"no name tag", []snapshot.Tag{{Key: "env", Value: "prod"}}, nil},
		{"empty name", []snapshot.Tag{{Key: "Name", Value: ""}}, strPtr("")},
		{"first wins", []snapshot.Tag{{Key: "env", Value: "x"}, {Key: "Name", Value: "a"}, {Key: "Name", Value: "b"}}, strPtr("a")},
		{"key is case sensitive", []snapshot.Tag{{Key: "name", Value: "a"}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nameFromTags(tt.tags))
		})
	}
}

func TestBuildSubnets_AttachesToVpc(t *testing.T) {
	vpcs := BuildVpcs([]snapshot.Vpc{{VpcID: "vpc-1"}, {VpcID: "vpc-2"}})
	subnets := BuildSubnets([]snapshot.Subnet{
		{SubnetID: "subnet-a", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"},
		{SubnetID: "subnet-b", VpcID: "vpc-2", CidrBlock: "10.1.0.0/24"},
		{SubnetID: "subnet-c", VpcID: "vpc-1", CidrBlock: "10.0.1.0/24", Tags: nameTag("app")},
	}, vpcs)

	require.Len(t, subnets, 3)
	require.Len(t, vpcs[0].Subnets, 2)
	assert.Equal(t, "subnet-a", vpcs[0].Subnets[0].ID)
	assert.Equal(t, "subnet-c", vpcs[0].Subnets[1].ID)
	require.Len(t, vpcs[1].Subnets, 1)
	assert.Equal(t, "subnet-b", vpcs[1].Subnets[0].ID)

	assert.Equal(t, "app", *subnets[2].Name)
	assert.Nil(t, subnets[0].Name)
	for _, s := range subnets {
		assert.False(t, s.Public)
	}
}

func TestBuildSubnets_MissingVpc(t *testing.T) {
	vpcs := BuildVpcs([]snapshot.Vpc{{VpcID: "vpc-1"}})
	subnets := BuildSubnets([]snapshot.Subnet{{SubnetID: "subnet-x", VpcID: "vpc-gone", CidrBlock: "10.9.0.0/24"}}, vpcs)

	require.Len(t, subnets, 1)
	assert.Equal(t, "subnet-x", subnets[0].ID)
	assert.Empty(t, vpcs[0].Subnets)
}

func TestBuildSubnets_DuplicateVpcFirstMatchWins(t *testing.T) {
	vpcs := BuildVpcs([]snapshot.Vpc{{VpcID: "vpc-1", Tags: nameTag("first")}, {VpcID: "vpc-1", Tags: nameTag("second")}})
	BuildSubnets([]snapshot.Subnet{{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"}}, vpcs)

	assert.Len(t, vpcs[0].Subnets, 1)
	assert.Empty(t, vpcs[1].Subnets)
}

func TestBuildSecurityGroups(t *testing.T) {
	vpcs := BuildVpcs([]snapshot.Vpc{{VpcID: "vpc-1"}})
	sgs := BuildSecurityGroups([]snapshot.SecurityGroup{
		{GroupID: "sg-1", GroupName: "web", VpcID: "vpc-1"},
		{GroupID: "sg-2", GroupName: "other", VpcID: "vpc-9"},
	}, vpcs)

	require.Len(t, sgs, 2)
	require.Len(t, vpcs[0].SecurityGroups, 1)
	assert.Same(t, sgs[0], vpcs[0].SecurityGroups[0])
}

func TestBuildInterfaces(t *testing.T) {
	vpcs := BuildVpcs([]snapshot.Vpc{{VpcID: "vpc-1"}})
	subnets := BuildSubnets([]snapshot.Subnet{{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"}}, vpcs)
	sgs := BuildSecurityGroups([]snapshot.SecurityGroup{
		{GroupID: "sg-1", GroupName: "web", VpcID: "vpc-1"},
		{GroupID: "sg-2", GroupName: "ssh", VpcID: "vpc-1"},
	}, vpcs)

	enis := BuildInterfaces([]snapshot.Interface{
		{
			InterfaceID: "eni-1",
			SubnetID:    "subnet-1",
			PrivateIPs: []snapshot.PrivateIPAddress{
				{PrivateIP: "10.0.0.5", PublicIP: strPtr("54.1.2.3")},
				{PrivateIP: "10.0.0.6"},
			},
			GroupIDs: []string{"sg-2", "sg-missing", "sg-1"},
			Tags:     []snapshot.Tag{{Key: "Name", Value: "first"}, {Key: "Name", Value: "second"}},
		},
		{InterfaceID: "eni-orphan", SubnetID: "subnet-missing"},
	}, subnets, sgs)

	require.Len(t, enis, 2)
	eni := enis[0]
	assert.Equal(t, "first", *eni.Name)
	require.Len(t, eni.Addresses, 2)
	assert.Equal(t, "54.1.2.3", *eni.Addresses[0].PublicIP)
	assert.Nil(t, eni.Addresses[1].PublicIP)
	require.Len(t, eni.SecurityGroups, 2)
	assert.Equal(t, "sg-2", eni.SecurityGroups[0].ID)
	assert.Equal(t, "sg-1", eni.SecurityGroups[1].ID)

	require.Len(t, subnets[0].Interfaces, 1)
	assert.Same(t, eni, subnets[0].Interfaces[0])
	assert.Nil(t, enis[1].Name)
	assert.Empty(t, enis[1].Addresses)
}

func TestBuildNetworkAcls_Bidirectional(t *testing.T) {
	subnets := BuildSubnets([]snapshot.Subnet{
		{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"},
		{SubnetID: "subnet-2", VpcID: "vpc-1", CidrBlock: "10.0.1.0/24"},
	}, nil)

	nacls := BuildNetworkAcls([]snapshot.NetworkAcl{
		{NetworkAclID: "acl-1", SubnetIDs: []string{"subnet-1", "subnet-unknown", "subnet-2"}},
		{NetworkAclID: "acl-2"},
	}, subnets)

	require.Len(t, nacls, 2)
	assert.Equal(t, []string{"subnet-1", "subnet-2"}, nacls[0].SubnetIDs)
	assert.Empty(t, nacls[1].SubnetIDs)
	assert.Equal(t, []string{"acl-1"}, subnets[0].NetworkAclIDs)
	assert.Equal(t, []string{"acl-1"}, subnets[1].NetworkAclIDs)
}

func TestBuildInstances(t *testing.T) {
	enis := BuildInterfaces([]snapshot.Interface{{InterfaceID: "eni-1"}, {InterfaceID: "eni-2"}}, nil, nil)

	instances := BuildInstances([]snapshot.Reservation{
		{Instances: []snapshot.Instance{
			{InstanceID: "i-1", State: "running", VpcID: "vpc-1", SubnetID: "subnet-1", InterfaceIDs: []string{"eni-2", "eni-gone"}, Tags: nameTag("web")},
		}},
		{Instances: []snapshot.Instance{{InstanceID: "i-2"}, {InstanceID: "i-3", InterfaceIDs: []string{"eni-1"}}}},
	}, enis)

	require.Len(t, instances, 3)
	assert.Equal(t, "web", *instances[0].Name)
	assert.Equal(t, "running", instances[0].State)
	require.Len(t, instances[0].Interfaces, 1)
	assert.Same(t, enis[1], instances[0].Interfaces[0])
	assert.Empty(t, instances[1].Interfaces)
	assert.Same(t, enis[0], instances[2].Interfaces[0])
}

func TestCorrelate_RoundTrip(t *testing.T) {
	snap := scenarioSnapshot()
	snap.Interfaces[0].PrivateIPs[0].PublicIP = strPtr("54.0.0.1")

	g := Correlate(snap)

	inst, ok := g.Instance("i-1")
	require.True(t, ok)
	eni, ok := g.Interface("eni-1")
	require.True(t, ok)
	require.Len(t, inst.Interfaces, 1)
	assert.Same(t, eni, inst.Interfaces[0])

	require.Len(t, eni.Addresses, 1)
	assert.Equal(t, "10.0.0.5", eni.Addresses[0].PrivateIP)
	assert.Equal(t, "54.0.0.1", *eni.Addresses[0].PublicIP)

	s, ok := g.Subnet("subnet-1")
	require.True(t, ok)
	v, ok := g.VpcOf(s)
	require.True(t, ok)
	assert.Equal(t, "prod", *v.Name)

	nacls := g.NetworkAclsOf(s)
	require.Len(t, nacls, 1)
	assert.Equal(t, []*Subnet{s}, g.SubnetsOf(nacls[0]))
}

func TestCorrelate_DoesNotAliasRawRecords(t *testing.T) {
	snap := scenarioSnapshot()
	snap.Interfaces[0].PrivateIPs[0].PublicIP = strPtr("54.0.0.1")

	g := Correlate(snap)
	eni, _ := g.Interface("eni-1")
	*eni.Addresses[0].PublicIP = "changed"

	assert.Equal(t, "54.0.0.1", *snap.Interfaces[0].PrivateIPs[0].PublicIP)
}

func TestGraph_Stats(t *testing.T) {
	g := Correlate(scenarioSnapshot())
	st := g.Stats()
	assert.Equal(t, Stats{Vpcs: 1, Subnets: 1, SecurityGroups: 1, Interfaces: 1, NetworkAcls: 1, Instances: 1}, st)
}
