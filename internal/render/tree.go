// Package render turns a correlated topology graph into a nested cluster
// layout and draws it with Graphviz.
//
// The layout is built in two steps. [Build] walks the graph and produces an
// abstract [Tree] of groups, leaf nodes and edges; it knows nothing about
// Graphviz. [ToDOT] and [Render] then turn that tree into a DOT document and
// an image.
package render

import (
	"strconv"
	"strings"

	"tasnim.dev/aws-netmap/internal/topology"
)

// EdgeMinLen is the layout hint carried by every instance to interface edge.
const EdgeMinLen = 3

type GroupKind int

const (
	GroupVpc GroupKind = iota
	GroupSubnet
	GroupSecurityGroups
)

type NodeKind int

const (
	NodeInterface NodeKind = iota
	NodeInstance
)

// Node is a terminal element of the tree. ID is unique within one Tree.
type Node struct {
	ID    string
	Label string
	Kind  NodeKind
}

// Group is a named cluster holding nested groups and leaf nodes.
type Group struct {
	Label string
	Kind  GroupKind
	// Public is only meaningful for subnet groups and only affects styling.
	Public bool
	Groups []*Group
	Nodes  []*Node
}

type Edge struct {
	From   *Node
	To     *Node
	MinLen int
}

type Tree struct {
	Title  string
	Groups []*Group
	Edges  []Edge
}

func label(id string, name *string) string {
	if name == nil {
		return id
	}
	return id + "|" + *name
}

// Signature identifies the ordered set of security groups attached to an
// interface. Interfaces with equal signatures share a cluster; an interface
// without groups has the empty signature.
func Signature(eni *topology.Interface) string {
	parts := make([]string, 0, len(eni.SecurityGroups))
	for _, sg := range eni.SecurityGroups {
		parts = append(parts, sg.ID+"|"+sg.GroupName)
	}
	return strings.Join(parts, "\n")
}

type builder struct {
	tree *Tree
	next int
}

func (b *builder) node(lbl string, kind NodeKind) *Node {
	n := &Node{ID: "n" + strconv.Itoa(b.next), Label: lbl, Kind: kind}
	b.next++
	return n
}

// Build lays out g one VPC at a time. Subnets, security-group clusters and
// instances keep the order of the underlying listings.
func Build(g *topology.Graph, title string) *Tree {
	b := &builder{tree: &Tree{Title: title}}
	for _, v := range g.Vpcs {
		b.tree.Groups = append(b.tree.Groups, b.vpc(g, v))
	}
	return b.tree
}

func (b *builder) vpc(g *topology.Graph, v *topology.Vpc) *Group {
	vg := &Group{Label: label(v.ID, v.Name), Kind: GroupVpc}
	drawn := make(map[*topology.Interface]*Node)

	for _, s := range v.Subnets {
		vg.Groups = append(vg.Groups, b.subnet(s, drawn))
	}

	for _, inst := range g.Instances {
		if inst.VpcID != v.ID {
			continue
		}
		in := b.node(label(inst.ID, inst.Name), NodeInstance)
		vg.Nodes = append(vg.Nodes, in)
		for _, eni := range inst.Interfaces {
			if en, ok := drawn[eni]; ok {
				b.tree.Edges = append(b.tree.Edges, Edge{From: in, To: en, MinLen: EdgeMinLen})
			}
		}
	}
	return vg
}

func (b *builder) subnet(s *topology.Subnet, drawn map[*topology.Interface]*Node) *Group {
	sg := &Group{Label: label(s.ID, s.Name), Kind: GroupSubnet, Public: s.Public}
	bySig := make(map[string]*Group)

	for _, eni := range s.Interfaces {
		sig := Signature(eni)
		cluster, ok := bySig[sig]
		if !ok {
			cluster = &Group{Label: sig, Kind: GroupSecurityGroups}
			bySig[sig] = cluster
			sg.Groups = append(sg.Groups, cluster)
		}
		n := b.node(eni.ID, NodeInterface)
		cluster.Nodes = append(cluster.Nodes, n)
		drawn[eni] = n
	}
	return sg
}
