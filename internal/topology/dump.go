package topology

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/tree"
)

var (
	vpcStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#33A8FF")).Bold(true)
	subnetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
)

func orNone(s *string) string {
	if s == nil {
		return "None"
	}
	return *s
}

// Dump renders the VPC -> subnet -> interface hierarchy as an indented tree
// for diagnostics. Set plain to drop colors.
func Dump(g *Graph, plain bool) string {
	style := func(st lipgloss.Style, s string) string {
		if plain {
			return s
		}
		return st.Render(s)
	}

	root := tree.New()
	for _, v := range g.Vpcs {
		vt := tree.Root(style(vpcStyle, fmt.Sprintf("VPC: %s : %s", v.ID, orNone(v.Name))))
		for _, s := range v.Subnets {
			kind := "private"
			if s.Public {
				kind = "public"
			}
			st := tree.Root(style(subnetStyle, fmt.Sprintf("Subnet: %s : %s : %s (%s)", s.ID, orNone(s.Name), s.CIDR, kind)))
			for _, eni := range s.Interfaces {
				et := tree.Root(fmt.Sprintf("ENI: %s", eni.ID))
				for _, ip := range eni.Addresses {
					et.Child(style(mutedStyle, fmt.Sprintf("Private IP: %s | Public IP: %s", ip.PrivateIP, orNone(ip.PublicIP))))
				}
				for _, sg := range eni.SecurityGroups {
					et.Child(style(mutedStyle, fmt.Sprintf("Security Group: %s | %s", sg.ID, sg.GroupName)))
				}
				st.Child(et)
			}
			vt.Child(st)
		}
		root.Child(vt)
	}
	return root.String()
}
