package network

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

type NetworkAPI interface {
	DescribeVpcs(ctx context.Context, params *awsec2.DescribeVpcsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
	DescribeNetworkInterfaces(ctx context.Context, params *awsec2.DescribeNetworkInterfacesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNetworkInterfacesOutput, error)
	DescribeInstances(ctx context.Context, params *awsec2.DescribeInstancesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeInstancesOutput, error)
	DescribeNetworkAcls(ctx context.Context, params *awsec2.DescribeNetworkAclsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeNetworkAclsOutput, error)
	DescribeRouteTables(ctx context.Context, params *awsec2.DescribeRouteTablesInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeRouteTablesOutput, error)
}

// Client lists the network resources of one account and region. Every list
// method follows NextToken on its own responses until the listing is
// complete.
type Client struct {
	api NetworkAPI
}

func NewClient(api NetworkAPI) *Client {
	return &Client{api: api}
}

var _ snapshot.Lister = (*Client)(nil)
var _ snapshot.RouteTableLister = (*Client)(nil)

func convertTags(tags []types.Tag) []snapshot.Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]snapshot.Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, snapshot.Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return out
}

func (c *Client) ListVpcs(ctx context.Context) ([]snapshot.Vpc, error) {
	var vpcs []snapshot.Vpc
	var nextToken *string

	for {
		out, err := c.api.DescribeVpcs(ctx, &awsec2.DescribeVpcsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeVpcs: %w", err)
		}

		for _, v := range out.Vpcs {
			vpcs = append(vpcs, snapshot.Vpc{
				VpcID: aws.ToString(v.VpcId),
				Tags:  convertTags(v.Tags),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return vpcs, nil
}

func (c *Client) ListSubnets(ctx context.Context) ([]snapshot.Subnet, error) {
	var subnets []snapshot.Subnet
	var nextToken *string

	for {
		out, err := c.api.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSubnets: %w", err)
		}

		for _, s := range out.Subnets {
			subnets = append(subnets, snapshot.Subnet{
				SubnetID:  aws.ToString(s.SubnetId),
				VpcID:     aws.ToString(s.VpcId),
				CidrBlock: aws.ToString(s.CidrBlock),
				Tags:      convertTags(s.Tags),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return subnets, nil
}

func (c *Client) ListSecurityGroups(ctx context.Context) ([]snapshot.SecurityGroup, error) {
	var sgs []snapshot.SecurityGroup
	var nextToken *string

	for {
		out, err := c.api.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeSecurityGroups: %w", err)
		}

		for _, sg := range out.SecurityGroups {
			sgs = append(sgs, snapshot.SecurityGroup{
				GroupID:   aws.ToString(sg.GroupId),
				GroupName: aws.ToString(sg.GroupName),
				VpcID:     aws.ToString(sg.VpcId),
			})
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return sgs, nil
}

func (c *Client) ListInterfaces(ctx context.Context) ([]snapshot.Interface, error) {
	var enis []snapshot.Interface
	var nextToken *string

	for {
		out, err := c.api.DescribeNetworkInterfaces(ctx, &awsec2.DescribeNetworkInterfacesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeNetworkInterfaces: %w", err)
		}

		for _, ni := range out.NetworkInterfaces {
			eni := snapshot.Interface{
				InterfaceID: aws.ToString(ni.NetworkInterfaceId),
				SubnetID:    aws.ToString(ni.SubnetId),
				Tags:        convertTags(ni.TagSet),
			}
			for _, ip := range ni.PrivateIpAddresses {
				addr := snapshot.PrivateIPAddress{PrivateIP: aws.ToString(ip.PrivateIpAddress)}
				if ip.Association != nil && ip.Association.PublicIp != nil {
					addr.PublicIP = aws.String(aws.ToString(ip.Association.PublicIp))
				}
				eni.PrivateIPs = append(eni.PrivateIPs, addr)
			}
			for _, g := range ni.Groups {
				eni.GroupIDs = append(eni.GroupIDs, aws.ToString(g.GroupId))
			}
			enis = append(enis, eni)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return enis, nil
}

func (c *Client) ListInstances(ctx context.Context) ([]snapshot.Reservation, error) {
	var reservations []snapshot.Reservation
	var nextToken *string

	for {
		out, err := c.api.DescribeInstances(ctx, &awsec2.DescribeInstancesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeInstances: %w", err)
		}

		for _, r := range out.Reservations {
			res := snapshot.Reservation{ReservationID: aws.ToString(r.ReservationId)}
			for _, inst := range r.Instances {
				i := snapshot.Instance{
					InstanceID: aws.ToString(inst.InstanceId),
					SubnetID:   aws.ToString(inst.SubnetId),
					VpcID:      aws.ToString(inst.VpcId),
					Tags:       convertTags(inst.Tags),
				}
				if inst.State != nil {
					i.State = string(inst.State.Name)
				}
				for _, ni := range inst.NetworkInterfaces {
					i.InterfaceIDs = append(i.InterfaceIDs, aws.ToString(ni.NetworkInterfaceId))
				}
				res.Instances = append(res.Instances, i)
			}
			reservations = append(reservations, res)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return reservations, nil
}

func (c *Client) ListNetworkAcls(ctx context.Context) ([]snapshot.NetworkAcl, error) {
	var nacls []snapshot.NetworkAcl
	var nextToken *string

	for {
		out, err := c.api.DescribeNetworkAcls(ctx, &awsec2.DescribeNetworkAclsInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeNetworkAcls: %w", err)
		}

		for _, n := range out.NetworkAcls {
			acl := snapshot.NetworkAcl{NetworkAclID: aws.ToString(n.NetworkAclId)}
			for _, assoc := range n.Associations {
				if assoc.SubnetId == nil {
					continue
				}
				acl.SubnetIDs = append(acl.SubnetIDs, aws.ToString(assoc.SubnetId))
			}
			nacls = append(nacls, acl)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return nacls, nil
}

func (c *Client) ListRouteTables(ctx context.Context) ([]snapshot.RouteTable, error) {
	var rts []snapshot.RouteTable
	var nextToken *string

	for {
		out, err := c.api.DescribeRouteTables(ctx, &awsec2.DescribeRouteTablesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("DescribeRouteTables: %w", err)
		}

		for _, rt := range out.RouteTables {
			table := snapshot.RouteTable{
				RouteTableID: aws.ToString(rt.RouteTableId),
				VpcID:        aws.ToString(rt.VpcId),
			}
			for _, assoc := range rt.Associations {
				if aws.ToBool(assoc.Main) {
					table.Main = true
				}
				if assoc.SubnetId != nil {
					table.SubnetIDs = append(table.SubnetIDs, aws.ToString(assoc.SubnetId))
				}
			}
			for _, r := range rt.Routes {
				dest := aws.ToString(r.DestinationCidrBlock)
				if dest == "" {
					dest = aws.ToString(r.DestinationIpv6CidrBlock)
				}
				table.Routes = append(table.Routes, snapshot.Route{
					Destination: dest,
					GatewayID:   aws.ToString(r.GatewayId),
					State:       string(r.State),
				})
			}
			rts = append(rts, table)
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}
	return rts, nil
}
