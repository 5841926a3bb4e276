package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"tasnim.dev/aws-netmap/internal/aws/network"
)

// ServiceClient is the single configured access point for one discovery
// run. All listing calls of the run share its EC2 client.
type ServiceClient struct {
	Network   *network.Client
	AccountID string
	Region    string
}

func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &ServiceClient{
		Network:   network.NewClient(ec2.NewFromConfig(cfg)),
		AccountID: GetAccountID(ctx, cfg),
		Region:    cfg.Region,
	}, nil
}
