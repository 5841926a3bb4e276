package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasnim.dev/aws-netmap/internal/snapshot"
)

func TestDump(t *testing.T) {
	snap := scenarioSnapshot()
	snap.Vpcs = append(snap.Vpcs, snapshot.Vpc{VpcID: "vpc-2"})

	out := Dump(Correlate(snap), true)

	assert.Contains(t, out, "VPC: vpc-1 : prod")
	assert.Contains(t, out, "VPC: vpc-2 : None")
	assert.Contains(t, out, "Subnet: subnet-1 : None : 10.0.0.0/24 (private)")
	assert.Contains(t, out, "ENI: eni-1")
	assert.Contains(t, out, "Private IP: 10.0.0.5 | Public IP: None")
	assert.Contains(t, out, "Security Group: sg-1 | web")
}
