package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	public := "54.1.2.3"
	return &Snapshot{
		TakenAt:        time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AccountID:      "123456789012",
		Region:         "us-east-1",
		Vpcs:           []Vpc{{VpcID: "vpc-1", Tags: []Tag{{Key: "Name", Value: "prod"}}}},
		Subnets:        []Subnet{{SubnetID: "subnet-1", VpcID: "vpc-1", CidrBlock: "10.0.0.0/24"}},
		SecurityGroups: []SecurityGroup{{GroupID: "sg-1", GroupName: "web", VpcID: "vpc-1"}},
		NetworkAcls:    []NetworkAcl{{NetworkAclID: "acl-1", SubnetIDs: []string{"subnet-1"}}},
		Interfaces: []Interface{{
			InterfaceID: "eni-1",
			SubnetID:    "subnet-1",
			PrivateIPs:  []PrivateIPAddress{{PrivateIP: "10.0.0.5", PublicIP: &public}, {PrivateIP: "10.0.0.6"}},
			GroupIDs:    []string{"sg-1"},
		}},
		Reservations: []Reservation{{Instances: []Instance{{InstanceID: "i-1", InterfaceIDs: []string{"eni-1"}}}}},
	}
}

func TestSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"snap.yaml", "snap.json"} {
		path := filepath.Join(dir, name)
		require.NoError(t, SaveFile(path, sampleSnapshot()))

		got, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot(), got, name)
	}
}

func TestEncode_YAMLFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleSnapshot(), "yaml"))

	out := buf.String()
	assert.Contains(t, out, "vpc_id: vpc-1")
	assert.Contains(t, out, "public_ip: 54.1.2.3")
	assert.Contains(t, out, "cidr_block: 10.0.0.0/24")
}

func TestUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, sampleSnapshot(), "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Decode(bytes.NewReader(nil), "toml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	path := filepath.Join(t.TempDir(), "snap.txt")
	err = SaveFile(path, sampleSnapshot())
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.NoFileExists(t, path)
}
