package endpoint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doytsujin/of-protocol/ofp"
)

func TestDefaultFilterAllowsEqualPacketIn(t *testing.T) {
	f := defaultFilter()
	require.True(t, f.allows(RoleEqual, ofp.TypePacketIn))
	require.True(t, f.allows(RoleEqual, ofp.TypePortStatus))
	require.True(t, f.allows(RoleEqual, ofp.TypeFlowRemoved))
}

func TestDefaultFilterSlaveOnlyAllowsPacketIn(t *testing.T) {
	f := defaultFilter()
	require.True(t, f.allows(RoleSlave, ofp.TypePacketIn))
	require.False(t, f.allows(RoleSlave, ofp.TypePortStatus))
	require.False(t, f.allows(RoleSlave, ofp.TypeFlowRemoved))
}

func TestFilterNeverBlocksNonAsyncTypes(t *testing.T) {
	f := Filter{}
	require.True(t, f.allows(RoleEqual, ofp.TypeEchoReply))
	require.True(t, f.allows(RoleSlave, ofp.TypeBarrierReply))
}

func TestFilterToggle(t *testing.T) {
	f := defaultFilter()
	f.MasterEqual.PacketIn = false
	require.False(t, f.allows(RoleEqual, ofp.TypePacketIn))
}
