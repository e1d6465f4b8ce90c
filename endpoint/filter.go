package endpoint

import "github.com/doytsujin/of-protocol/ofp"

// Role is the controller role this endpoint presents to the switch. It
// governs both write access (4.4) and which asynchronous message
// classes are forwarded (4.6).
type Role int

const (
	// RoleEqual is the default role: full read/write access, default
	// asynchronous filter.
	RoleEqual Role = iota

	// RoleMaster behaves like RoleEqual for this client's purposes; the
	// OpenFlow spec distinguishes master from equal only in how the
	// switch arbitrates between multiple controllers, which this
	// single-connection client does not model.
	RoleMaster

	// RoleSlave is read-only: modifying requests are rejected locally
	// (4.4) and the default filter suppresses most async events (4.6).
	RoleSlave
)

func (r Role) String() string {
	switch r {
	case RoleMaster:
		return "master"
	case RoleSlave:
		return "slave"
	default:
		return "equal"
	}
}

// asyncMask is the triple of allow bits for the three filterable
// outbound async message types.
type asyncMask struct {
	PacketIn    bool
	PortStatus  bool
	FlowRemoved bool
}

// Filter is the pair of async masks selected by role: the first
// applies to master and equal, the second to slave.
type Filter struct {
	MasterEqual asyncMask
	Slave       asyncMask
}

// defaultFilter matches the default described for Endpoint state:
// ((true, true, true), (true, false, false)).
func defaultFilter() Filter {
	return Filter{
		MasterEqual: asyncMask{PacketIn: true, PortStatus: true, FlowRemoved: true},
		Slave:       asyncMask{PacketIn: true, PortStatus: false, FlowRemoved: false},
	}
}

// allows reports whether an outbound message of type t should be sent
// given role. Non-async types are never filtered.
func (f Filter) allows(role Role, t ofp.Type) bool {
	mask := f.MasterEqual
	if role == RoleSlave {
		mask = f.Slave
	}

	switch t {
	case ofp.TypePacketIn:
		return mask.PacketIn
	case ofp.TypePortStatus:
		return mask.PortStatus
	case ofp.TypeFlowRemoved:
		return mask.FlowRemoved
	default:
		return true
	}
}
