package device

import (
	"testing"

	"github.com/gotidy/ptr"
	"github.com/keketcl/umanager/internal/usb"
)

const crRemoveVetoed = 0x00000017 // CR_REMOVE_VETOED

func TestEjectSelfSucceeds(t *testing.T) {
	g := chainGraph(`ROOT`, `USBSTOR\DISK\A`)
	ejector := NewEjector(g, NewTopology(g))

	res := ejector.Eject(`USBSTOR\DISK\A`)
	if !res.Success {
		t.Fatalf("Eject() success = false, want true")
	}
	if res.AttemptedInstanceID != `USBSTOR\DISK\A` {
		t.Errorf("AttemptedInstanceID = %q, want the node itself", res.AttemptedInstanceID)
	}
	if res.ConfigRet != 0 {
		t.Errorf("ConfigRet = %#x, want 0", res.ConfigRet)
	}
}

func TestEjectRetriesAncestorAfterVeto(t *testing.T) {
	// The storage node itself is vetoed, its parent hub ejects cleanly.
	g := chainGraph(`ROOT`, `USB\HUB\B`, `USBSTOR\DISK\A`)
	g.setEject(`USBSTOR\DISK\A`, EjectOutcome{
		ConfigRet: crRemoveVetoed,
		VetoType:  ptr.Of(usb.VetoOutstandingOpen),
		VetoName:  ptr.Of("explorer.exe"),
	})
	ejector := NewEjector(g, NewTopology(g))

	res := ejector.Eject(`USBSTOR\DISK\A`)
	if !res.Success {
		t.Fatalf("Eject() success = false, want true via the ancestor")
	}
	if res.AttemptedInstanceID != `USB\HUB\B` {
		t.Errorf("AttemptedInstanceID = %q, want %q", res.AttemptedInstanceID, `USB\HUB\B`)
	}
	if res.VetoType != nil || res.VetoName != nil {
		t.Errorf("veto info = (%v, %v), want none on success", res.VetoType, res.VetoName)
	}
}

func TestEjectReturnsLastFailureWhenExhausted(t *testing.T) {
	g := chainGraph(`ROOT`, `USBSTOR\DISK\A`)
	g.setEject(`USBSTOR\DISK\A`, EjectOutcome{
		ConfigRet: crRemoveVetoed,
		VetoType:  ptr.Of(usb.VetoOutstandingOpen),
		VetoName:  ptr.Of("explorer.exe"),
	})
	g.setEject(`ROOT`, EjectOutcome{
		ConfigRet: crRemoveVetoed,
		VetoType:  ptr.Of(usb.VetoWindowsService),
		VetoName:  ptr.Of("VSS"),
	})
	ejector := NewEjector(g, NewTopology(g))

	res := ejector.Eject(`USBSTOR\DISK\A`)
	if res.Success {
		t.Fatalf("Eject() success = true, want false")
	}
	// The LAST failing attempt is surfaced, not the first.
	if res.AttemptedInstanceID != `ROOT` {
		t.Errorf("AttemptedInstanceID = %q, want ROOT", res.AttemptedInstanceID)
	}
	if res.VetoType == nil || *res.VetoType != usb.VetoWindowsService {
		t.Errorf("VetoType = %v, want WindowsService", res.VetoType)
	}
	if res.VetoName == nil || *res.VetoName != "VSS" {
		t.Errorf("VetoName = %v, want VSS", res.VetoName)
	}
}

func TestEjectLocateFailureIsNotAVeto(t *testing.T) {
	g := newFakeGraph()
	ejector := NewEjector(g, NewTopology(g))

	res := ejector.Eject(`USBSTOR\GONE\1`)
	if res.Success {
		t.Fatalf("Eject() success = true, want false")
	}
	if res.ConfigRet != crNoSuchDevnode {
		t.Errorf("ConfigRet = %#x, want CR_NO_SUCH_DEVNODE", res.ConfigRet)
	}
	if res.VetoType != nil {
		t.Errorf("VetoType = %v, want nil for a locate failure", res.VetoType)
	}
	if g.ejectCalls != 0 {
		t.Errorf("ejectCalls = %d, want 0 when no node could be located", g.ejectCalls)
	}
}

func TestEjectSkipsUnlocatableAncestor(t *testing.T) {
	// The leaf's eject is refused; the parent cannot be located anymore,
	// the grandparent accepts. Locate failures are skipped, not fatal.
	g := chainGraph(`ROOT`, `USB\HUB`, `USBSTOR\DISK`)
	g.setEject(`USBSTOR\DISK`, EjectOutcome{ConfigRet: crRemoveVetoed})
	g.setEject(`USB\HUB`, EjectOutcome{ConfigRet: 0})
	// Drop the hub from the locate index after the chain is built.
	delete(g.nodes, `usb\hub`)
	ejector := NewEjector(g, NewTopology(g))

	res := ejector.Eject(`USBSTOR\DISK`)
	if !res.Success {
		t.Fatalf("Eject() success = false, want true via ROOT")
	}
	if res.AttemptedInstanceID != `ROOT` {
		t.Errorf("AttemptedInstanceID = %q, want ROOT", res.AttemptedInstanceID)
	}
}
