package main

import "testing"

func newTestDriverGateway() (*DriverGateway, *Workspace, *fakeDriverHost) {
	var ws Workspace
	host := &fakeDriverHost{}
	printer := NewTextPrinter(host)
	return NewDriverGateway(&ws, host, printer), &ws, host
}

func TestBumpSeedRecurrence(t *testing.T) {
	g, _, _ := newTestDriverGateway()
	g.SeedRandom(1)

	s := uint32(1)
	want := uint16((((s << 8) + randomSeedBump - s) << 2) + s + 1)

	got := g.bumpSeed()
	if got != want {
		t.Fatalf("bumpSeed() = %#x, want %#x", got, want)
	}
}

func TestBumpSeedIsDeterministic(t *testing.T) {
	g1, _, _ := newTestDriverGateway()
	g2, _, _ := newTestDriverGateway()
	g1.SeedRandom(42)
	g2.SeedRandom(42)

	for i := 0; i < 5; i++ {
		if a, b := g1.bumpSeed(), g2.bumpSeed(); a != b {
			t.Fatalf("bumpSeed diverged at step %d: %#x != %#x", i, a, b)
		}
	}
}

func TestCallDriverRAMSaveLoadRoundTrip(t *testing.T) {
	g, ws, _ := newTestDriverGateway()
	ws.VarTable[0] = 0xabcd

	list9 := make([]byte, 32)
	list9[0] = driverRAMSave
	list9[1] = 0 // slot 1
	g.CallDriver(list9, "game.l9")
	if list9[0] != 0 {
		t.Fatalf("RAMSave status = %d, want 0", list9[0])
	}

	ws.VarTable[0] = 0
	list9[0] = driverRAMLoad
	list9[1] = 0
	g.CallDriver(list9, "game.l9")
	if list9[0] != 0 {
		t.Fatalf("RAMLoad status = %d, want 0", list9[0])
	}
	if ws.VarTable[0] != 0xabcd {
		t.Fatalf("VarTable[0] after RAMLoad = %#x, want 0xabcd", ws.VarTable[0])
	}
}

func TestCallDriverRAMSaveClampsSlot(t *testing.T) {
	g, _, _ := newTestDriverGateway()
	list9 := make([]byte, 32)
	list9[0] = driverRAMSave
	list9[1] = 0xfb // > 0xfa
	g.CallDriver(list9, "game.l9")
	if list9[0] != 1 {
		t.Fatalf("status = %d, want 1 for an out-of-range slot byte", list9[0])
	}
}

func TestCallDriverRAMSaveRejectsSlotAtCapacity(t *testing.T) {
	g, _, _ := newTestDriverGateway()
	list9 := make([]byte, 32)
	list9[0] = driverRAMSave
	list9[1] = byte(ramSaveSlots - 1) // +1 == ramSaveSlots, must reject
	g.CallDriver(list9, "game.l9")
	if list9[0] != 0xff {
		t.Fatalf("status = %d, want 0xff", list9[0])
	}
}

func TestCallDriverReadChar(t *testing.T) {
	g, _, host := newTestDriverGateway()
	host.readCharResp = 'Q'
	list9 := make([]byte, 32)
	list9[0] = driverReadChar
	g.CallDriver(list9, "game.l9")
	if list9[1] != 'Q' {
		t.Fatalf("list9[1] = %q, want 'Q'", list9[1])
	}
}

func TestCallDriverRandomWritesSixteenBits(t *testing.T) {
	reference, _, _ := newTestDriverGateway()
	reference.SeedRandom(7)
	want := reference.bumpSeed()

	g, _, _ := newTestDriverGateway()
	g.SeedRandom(7)
	list9 := make([]byte, 32)
	list9[0] = driverRandom
	g.CallDriver(list9, "game.l9")

	got := uint16(list9[1]) | uint16(list9[2])<<8
	if got != want {
		t.Fatalf("random value = %#x, want %#x", got, want)
	}
}

func TestCallDriverShowBitmap(t *testing.T) {
	g, _, host := newTestDriverGateway()
	list9 := make([]byte, 32)
	list9[0] = driverShowBitmap
	list9[1] = 5
	g.CallDriver(list9, "game.l9")
	if !host.bitmapShown || host.shownBitmap != 5 {
		t.Fatalf("ShowBitmap not called with 5: shown=%v value=%d", host.bitmapShown, host.shownBitmap)
	}
}

func TestCallDriverNextPartSearchesWhenSlotZero(t *testing.T) {
	g, _, host := newTestDriverGateway()
	host.nextGameFile = "game2.l9"
	host.nextGameFileOK = true

	list9 := make([]byte, 32)
	list9[0] = driverNextPart
	req := g.CallDriver(list9, "game1.l9")
	if !req.Requested || req.Filename != "game2.l9" {
		t.Fatalf("req = %+v, want Requested=true Filename=game2.l9", req)
	}
}

func TestCallDriverNextPartFailsClosedWhenNotFound(t *testing.T) {
	g, _, host := newTestDriverGateway()
	host.nextGameFileOK = false

	list9 := make([]byte, 32)
	list9[0] = driverNextPart
	req := g.CallDriver(list9, "game1.l9")
	if req.Requested {
		t.Fatalf("req.Requested = true, want false when no next part is found")
	}
}

func TestCallDriverNextPartExplicitSlot(t *testing.T) {
	g, _, host := newTestDriverGateway()
	host.setFileNumberFn = func(name string, part byte) string { return "game3.l9" }

	list9 := make([]byte, 32)
	list9[0] = driverNextPart
	list9[1] = 3
	req := g.CallDriver(list9, "game1.l9")
	if !req.Requested || req.Filename != "game3.l9" {
		t.Fatalf("req = %+v, want Requested=true Filename=game3.l9", req)
	}
}

func TestCallDriverDiscCheckAlwaysSucceeds(t *testing.T) {
	g, _, _ := newTestDriverGateway()
	list9 := make([]byte, 32)
	list9[0] = driverDiscCheck
	list9[1] = 0xff
	list9[2] = 0xff
	g.CallDriver(list9, "game.l9")
	if list9[1] != 0 || list9[2] != 0 {
		t.Fatalf("list9[1:3] = %v, want [0 0]", list9[1:3])
	}
}

func TestCallDriverUnknownCodeIsInert(t *testing.T) {
	g, _, _ := newTestDriverGateway()
	list9 := make([]byte, 32)
	list9[0] = 0x7f // not a recognized sub-function
	list9[1] = 0x11
	g.CallDriver(list9, "game.l9")
	if list9[1] != 0x11 {
		t.Fatalf("list9[1] = %#x, want unchanged 0x11 for an unknown sub-function", list9[1])
	}
}
