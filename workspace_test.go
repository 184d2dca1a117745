package main

import "testing"

func TestWorkspaceClearVariables(t *testing.T) {
	var ws Workspace
	ws.VarTable[5] = 42
	ws.ClearVariables()
	if ws.VarTable[5] != 0 {
		t.Fatalf("VarTable[5] = %d after ClearVariables, want 0", ws.VarTable[5])
	}
}

func TestWorkspaceClearLists(t *testing.T) {
	var ws Workspace
	ws.ListArea[0] = 7
	ws.ClearLists()
	if ws.ListArea[0] != 0 {
		t.Fatalf("ListArea[0] = %d after ClearLists, want 0", ws.ListArea[0])
	}
}

func TestWorkspaceClearStack(t *testing.T) {
	var ws Workspace
	ws.PushStack(0x100)
	ws.ClearStack()
	if ws.StackPtr != 0 {
		t.Fatalf("StackPtr = %d after ClearStack, want 0", ws.StackPtr)
	}
}

func TestWorkspacePushPopStack(t *testing.T) {
	var ws Workspace
	if err := ws.PushStack(0x1234); err != nil {
		t.Fatalf("PushStack: %v", err)
	}
	addr, err := ws.PopStack()
	if err != nil {
		t.Fatalf("PopStack: %v", err)
	}
	if addr != 0x1234 {
		t.Fatalf("PopStack() = %#x, want 0x1234", addr)
	}
}

func TestWorkspaceStackUnderflow(t *testing.T) {
	var ws Workspace
	if _, err := ws.PopStack(); err == nil {
		t.Fatalf("PopStack on empty stack succeeded, want error")
	}
}

func TestWorkspaceStackOverflow(t *testing.T) {
	var ws Workspace
	for i := 0; i < stackSize; i++ {
		if err := ws.PushStack(uint16(i)); err != nil {
			t.Fatalf("PushStack(%d): %v", i, err)
		}
	}
	if err := ws.PushStack(0); err == nil {
		t.Fatalf("PushStack past capacity succeeded, want overflow error")
	}
}

func TestWorkspaceRAMSaveLoadRoundTrip(t *testing.T) {
	var ws Workspace
	ws.VarTable[3] = 99
	ws.ListArea[7] = 0xaa

	if err := ws.RAMSave(2); err != nil {
		t.Fatalf("RAMSave(2): %v", err)
	}

	ws.VarTable[3] = 0
	ws.ListArea[7] = 0

	if err := ws.RAMLoad(2); err != nil {
		t.Fatalf("RAMLoad(2): %v", err)
	}
	if ws.VarTable[3] != 99 {
		t.Fatalf("VarTable[3] after RAMLoad = %d, want 99", ws.VarTable[3])
	}
	if ws.ListArea[7] != 0xaa {
		t.Fatalf("ListArea[7] after RAMLoad = %#x, want 0xaa", ws.ListArea[7])
	}
}

func TestWorkspaceRAMSaveSlotsAreIndependent(t *testing.T) {
	var ws Workspace
	ws.VarTable[0] = 1
	ws.RAMSave(0)
	ws.VarTable[0] = 2
	ws.RAMSave(1)

	ws.RAMLoad(0)
	if ws.VarTable[0] != 1 {
		t.Fatalf("slot 0 VarTable[0] = %d, want 1 (slots must not alias)", ws.VarTable[0])
	}
}

func TestWorkspaceRAMSaveOutOfRange(t *testing.T) {
	var ws Workspace
	if err := ws.RAMSave(-1); err == nil {
		t.Fatalf("RAMSave(-1) succeeded, want error")
	}
	if err := ws.RAMSave(ramSaveSlots); err == nil {
		t.Fatalf("RAMSave(%d) succeeded, want error", ramSaveSlots)
	}
}
