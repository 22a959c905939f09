package domain

import "testing"

func TestProposeOverwritesTentative(t *testing.T) {
	r := NewRoster()

	if !r.Propose("u1", TeamRed, PositionCenter) {
		t.Fatal("first propose should succeed")
	}
	if !r.Propose("u1", TeamBlue, PositionGoalie) {
		t.Fatal("re-propose should succeed")
	}

	slot, ok := r.TentativeSlot("u1")
	if !ok {
		t.Fatal("tentative selection missing")
	}
	if slot.Team != TeamBlue || slot.Position != PositionGoalie {
		t.Fatalf("tentative = %+v, want blue goalie", slot)
	}
}

func TestProposeAllowsContestedTentativeSlot(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	// u2 may tentatively point at the same slot; last writer wins only for
	// their own entry.
	if !r.Propose("u2", TeamRed, PositionCenter) {
		t.Fatal("tentative selections may overlap")
	}
}

func TestProposeRejectsLockedSlot(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	if !r.LockIn("u1") {
		t.Fatal("lock in should succeed")
	}

	if r.Propose("u2", TeamRed, PositionCenter) {
		t.Fatal("propose must fail for a slot locked by another player")
	}
	// The locked occupant may still re-propose their own slot.
	if !r.Propose("u1", TeamRed, PositionCenter) {
		t.Fatal("occupant re-propose should succeed")
	}
}

func TestLockInRequiresTentativeSelection(t *testing.T) {
	r := NewRoster()
	if r.LockIn("ghost") {
		t.Fatal("lock in without a tentative selection must fail")
	}
}

func TestLockInSupportsPositionSwitch(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	r.LockIn("u1")

	r.Propose("u1", TeamRed, PositionLeftWing)
	if !r.LockIn("u1") {
		t.Fatal("switching positions should succeed")
	}

	if _, occupied := r.Occupant(TeamRed, PositionCenter); occupied {
		t.Fatal("previous slot should be vacated")
	}
	if id, _ := r.Occupant(TeamRed, PositionLeftWing); id != "u1" {
		t.Fatalf("left wing occupant = %q, want u1", id)
	}
}

func TestSlotExclusivity(t *testing.T) {
	// Arbitrary interleaving of proposes and lock-ins must never produce two
	// locked players in the same slot or one player in two slots.
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionGoalie)
	r.Propose("u2", TeamRed, PositionGoalie)
	r.LockIn("u1")
	if r.LockIn("u2") {
		t.Fatal("second lock on same slot must fail")
	}

	r.Propose("u2", TeamBlue, PositionGoalie)
	r.LockIn("u2")
	r.Propose("u1", TeamRed, PositionCenter)
	r.LockIn("u1")

	seen := map[string]int{}
	for _, team := range Teams {
		for _, pos := range Positions {
			if id, ok := r.Occupant(team, pos); ok {
				seen[id]++
			}
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("player %s occupies %d slots", id, count)
		}
	}
	if r.LockedCount() != 2 {
		t.Fatalf("locked count = %d, want 2", r.LockedCount())
	}
}

func TestUnlockPreservesTentative(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	r.LockIn("u1")
	if !r.Unlock("u1") {
		t.Fatal("unlock should succeed")
	}

	if r.IsLocked("u1") {
		t.Fatal("player should no longer be locked")
	}
	if _, ok := r.TentativeSlot("u1"); !ok {
		t.Fatal("tentative selection should survive unlock")
	}
	// Quick reselection works without a fresh propose.
	if !r.LockIn("u1") {
		t.Fatal("re-lock after unlock should succeed")
	}
}

func TestRemovePurgesAllState(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	r.LockIn("u1")
	r.Remove("u1")

	if !r.Empty() {
		t.Fatal("registry should be empty after removing the only player")
	}
	if _, occupied := r.Occupant(TeamRed, PositionCenter); occupied {
		t.Fatal("slot should be vacated on remove")
	}
}

func TestOverwriteDisplacesOccupant(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionCenter)
	r.LockIn("u1")
	r.Propose("u2", TeamBlue, PositionGoalie)
	r.LockIn("u2")

	r.Overwrite(TeamRed, PositionCenter, "u2")

	if id, _ := r.Occupant(TeamRed, PositionCenter); id != "u2" {
		t.Fatalf("center occupant = %q, want u2", id)
	}
	if r.IsLocked("u1") {
		t.Fatal("displaced occupant should be unlocked")
	}
	if _, occupied := r.Occupant(TeamBlue, PositionGoalie); occupied {
		t.Fatal("u2's previous slot should be vacated")
	}
}

func TestApplyRejectsStaleMove(t *testing.T) {
	r := NewRoster()

	r.Propose("u1", TeamRed, PositionLeftWing)
	r.LockIn("u1")

	stale := BalanceMove{
		PlayerID: "u1",
		From:     Slot{Team: TeamRed, Position: PositionRightWing}, // wrong source
		To:       Slot{Team: TeamRed, Position: PositionGoalie},
		Reason:   ReasonGoalieCoverage,
	}
	if r.Apply(stale) {
		t.Fatal("apply with mismatched source slot must be a no-op")
	}
	if slot, _ := r.LockedSlot("u1"); slot.Position != PositionLeftWing {
		t.Fatalf("player moved by stale plan: %+v", slot)
	}

	good := BalanceMove{
		PlayerID: "u1",
		From:     Slot{Team: TeamRed, Position: PositionLeftWing},
		To:       Slot{Team: TeamRed, Position: PositionGoalie},
		Reason:   ReasonGoalieCoverage,
	}
	if !r.Apply(good) {
		t.Fatal("valid move should apply")
	}
	if id, _ := r.Occupant(TeamRed, PositionGoalie); id != "u1" {
		t.Fatalf("goalie occupant = %q, want u1", id)
	}
}
