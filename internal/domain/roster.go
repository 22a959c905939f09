package domain

import "sort"

// Roster holds tentative and locked-in player assignments for both teams.
//
// Tentative selections are freely overwritable (last writer wins) and may
// point at a slot somebody else already occupies tentatively. Locking in is
// exclusive: at most one locked player per slot and at most one locked slot
// per player. Every locked player also has a tentative entry pointing at the
// same slot; LockIn maintains that automatically.
type Roster struct {
	tentative map[string]Slot
	locked    map[Slot]string
	lockedBy  map[string]Slot
}

// NewRoster returns an empty roster registry.
func NewRoster() *Roster {
	return &Roster{
		tentative: make(map[string]Slot),
		locked:    make(map[Slot]string),
		lockedBy:  make(map[string]Slot),
	}
}

// Propose writes or overwrites the player's tentative selection. It fails
// only when the exact target slot is already locked by a different player.
func (r *Roster) Propose(playerID string, team Team, position Position) bool {
	slot := Slot{Team: team, Position: position}
	if occupant, ok := r.locked[slot]; ok && occupant != playerID {
		return false
	}
	r.tentative[playerID] = slot
	return true
}

// LockIn converts the player's tentative selection into a locked assignment.
// It fails when no tentative selection exists or when the target slot is
// locked by somebody else. A player locking a new slot vacates their old
// one first, which supports position switching.
func (r *Roster) LockIn(playerID string) bool {
	slot, ok := r.tentative[playerID]
	if !ok {
		return false
	}
	if occupant, occupied := r.locked[slot]; occupied && occupant != playerID {
		return false
	}
	if prev, had := r.lockedBy[playerID]; had {
		delete(r.locked, prev)
	}
	r.locked[slot] = playerID
	r.lockedBy[playerID] = slot
	return true
}

// Unlock reverses a lock-in while preserving the tentative selection so the
// player can re-lock quickly. Used during pre-match states only.
func (r *Roster) Unlock(playerID string) bool {
	slot, ok := r.lockedBy[playerID]
	if !ok {
		return false
	}
	delete(r.locked, slot)
	delete(r.lockedBy, playerID)
	return true
}

// Remove purges all registry state for a departing player.
func (r *Roster) Remove(playerID string) {
	if slot, ok := r.lockedBy[playerID]; ok {
		delete(r.locked, slot)
		delete(r.lockedBy, playerID)
	}
	delete(r.tentative, playerID)
}

// Overwrite forcibly assigns a player to a slot, displacing any current
// occupant and vacating the player's previous slot. This is the narrow
// mutation used by the shootout controller and the balance-move executor;
// it never fails.
func (r *Roster) Overwrite(team Team, position Position, playerID string) {
	slot := Slot{Team: team, Position: position}
	if occupant, ok := r.locked[slot]; ok && occupant != playerID {
		delete(r.lockedBy, occupant)
		delete(r.tentative, occupant)
	}
	if prev, ok := r.lockedBy[playerID]; ok {
		delete(r.locked, prev)
	}
	r.locked[slot] = playerID
	r.lockedBy[playerID] = slot
	r.tentative[playerID] = slot
}

// Apply executes a single balance move: vacate the source slot, occupy the
// destination. It refuses the move when the player is not locked at the
// expected source slot, so a stale plan degrades to a no-op instead of
// corrupting the roster.
func (r *Roster) Apply(move BalanceMove) bool {
	current, ok := r.lockedBy[move.PlayerID]
	if !ok || current != move.From {
		return false
	}
	if occupant, occupied := r.locked[move.To]; occupied && occupant != move.PlayerID {
		return false
	}
	delete(r.locked, move.From)
	r.locked[move.To] = move.PlayerID
	r.lockedBy[move.PlayerID] = move.To
	r.tentative[move.PlayerID] = move.To
	return true
}

// Occupant returns the locked occupant of a slot.
func (r *Roster) Occupant(team Team, position Position) (string, bool) {
	id, ok := r.locked[Slot{Team: team, Position: position}]
	return id, ok
}

// LockedSlot returns the slot a player has locked in.
func (r *Roster) LockedSlot(playerID string) (Slot, bool) {
	slot, ok := r.lockedBy[playerID]
	return slot, ok
}

// TentativeSlot returns the player's tentative selection.
func (r *Roster) TentativeSlot(playerID string) (Slot, bool) {
	slot, ok := r.tentative[playerID]
	return slot, ok
}

// IsLocked reports whether the player has a locked assignment.
func (r *Roster) IsLocked(playerID string) bool {
	_, ok := r.lockedBy[playerID]
	return ok
}

// LockedCount returns the number of locked-in players across both teams.
func (r *Roster) LockedCount() int {
	return len(r.lockedBy)
}

// TeamSize returns the number of locked players on one team.
func (r *Roster) TeamSize(team Team) int {
	n := 0
	for slot := range r.locked {
		if slot.Team == team {
			n++
		}
	}
	return n
}

// LockedPlayers returns all locked player ids in a deterministic order.
func (r *Roster) LockedPlayers() []string {
	ids := make([]string, 0, len(r.lockedBy))
	for id := range r.lockedBy {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the registry holds no state at all.
func (r *Roster) Empty() bool {
	return len(r.tentative) == 0 && len(r.lockedBy) == 0
}

// Snapshot returns the locked assignments as a slot→player map; the planner
// works on this view so it never mutates the registry.
func (r *Roster) Snapshot() map[Slot]string {
	view := make(map[Slot]string, len(r.locked))
	for slot, id := range r.locked {
		view[slot] = id
	}
	return view
}
