package scoring

import "fmt"

// PairingRejectionReason identifies which team-fairness rule refused a
// tee-time slot assignment.
type PairingRejectionReason string

const (
	// RejectMixedSide fires when the candidate's team differs from a team
	// already occupying the other slot on the same side.
	RejectMixedSide PairingRejectionReason = "mixed_side"
	// RejectSameTeamDuplication fires when the candidate's side is empty
	// and the opposite side is held by exactly the candidate's own team;
	// each tee time is steered toward containing both teams.
	RejectSameTeamDuplication PairingRejectionReason = "same_team_duplication"
	// RejectPlayerWithoutTeam fires when team pairing is enforced and the
	// candidate has no team to pair by.
	RejectPlayerWithoutTeam PairingRejectionReason = "player_without_team"
	// RejectInvalidSlot fires for slot numbers outside 1..4.
	RejectInvalidSlot PairingRejectionReason = "invalid_slot"
)

// PairingError reports a refused assignment together with its reason so
// callers can present actionable feedback. No state is changed on refusal.
type PairingError struct {
	Reason     PairingRejectionReason
	SlotNumber int
	PlayerID   int
}

func (e *PairingError) Error() string {
	return fmt.Sprintf("pairing rejected (%s): player %d into slot %d", e.Reason, e.PlayerID, e.SlotNumber)
}

// AssignmentCheck is the slot-occupancy snapshot for one validation call.
// Slots holds the current occupants of the tee time by slot number;
// TeamByPlayer resolves occupants and the candidate to their teams (players
// without a team are simply absent). TeamCount is the number of teams in
// the event; below two, the fairness rule is disabled entirely.
type AssignmentCheck struct {
	Slots        map[int]int
	TeamByPlayer map[int]int
	TeamCount    int
	SlotNumber   int
	PlayerID     *int // nil clears the slot
}

func sideSlots(slot int) [2]int {
	if slot <= 2 {
		return [2]int{1, 2}
	}
	return [2]int{3, 4}
}

func oppositeSlots(slot int) [2]int {
	if slot <= 2 {
		return [2]int{3, 4}
	}
	return [2]int{1, 2}
}

func (c AssignmentCheck) distinctTeams(slots [2]int, exclude int) map[int]bool {
	teams := make(map[int]bool)
	for _, slot := range slots {
		if slot == exclude {
			continue
		}
		occupant, ok := c.Slots[slot]
		if !ok {
			continue
		}
		if team, ok := c.TeamByPlayer[occupant]; ok {
			teams[team] = true
		}
	}
	return teams
}

// ValidateAssignment decides whether placing the candidate into the slot
// keeps the tee time's team-fairness invariants. It is a stateless, greedy
// per-assignment check over the snapshot the caller passes in; it can
// accept a locally valid assignment that later leaves another slot
// unsatisfiable, and that is the intended behavior. Removing a player is
// always permitted.
func ValidateAssignment(check AssignmentCheck) error {
	if check.PlayerID == nil {
		return nil
	}
	playerID := *check.PlayerID

	if check.SlotNumber < 1 || check.SlotNumber > 4 {
		return &PairingError{Reason: RejectInvalidSlot, SlotNumber: check.SlotNumber, PlayerID: playerID}
	}

	if check.TeamCount < 2 {
		return nil
	}

	candidateTeam, ok := check.TeamByPlayer[playerID]
	if !ok {
		return &PairingError{Reason: RejectPlayerWithoutTeam, SlotNumber: check.SlotNumber, PlayerID: playerID}
	}

	sideTeams := check.distinctTeams(sideSlots(check.SlotNumber), check.SlotNumber)
	if len(sideTeams) > 0 {
		if len(sideTeams) > 1 || !sideTeams[candidateTeam] {
			return &PairingError{Reason: RejectMixedSide, SlotNumber: check.SlotNumber, PlayerID: playerID}
		}
		return nil
	}

	oppositeTeams := check.distinctTeams(oppositeSlots(check.SlotNumber), 0)
	if len(oppositeTeams) == 1 && oppositeTeams[candidateTeam] {
		return &PairingError{Reason: RejectSameTeamDuplication, SlotNumber: check.SlotNumber, PlayerID: playerID}
	}

	return nil
}
