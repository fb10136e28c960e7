package scoring

import (
	"fmt"
	"sort"
	"strconv"
)

// Player is a competitor as the engine sees one: identity, display label
// and an already-resolved effective handicap. Precedence between event and
// profile handicaps is the caller's job (see ClampHandicap).
type Player struct {
	UserID      int
	DisplayName string
	Handicap    float64
	TeamID      *int
}

// Team is a scoring team; members are derived from Player.TeamID.
type Team struct {
	ID   int
	Name string
}

// Entry is one unit on a leaderboard: a solo player, a team, or a tee-time
// side pair. Entries are engine-internal and never persisted.
type Entry struct {
	Key         string
	Label       string
	MemberIDs   []int
	MemberNames []string
}

// RoundStanding is one leaderboard row for a single round. Score is nil
// iff no member of the entry has any scored hole; Rank is zero for such
// rows and 1-based shared-tie rank otherwise.
type RoundStanding struct {
	Entry Entry
	Score *int
	Rank  int
}

// RoundInput is the snapshot for one round's standings. Everything is
// plain data gathered by the caller; the engine never reaches back into
// storage.
type RoundInput struct {
	Holes      []Hole
	Policy     AllocationPolicy
	Players    []Player
	ScoreCards map[int]map[int]int // userID -> hole number -> gross strokes
}

func soloEntry(p Player) Entry {
	return Entry{
		Key:         "solo-" + strconv.Itoa(p.UserID),
		Label:       p.DisplayName,
		MemberIDs:   []int{p.UserID},
		MemberNames: []string{p.DisplayName},
	}
}

// BuildEntries groups players into scoring entries. With one or more teams
// present, each team becomes an entry over its roster and every unassigned
// player competes solo alongside them; with no teams everyone plays solo.
// Output order follows the input order of teams and players.
func BuildEntries(players []Player, teams []Team) []Entry {
	if len(teams) == 0 {
		entries := make([]Entry, 0, len(players))
		for _, p := range players {
			entries = append(entries, soloEntry(p))
		}
		return entries
	}

	entries := make([]Entry, 0, len(teams))
	for _, team := range teams {
		entry := Entry{
			Key:   "team-" + strconv.Itoa(team.ID),
			Label: team.Name,
		}
		for _, p := range players {
			if p.TeamID != nil && *p.TeamID == team.ID {
				entry.MemberIDs = append(entry.MemberIDs, p.UserID)
				entry.MemberNames = append(entry.MemberNames, p.DisplayName)
			}
		}
		entries = append(entries, entry)
	}
	for _, p := range players {
		if p.TeamID == nil {
			entries = append(entries, soloEntry(p))
		}
	}
	return entries
}

// PairingSlot is one tee-time slot as the engine sees it.
type PairingSlot struct {
	SlotNumber int
	PlayerID   *int
}

// TeeGroup is one tee time's slot occupancy.
type TeeGroup struct {
	ID    int
	Slots []PairingSlot
}

// BuildPairEntries turns each tee time's two sides (slots 1-2 and 3-4)
// into ad-hoc scoring entries for the current-day leaderboard. Sides with
// no assigned player are omitted; labels number the pairs in tee order.
func BuildPairEntries(groups []TeeGroup, players []Player) []Entry {
	nameByID := make(map[int]string, len(players))
	for _, p := range players {
		nameByID[p.UserID] = p.DisplayName
	}

	entries := make([]Entry, 0, len(groups)*2)
	pairNumber := 1
	for _, group := range groups {
		slots := make([]PairingSlot, len(group.Slots))
		copy(slots, group.Slots)
		sort.SliceStable(slots, func(i, j int) bool {
			return slots[i].SlotNumber < slots[j].SlotNumber
		})

		sides := [2][]PairingSlot{}
		for _, slot := range slots {
			if slot.SlotNumber <= 2 {
				sides[0] = append(sides[0], slot)
			} else {
				sides[1] = append(sides[1], slot)
			}
		}

		for sideIdx, side := range sides {
			var memberIDs []int
			var memberNames []string
			for _, slot := range side {
				if slot.PlayerID == nil {
					continue
				}
				memberIDs = append(memberIDs, *slot.PlayerID)
				memberNames = append(memberNames, nameByID[*slot.PlayerID])
			}
			if len(memberIDs) == 0 {
				continue
			}
			entries = append(entries, Entry{
				Key:         fmt.Sprintf("tee%d-side%d", group.ID, sideIdx+1),
				Label:       fmt.Sprintf("Pair %d", pairNumber),
				MemberIDs:   memberIDs,
				MemberNames: memberNames,
			})
			pairNumber++
		}
	}
	return entries
}

// BuildRoundStandings scores and ranks entries for one round. An entry's
// score is the sum of net totals of members holding at least one scored
// hole; members without a scored hole contribute nothing (they are not
// treated as zero). The returned order is total and deterministic: scored
// entries ascending by score with labels breaking ties, then unscored
// entries alphabetically.
func BuildRoundStandings(entries []Entry, input RoundInput) ([]RoundStanding, error) {
	handicapByID := make(map[int]float64, len(input.Players))
	for _, p := range input.Players {
		handicapByID[p.UserID] = p.Handicap
	}

	rows := make([]RoundStanding, 0, len(entries))
	for _, entry := range entries {
		total := 0
		scored := 0
		for _, memberID := range entry.MemberIDs {
			card := input.ScoreCards[memberID]
			if len(card) == 0 {
				continue
			}
			net, err := NetTotal(card, input.Holes, handicapByID[memberID], input.Policy)
			if err != nil {
				return nil, fmt.Errorf("net total for user %d: %w", memberID, err)
			}
			total += net
			scored++
		}

		row := RoundStanding{Entry: entry}
		if scored > 0 {
			score := total
			row.Score = &score
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case a.Score == nil && b.Score == nil:
			return a.Entry.Label < b.Entry.Label
		case a.Score == nil:
			return false
		case b.Score == nil:
			return true
		case *a.Score != *b.Score:
			return *a.Score < *b.Score
		default:
			return a.Entry.Label < b.Entry.Label
		}
	})

	// Shared "tied at N" ranks over the scored prefix.
	rank := 0
	var prev *int
	for i := range rows {
		if rows[i].Score == nil {
			break
		}
		if prev == nil || *rows[i].Score != *prev {
			rank = i + 1
			prev = rows[i].Score
		}
		rows[i].Rank = rank
	}

	return rows, nil
}
