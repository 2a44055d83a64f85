package warplan

import (
	"sort"

	"github.com/google/uuid"
)

// Board is the roster laid out by team
type Board struct {
	Teams      []Team
	Unassigned []*RosterPlayer
}

// Team is one named group on the board
type Team struct {
	Name  string
	Slots []Slot
}

// Slot is a player at a position
type Slot struct {
	Position int
	Player   *RosterPlayer
}

// BuildBoard groups the roster by assignment. Teams sort by name, slots by
// position then player name. Assignments to players no longer on the
// roster are ignored.
func BuildBoard(roster []*RosterPlayer, assignments []*Assignment) Board {
	byID := make(map[uuid.UUID]*RosterPlayer, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	teams := make(map[string][]Slot)
	assigned := make(map[uuid.UUID]bool, len(assignments))
	for _, a := range assignments {
		p, ok := byID[a.PlayerID]
		if !ok {
			continue
		}
		assigned[p.ID] = true
		teams[a.Team] = append(teams[a.Team], Slot{Position: a.Position, Player: p})
	}

	board := Board{Teams: make([]Team, 0, len(teams)), Unassigned: make([]*RosterPlayer, 0)}
	for name, slots := range teams {
		sort.Slice(slots, func(i, j int) bool {
			if slots[i].Position != slots[j].Position {
				return slots[i].Position < slots[j].Position
			}
			return slots[i].Player.PlayerName < slots[j].Player.PlayerName
		})
		board.Teams = append(board.Teams, Team{Name: name, Slots: slots})
	}
	sort.Slice(board.Teams, func(i, j int) bool { return board.Teams[i].Name < board.Teams[j].Name })

	for _, p := range roster {
		if !assigned[p.ID] {
			board.Unassigned = append(board.Unassigned, p)
		}
	}
	sort.SliceStable(board.Unassigned, func(i, j int) bool {
		return board.Unassigned[i].Power > board.Unassigned[j].Power
	})
	return board
}
