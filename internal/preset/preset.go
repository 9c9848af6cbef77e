// Package preset ships the built-in role catalogs clients use to prefill a
// lobby's chits. The server only serves the catalog; the host still submits
// the actual chits.
package preset

type Role struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MinPlayers  int    `json:"minPlayers"`
	MaxPlayers  int    `json:"maxPlayers"`
	Roles       []Role `json:"roles"`
}

var presets = []Preset{
	{
		ID:          "mafia",
		Name:        "Classic Mafia",
		Description: "Traditional Mafia game with civilians and mafia members",
		MinPlayers:  5,
		MaxPlayers:  12,
		Roles: []Role{
			{Name: "Mafia Boss", Description: "Lead the mafia to victory"},
			{Name: "Mafia Member", Description: "Work with the boss"},
			{Name: "Detective", Description: "Investigate and find the mafia"},
			{Name: "Doctor", Description: "Save players from elimination"},
			{Name: "Civilian", Description: "Vote to eliminate suspects"},
		},
	},
	{
		ID:          "werewolf",
		Name:        "Werewolf",
		Description: "Village vs Werewolves - find the monsters!",
		MinPlayers:  6,
		MaxPlayers:  15,
		Roles: []Role{
			{Name: "Alpha Werewolf", Description: "Lead the pack"},
			{Name: "Werewolf", Description: "Hunt at night"},
			{Name: "Seer", Description: "See true identities"},
			{Name: "Hunter", Description: "Take one down with you"},
			{Name: "Villager", Description: "Survive and deduce"},
		},
	},
	{
		ID:          "secret-roles",
		Name:        "Secret Roles",
		Description: "Hidden identity party game",
		MinPlayers:  5,
		MaxPlayers:  10,
		Roles: []Role{
			{Name: "Liberal Leader", Description: "Lead the liberals"},
			{Name: "Liberal", Description: "Support democracy"},
			{Name: "Fascist Leader", Description: "Hidden dictator"},
			{Name: "Fascist", Description: "Support the leader secretly"},
		},
	},
	{
		ID:          "impostor",
		Name:        "Impostor Hunt",
		Description: "Find the impostor among the crew",
		MinPlayers:  4,
		MaxPlayers:  10,
		Roles: []Role{
			{Name: "Impostor", Description: "Eliminate crewmates"},
			{Name: "Sheriff", Description: "Can eliminate once"},
			{Name: "Engineer", Description: "Can vent"},
			{Name: "Crewmate", Description: "Complete tasks and find impostor"},
		},
	},
	{
		ID:          "custom",
		Name:        "Custom Game",
		Description: "Create your own roles from scratch",
		MinPlayers:  2,
		MaxPlayers:  20,
		Roles:       []Role{},
	},
}

// All returns the full catalog in display order.
func All() []Preset { return presets }

// ByID looks up one preset, or nil.
func ByID(id string) *Preset {
	for i := range presets {
		if presets[i].ID == id {
			return &presets[i]
		}
	}
	return nil
}

// GenerateRoles expands a preset to exactly playerCount roles by cycling the
// preset's role list. Presets with no roles yield nil.
func GenerateRoles(p *Preset, playerCount int) []Role {
	if len(p.Roles) == 0 || playerCount <= 0 {
		return nil
	}
	out := make([]Role, 0, playerCount)
	for i := 0; i < playerCount; i++ {
		out = append(out, p.Roles[i%len(p.Roles)])
	}
	return out
}
