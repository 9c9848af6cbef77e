package game

import "math/rand"

// AssignChits maps each player to exactly one chit by shuffling a copy of
// the chit list with Fisher-Yates and pairing shuffled[i] with players[i].
// Given equal lengths the result is a uniformly random bijection; callers
// must deliver each entry only to its own player.
func AssignChits(players []*Player, chits []Chit) map[string]Chit {
	shuffled := make([]Chit, len(chits))
	copy(shuffled, chits)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	assigned := make(map[string]Chit, len(players))
	for i, p := range players {
		assigned[p.ID] = shuffled[i]
	}
	return assigned
}
