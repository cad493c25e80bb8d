package catalog

var roster = []HorseProfile{
	{ID: 1, Name: "Golden Bullet", Category: "Speedster",
		Stats:   Stats{Speed: 1.2, Intelligence: 0.8, Power: 0.5, Stamina: 0.8},
		Ability: AbilitySpeedOnGrass, Color: "#FFD700"},
	{ID: 2, Name: "Iron Toughness", Category: "Power",
		Stats:   Stats{Speed: 0.8, Intelligence: 0.6, Power: 1.8, Stamina: 1.6},
		Ability: AbilityArmorBreaker, Color: "#708090"},
	{ID: 3, Name: "Professor P", Category: "Tactician",
		Stats:   Stats{Speed: 1.0, Intelligence: 2.0, Power: 0.8, Stamina: 1.0},
		Ability: AbilityRoutePlanner, Color: "#4169E1"},
	{ID: 4, Name: "Spring Hopper", Category: "Jumper",
		Stats:   Stats{Speed: 1.1, Intelligence: 1.0, Power: 1.0, Stamina: 1.1},
		Ability: AbilityDoubleJumper, Color: "#32CD32"},
	{ID: 5, Name: "Chaos Joker", Category: "Gambler",
		Stats:   Stats{Speed: 1.0, Intelligence: 1.0, Power: 1.0, Stamina: 1.0},
		Ability: AbilityChanceInverter, Color: "#9400D3"},
	{ID: 6, Name: "Mud Slimer", Category: "Mudder",
		Stats:   Stats{Speed: 0.9, Intelligence: 0.8, Power: 1.5, Stamina: 1.4},
		Ability: AbilityMudLover, Color: "#8B4513"},
	{ID: 7, Name: "Grass Eater", Category: "Turf specialist",
		Stats:   Stats{Speed: 1.0, Intelligence: 0.7, Power: 1.2, Stamina: 1.3},
		Ability: AbilityGrassAbsorber, Color: "#228B22"},
	{ID: 8, Name: "Mr. Safety", Category: "Guardian",
		Stats:   Stats{Speed: 0.9, Intelligence: 1.2, Power: 1.3, Stamina: 1.2},
		Ability: AbilityHazardShield, Color: "#00CED1"},
	{ID: 9, Name: "Ghost Rider", Category: "Phantom",
		Stats:   Stats{Speed: 1.1, Intelligence: 0.5, Power: 1.0, Stamina: 0.9},
		Ability: AbilityPhaseWalker, Color: "#E6E6FA"},
	{ID: 10, Name: "Nightmare Hazard", Category: "Saboteur",
		Stats:   Stats{Speed: 1.2, Intelligence: 1.1, Power: 0.9, Stamina: 1.0},
		Ability: AbilityTrapSetter, Color: "#800080"},
	{ID: 11, Name: "Miracle Dice", Category: "Wildcard",
		Stats:   Stats{Speed: 1.0, Intelligence: 1.0, Power: 1.0, Stamina: 1.0},
		Ability: AbilityStatShuffler, Color: "#FF69B4"},
	{ID: 12, Name: "Heavy Metal Bear", Category: "Heavyweight",
		Stats:   Stats{Speed: 0.95, Intelligence: 0.5, Power: 2.5, Stamina: 2.0},
		Ability: AbilityCrusher, Color: "#2F4F4F"},
	{ID: 13, Name: "Dream Cleaner", Category: "Sweeper",
		Stats:   Stats{Speed: 1.1, Intelligence: 1.2, Power: 0.8, Stamina: 1.1},
		Ability: AbilityHazardEater, Color: "#87CEEB"},
	{ID: 14, Name: "Side Slider", Category: "Lateral",
		Stats:   Stats{Speed: 1.0, Intelligence: 1.5, Power: 1.0, Stamina: 1.0},
		Ability: AbilityLateralDash, Color: "#FF6347"},
	{ID: 15, Name: "Unlucky Bunny", Category: "Comeback",
		Stats:   Stats{Speed: 1.2, Intelligence: 0.5, Power: 0.5, Stamina: 0.7},
		Ability: AbilityRevengeStacker, Color: "#FFC0CB"},
}

// Roster returns a copy of the built-in fifteen horses, ordered by id.
func Roster() []HorseProfile {
	out := make([]HorseProfile, len(roster))
	copy(out, roster)
	return out
}

// LaneColors is the cyclic lane palette.
var LaneColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8B500", "#82E0AA", "#F1948A", "#AED6F1", "#D7BDE2",
}

// LaneColor returns the palette colour for lane i, wrapping around.
func LaneColor(i int) string {
	if i < 0 {
		i = -i
	}
	return LaneColors[i%len(LaneColors)]
}
