package engine

// Breakdown holds the score of a finished board per colour
type Breakdown [numColours]int

// Of returns the score for colour c
func (b Breakdown) Of(c Colour) int {
	return b[c]
}

// Strength is the total used to rank seats
func (b Breakdown) Strength() int {
	total := 0
	for _, v := range b {
		total += v
	}
	return total
}

// Score evaluates a finished board. Resource, coin and trade cards score
// nothing; per-item rewards are counted on the final boards. Science from any
// colour, including the Scientists Guild, is scored together under green.
func Score(me, left, right PublicPlayer) Breakdown {
	var b Breakdown
	var counts [numScienceItems]int
	var choices [][]ScienceItem

	for _, card := range me.Built {
		pw := card.Power()
		switch pw.Kind {
		case PowerVictoryPoints:
			b[card.Colour()] += pw.Amount
		case PowerPerItemRewards:
			b[card.Colour()] += pw.Reward.Points * pw.Reward.Count(me, left, right)
		case PowerScience:
			if len(pw.Science) == 1 {
				counts[pw.Science[0]]++
			} else {
				choices = append(choices, pw.Science)
			}
		}
	}

	b[Green] = bestScience(counts, choices)
	return b
}

// ScienceScore is 7 per complete set plus the square of each symbol count.
func ScienceScore(counts [3]int) int {
	least := counts[0]
	total := 0
	for _, c := range counts {
		if c < least {
			least = c
		}
		total += c * c
	}
	return 7*least + total
}

// bestScience assigns each choice symbol to maximise the science score.
func bestScience(counts [numScienceItems]int, choices [][]ScienceItem) int {
	if len(choices) == 0 {
		return ScienceScore(counts)
	}
	best := 0
	for _, item := range choices[0] {
		next := counts
		next[item]++
		if s := bestScience(next, choices[1:]); s > best {
			best = s
		}
	}
	return best
}
