package metric

// Builtin returns the definitions of every metric rely scores with.
func Builtin() []Definition {
	return []Definition{
		{Name: LastCommit, Weight: MustWeight("0.99"), New: newLastCommit},
		{Name: StarCount, Weight: MustWeight("0.65"), New: newStarCount},
		{Name: ForkCount, Weight: MustWeight("0.5"), New: newForkCount},
		{Name: WatcherCount, Weight: MustWeight("0.5"), New: newWatcherCount},
		{Name: OpenIssueCount, Weight: MustWeight("0.85"), New: newOpenIssueCount},
		{Name: HasDescription, Weight: MustWeight("0.25"), New: newHasDescription},
		{Name: HasLicense, Weight: MustWeight("0.5"), New: newHasLicense},
		{Name: HasReadme, Weight: MustWeight("0.99"), New: newHasReadme},
		{Name: IsArchived, Weight: MustWeight("0.99"), New: newIsArchived},
		{Name: IsDisabled, Weight: MustWeight("0.99"), New: newIsDisabled},
	}
}

// band scores a count where more is better: below low is POOR, low through
// high inclusive is AVERAGE, above high is GOOD.
func band(n, low, high int) Score {
	switch {
	case n < low:
		return Poor
	case n <= high:
		return Average
	default:
		return Good
	}
}

// flag maps a boolean onto GOOD when it equals want and POOR otherwise.
func flag(b, want bool) Score {
	if b == want {
		return Good
	}
	return Poor
}
