package rebase

// GetStats counts the commits a plan keeps, folds, drops, and rewords.
// A reword counts as both kept and reworded.
func GetStats(commits []EditableCommit) Stats {
	var s Stats
	for _, c := range commits {
		switch c.Action {
		case ActionPick, ActionEdit:
			s.Kept++
		case ActionReword:
			s.Kept++
			s.Reworded++
		case ActionSquash, ActionFixup:
			s.Squashed++
		case ActionDrop:
			s.Dropped++
		}
	}
	return s
}
