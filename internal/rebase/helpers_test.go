package rebase

func commit(shortID, summary string, action Action) EditableCommit {
	return EditableCommit{
		OID:     "oid-" + shortID,
		ShortID: shortID,
		Summary: summary,
		Action:  action,
	}
}

func reword(shortID, summary, newMessage string) EditableCommit {
	c := commit(shortID, summary, ActionReword)
	c.NewMessage = &newMessage
	return c
}

func shortIDs(commits []EditableCommit) []string {
	ids := make([]string, 0, len(commits))
	for _, c := range commits {
		ids = append(ids, c.ShortID)
	}
	return ids
}
